package core

// validate.go checks record data against a column schema before any
// store write. All violations are collected and returned together so a
// caller can render every field error at once.

import "time"

// ValidateRecord returns a mapping of column ID to error message for
// every violated constraint. An empty map means the record is valid.
//
// Rules, per column:
//   - required and absent/empty: "<header> is required"
//   - present and type number but unparseable: "<header> must be a number"
//   - present and type date but unparseable: "<header> must be a valid date"
func ValidateRecord(data map[string]any, cols []Column) map[string]string {
	errs := make(map[string]string)

	for _, col := range cols {
		value, ok := data[col.ID]

		if col.Required && isEmptyValue(value, ok) {
			errs[col.ID] = col.Header + " is required"
			continue
		}

		if isEmptyValue(value, ok) {
			continue
		}

		switch col.Type {
		case TypeNumber:
			if !isNumberValue(value) {
				errs[col.ID] = col.Header + " must be a number"
			}
		case TypeDate:
			if !isDateValue(value) {
				errs[col.ID] = col.Header + " must be a valid date"
			}
		}
	}

	return errs
}

func isEmptyValue(value any, present bool) bool {
	if !present || value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

func isNumberValue(value any) bool {
	switch v := value.(type) {
	case float64, int:
		return true
	case string:
		_, err := ParseNumber(v)
		return err == nil
	}
	return false
}

func isDateValue(value any) bool {
	switch v := value.(type) {
	case time.Time:
		return true
	case string:
		_, err := ParseDate(v)
		return err == nil
	}
	return false
}
