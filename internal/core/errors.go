package core

// errors.go defines the error taxonomy for table operations.
//
// Every failure surfaced by this package is one of four kinds:
//   - ValidationError: the caller's input is bad; field-keyed, recoverable
//   - NotFoundError:   a configuration, tab, or row does not exist
//   - AccessError:     the store rejected the operation on permissions
//   - UpstreamError:   any other store or transport failure
//
// None are retried and none are fatal to the process. Callers distinguish
// them with errors.As; the web layer maps them to HTTP status codes.

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries all field-level violations for a write, keyed
// by column ID. The full mapping is reported at once, not just the first.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotFoundError reports a missing configuration, tab, or spreadsheet.
type NotFoundError struct {
	Resource string // "configuration", "tab", "spreadsheet"
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

// AccessError reports a permission denial from the store.
type AccessError struct {
	Op  string
	Err error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%s: access denied: %v", e.Op, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// UpstreamError reports an unclassified store or transport failure.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream failure: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
