package store

// auth.go is the credential provider: it turns a Google service-account
// JSON blob into an authenticated SheetsStore. Nothing downstream ever
// sees the raw credentials, only the resulting handle.

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// spreadsheetScope grants read/write access to spreadsheets the service
// account has been shared on.
const spreadsheetScope = "https://www.googleapis.com/auth/spreadsheets"

// Authenticate builds an authenticated store handle from service-account
// credentials JSON. Malformed or rejected credentials fail here, before
// any spreadsheet is touched.
func Authenticate(ctx context.Context, credentialsJSON []byte) (*SheetsStore, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, spreadsheetScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}

	return NewSheetsStore(svc), nil
}
