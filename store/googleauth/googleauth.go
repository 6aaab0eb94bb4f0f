package googleauth

import (
	"errors"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"

	"regal/config"
)

// Scopes cover both remote stores: the booking spreadsheet and the
// availability calendar.
var Scopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/calendar",
}

// ErrMissingCredentials indicates the service account is not configured.
// Callers must fail fast on it instead of attempting a remote call.
var ErrMissingCredentials = errors.New("google service credentials are not configured")

// JWTConfig builds the service-account config from AppConfig. The private
// key may carry literal "\n" escapes when set through the environment.
func JWTConfig() (*jwt.Config, error) {
	email := config.AppConfig.GoogleServiceAccountEmail
	key := config.AppConfig.GooglePrivateKey
	if email == "" || key == "" {
		return nil, ErrMissingCredentials
	}
	return &jwt.Config{
		Email:      email,
		PrivateKey: []byte(strings.ReplaceAll(key, `\n`, "\n")),
		Scopes:     Scopes,
		TokenURL:   google.JWTTokenURL,
	}, nil
}
