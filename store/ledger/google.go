package ledger

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"regal/config"
	"regal/models"
	"regal/store/googleauth"
)

const (
	// bookingRange covers the ten fixed ledger columns.
	bookingRange = "BOOKING!A:J"
	// menuRange expects rows of [category, name, description, image].
	menuRange = "Menu!A2:D"
)

// GoogleSheetsLedger appends booking rows to, and reads the menu from, the
// configured spreadsheet.
type GoogleSheetsLedger struct {
	SpreadsheetID string
}

// NewGoogleSheetsLedger builds a ledger against the configured sheet.
func NewGoogleSheetsLedger() *GoogleSheetsLedger {
	return &GoogleSheetsLedger{SpreadsheetID: config.AppConfig.GoogleSheetID}
}

func (l *GoogleSheetsLedger) service(ctx context.Context) (*sheets.Service, error) {
	conf, err := googleauth.JWTConfig()
	if err != nil {
		return nil, err
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to build sheets service: %w", err)
	}
	return svc, nil
}

// AppendBooking appends one row in the fixed column order.
func (l *GoogleSheetsLedger) AppendBooking(ctx context.Context, row models.LedgerRow) error {
	svc, err := l.service(ctx)
	if err != nil {
		return err
	}

	vr := &sheets.ValueRange{Values: [][]interface{}{row.Values()}}
	_, err = svc.Spreadsheets.Values.Append(l.SpreadsheetID, bookingRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("ledger append failed: %w", err)
	}
	return nil
}

// ReadMenuRows reads the menu catalog rows, stringifying every cell.
func (l *GoogleSheetsLedger) ReadMenuRows(ctx context.Context) ([][]string, error) {
	svc, err := l.service(ctx)
	if err != nil {
		return nil, err
	}

	res, err := svc.Spreadsheets.Values.Get(l.SpreadsheetID, menuRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("menu read failed: %w", err)
	}

	rows := make([][]string, 0, len(res.Values))
	for _, raw := range res.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
