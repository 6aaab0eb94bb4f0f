package ledger

import (
	"context"

	"regal/models"
)

// Store abstracts the remote booking ledger spreadsheet.
type Store interface {
	// AppendBooking appends one booking row to the ledger.
	AppendBooking(ctx context.Context, row models.LedgerRow) error
	// ReadMenuRows reads the raw menu catalog rows
	// [category, name, description, image].
	ReadMenuRows(ctx context.Context) ([][]string, error)
}
