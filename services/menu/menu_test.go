package menu

import (
	"context"
	"errors"
	"testing"

	"regal/models"
)

type fakeLedger struct {
	rows [][]string
	err  error
}

func (f *fakeLedger) AppendBooking(ctx context.Context, row models.LedgerRow) error {
	return nil
}

func (f *fakeLedger) ReadMenuRows(ctx context.Context) ([][]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func TestGetMenuGroupsByCategory(t *testing.T) {
	svc := &DefaultMenuService{Ledger: &fakeLedger{rows: [][]string{
		{"meats", "Prosciutto di Parma", "24-month aged", "/prosciutto.jpg"},
		{"meats", "Bresaola", "Air-dried beef"},
		{"cheeses", "Aged Manchego", "12-month aged", "/manchego.jpg"},
		{"", "Orphan item"},
		{"accoutrements", ""},
		{},
	}}}

	stations, err := svc.GetMenu(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(stations) != 2 {
		t.Fatalf("stations = %d, want 2 (blank rows skipped)", len(stations))
	}

	meats := stations["meats"]
	if meats.Title != "Meats" {
		t.Errorf("title = %q, want capitalized category", meats.Title)
	}
	if len(meats.Items) != 2 {
		t.Fatalf("meats items = %d, want 2", len(meats.Items))
	}
	if meats.Items[1].Image != placeholderImage {
		t.Errorf("missing image not defaulted: %q", meats.Items[1].Image)
	}
	if meats.Items[0].Description != "24-month aged" {
		t.Errorf("description = %q", meats.Items[0].Description)
	}

	if _, ok := stations["accoutrements"]; ok {
		t.Error("nameless row created a station")
	}
}

func TestGetMenuPropagatesError(t *testing.T) {
	svc := &DefaultMenuService{Ledger: &fakeLedger{err: errors.New("offline")}}
	if _, err := svc.GetMenu(context.Background()); err == nil {
		t.Fatal("expected error from failing sheet read")
	}
}
