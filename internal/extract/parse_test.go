package extract

import (
	"testing"

	"github.com/scanstation/receipt-ocr/internal/models"
)

const sampleReceipt = `ACME MART
123 Main Street
Coffee 3.50
Bagel 4.50
Total $8.64
Subtotal $8.00
Tax $0.64
01/02/2024
Invoice #: A-1001`

func TestParseReceipt(t *testing.T) {
	fields := ParseReceipt(sampleReceipt, nil)

	assertAmount(t, "Total", fields.Amounts.Total, "8.64")
	assertAmount(t, "Subtotal", fields.Amounts.Subtotal, "8.00")
	assertAmount(t, "Tax", fields.Amounts.Tax, "0.64")
	assertAmount(t, "Discount", fields.Amounts.Discount, "")

	if fields.Date != "2024-01-02" {
		t.Errorf("Date = %q, want 2024-01-02", fields.Date)
	}
	if fields.Vendor != "ACME MART" {
		t.Errorf("Vendor = %q, want ACME MART", fields.Vendor)
	}
	if fields.InvoiceNumber != "A-1001" {
		t.Errorf("InvoiceNumber = %q, want A-1001", fields.InvoiceNumber)
	}
	if len(fields.Items) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(fields.Items), fields.Items)
	}
	if fields.Items[0].Description != "Coffee" || fields.Items[1].Description != "Bagel" {
		t.Errorf("items = %+v", fields.Items)
	}
}

func TestParseReceiptShortSuffixVendor(t *testing.T) {
	text := "ACME CO\n123 Main St\nSubtotal: $8.00\nTax: $0.64\nTotal: $8.64\nDate: 01/02/2024"
	fields := ParseReceipt(text, nil)

	if fields.Vendor != "ACME CO" {
		t.Errorf("Vendor = %q, want ACME CO", fields.Vendor)
	}
	assertAmount(t, "Total", fields.Amounts.Total, "8.64")
	if fields.Date != "2024-01-02" {
		t.Errorf("Date = %q, want 2024-01-02", fields.Date)
	}
}

func TestParseReceiptEmptyText(t *testing.T) {
	for _, text := range []string{"", "   \n\t  "} {
		fields := ParseReceipt(text, nil)
		if fields.Amounts.Total != nil || fields.Vendor != "" || fields.Date != "" ||
			fields.InvoiceNumber != "" || len(fields.Items) != 0 {
			t.Errorf("ParseReceipt(%q) = %+v, want empty fields", text, fields)
		}
	}
}

func TestParseReceiptIdempotent(t *testing.T) {
	first := ParseReceipt(sampleReceipt, nil)
	second := ParseReceipt(sampleReceipt, nil)
	if first.Vendor != second.Vendor || first.Date != second.Date ||
		first.InvoiceNumber != second.InvoiceNumber ||
		!first.Amounts.Total.Equal(*second.Amounts.Total) ||
		len(first.Items) != len(second.Items) {
		t.Errorf("ParseReceipt not stable across calls:\n%+v\n%+v", first, second)
	}
}

func TestScore(t *testing.T) {
	full := ParseReceipt(sampleReceipt, nil)
	if got := Score(full); got < 0.9 {
		t.Errorf("Score(full extraction) = %v, want >= 0.9", got)
	}

	empty := models.ReceiptFields{}
	if got := Score(empty); got != 0 {
		t.Errorf("Score(empty) = %v, want 0", got)
	}

	partial := models.ReceiptFields{Vendor: "ACME", Date: "2024-01-02"}
	got := Score(partial)
	if got <= 0 || got >= Score(full) {
		t.Errorf("Score(partial) = %v, want between 0 and the full score", got)
	}
}
