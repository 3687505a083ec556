// Package ledger persists processed receipts as expense entries.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/scanstation/receipt-ocr/internal/models"
)

// Entry is one processed receipt in the expense ledger. Monetary fields are
// zero when the receipt did not yield them.
type Entry struct {
	ID            uuid.UUID     `json:"id"`
	Filename      string        `json:"filename"`
	Vendor        string        `json:"vendor"`
	PurchaseDate  string        `json:"purchase_date"`
	InvoiceNumber string        `json:"invoice_number"`
	Category      string        `json:"category"`
	Total         float64       `json:"total"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	Discount      float64       `json:"discount"`
	Items         []models.Item `json:"items"`
	RawText       string        `json:"raw_text"`
	Confidence    float64       `json:"confidence"`
	ImageURL      string        `json:"image_url"`
	CreatedAt     time.Time     `json:"created_at"`
}

// CategorySummary aggregates spending for one category.
type CategorySummary struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Total    float64 `json:"total"`
}

// Ledger stores and reports on expense entries.
type Ledger interface {
	Save(ctx context.Context, entry *Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	SummaryByCategory(ctx context.Context) ([]CategorySummary, error)
	Close()
}

// NewEntry builds a ledger entry from a pipeline result.
func NewEntry(result models.ProcessResult, filename, category, imageURL string) *Entry {
	e := &Entry{
		Filename:      filename,
		Vendor:        result.Fields.Vendor,
		PurchaseDate:  result.Fields.Date,
		InvoiceNumber: result.Fields.InvoiceNumber,
		Category:      category,
		Items:         result.Fields.Items,
		RawText:       result.Text,
		Confidence:    result.Confidence,
		ImageURL:      imageURL,
	}
	amounts := result.Fields.Amounts
	if amounts.Total != nil {
		e.Total = amounts.Total.InexactFloat64()
	}
	if amounts.Subtotal != nil {
		e.Subtotal = amounts.Subtotal.InexactFloat64()
	}
	if amounts.Tax != nil {
		e.Tax = amounts.Tax.InexactFloat64()
	}
	if amounts.Discount != nil {
		e.Discount = amounts.Discount.InexactFloat64()
	}
	return e
}
