package extract

import (
	"strings"

	"github.com/scanstation/receipt-ocr/internal/models"
)

// ParseReceipt extracts all structured fields from recognized receipt text.
// Word boxes are optional; when present they improve vendor location. Empty
// or whitespace-only text yields an empty field set.
func ParseReceipt(text string, words []models.RecognizedWord) models.ReceiptFields {
	if strings.TrimSpace(text) == "" {
		return models.ReceiptFields{}
	}
	return models.ReceiptFields{
		Amounts:       Amounts(text),
		Date:          Date(text),
		Vendor:        Vendor(text, words),
		InvoiceNumber: InvoiceNumber(text),
		Items:         Items(text),
	}
}
