package models

import (
	"github.com/shopspring/decimal"
)

// RecognizedWord is a single token reported by the OCR engine, with its
// bounding box in pixel coordinates of the recognized image.
type RecognizedWord struct {
	Text       string `json:"text"`
	Confidence int    `json:"confidence"` // 0-100
	Left       int    `json:"left"`
	Top        int    `json:"top"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

// RecognitionCandidate is the output of one recognition strategy. Candidates
// are transient: all but the winner are discarded after selection.
type RecognitionCandidate struct {
	Strategy string
	Text     string
	Words    []RecognizedWord
	// Fallback marks a candidate that failed the quality check but was kept
	// because it contains a receipt keyword or a currency-like amount.
	Fallback bool
}

// AmountSet holds the monetary fields extracted from a receipt. Nil means the
// field was not found. Total is populated whenever it can be derived, even if
// only via the largest-amount fallback.
type AmountSet struct {
	Total    *decimal.Decimal `json:"total,omitempty"`
	Subtotal *decimal.Decimal `json:"subtotal,omitempty"`
	Tax      *decimal.Decimal `json:"tax,omitempty"`
	Discount *decimal.Decimal `json:"discount,omitempty"`
}

// Item is a single line item: a description and its price.
type Item struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ReceiptFields is the structured result of parsing OCR text. Every field is
// optional; an all-zero ReceiptFields is a valid parse of unusable input.
type ReceiptFields struct {
	Amounts       AmountSet `json:"amounts"`
	Date          string    `json:"date,omitempty"` // YYYY-MM-DD
	Vendor        string    `json:"vendor,omitempty"`
	InvoiceNumber string    `json:"invoiceNumber,omitempty"`
	Items         []Item    `json:"items,omitempty"`
}

// ProcessResult is what the pipeline hands to the classifier and ledger
// collaborators: the winning OCR text, its word boxes when available, and the
// parsed fields.
type ProcessResult struct {
	Text       string           `json:"text"`
	Words      []RecognizedWord `json:"words,omitempty"`
	Fields     ReceiptFields    `json:"fields"`
	Confidence float64          `json:"confidence"` // extraction completeness, 0-1
}
