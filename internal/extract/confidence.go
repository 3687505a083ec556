package extract

import (
	"github.com/shopspring/decimal"

	"github.com/scanstation/receipt-ocr/internal/models"
)

// Score rates how complete and self-consistent an extraction looks, on a
// 0.0-1.0 scale. It is a field-presence heuristic, not a probability.
func Score(fields models.ReceiptFields) float64 {
	var score float64

	// --- Critical fields (0.20 each) ---

	if fields.Amounts.Total != nil && fields.Amounts.Total.GreaterThan(decimal.Zero) {
		score += 0.20
	}

	if fields.Vendor != "" {
		score += 0.20
	}

	if fields.Date != "" {
		score += 0.20
	}

	// --- Important fields (0.05 each) ---

	if fields.Amounts.Subtotal != nil {
		score += 0.05
	}

	if fields.Amounts.Tax != nil {
		score += 0.05
	}

	if fields.InvoiceNumber != "" {
		score += 0.05
	}

	if len(fields.Items) > 0 {
		score += 0.05
	}

	// --- Bonus ---

	// Total is consistent with subtotal + tax (within 5% tolerance)
	if fields.Amounts.Total != nil && fields.Amounts.Subtotal != nil {
		expected := *fields.Amounts.Subtotal
		if fields.Amounts.Tax != nil {
			expected = expected.Add(*fields.Amounts.Tax)
		}
		diff := fields.Amounts.Total.Sub(expected).Abs()
		tolerance := fields.Amounts.Total.Mul(decimal.NewFromFloat(0.05))
		if diff.LessThanOrEqual(tolerance) {
			score += 0.20
		}
	}

	if score > 1.0 {
		score = 1.0
	}

	return score
}
