// Package extract pulls structured receipt fields out of recognized text
// using labeled-pattern matching with positional fallbacks.
package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/scanstation/receipt-ocr/internal/models"
)

// Labeled amount patterns, tried in order against lowercased text. The first
// parseable match per field wins.
var (
	// The leading \b keeps "total" from matching inside "subtotal".
	totalPatterns = compileAll(
		`\btotal[:\s]+[\$]?([\d,]+\.?\d*)`,
		`\bamount[:\s]+[\$]?([\d,]+\.?\d*)`,
		`[\$]([\d,]+\.?\d*)\s*(?:total|due|amount)`,
		`grand\s+total[:\s]+[\$]?([\d,]+\.?\d*)`,
		`\bbalance[:\s]+due[:\s]+[\$]?([\d,]+\.?\d*)`,
		// BALANCE: 10.53 (without "due")
		`\bbalance[:\s]+[\$]?([\d,]+\.?\d*)`,
		`\bamount\s+due[:\s]+[\$]?([\d,]+\.?\d*)`,
	)
	subtotalPatterns = compileAll(
		`\bsubtotal[:\s]+[\$]?([\d,]+\.?\d*)`,
		`\bsub\s+total[:\s]+[\$]?([\d,]+\.?\d*)`,
	)
	taxPatterns = compileAll(
		`\btax[:\s]+[\$]?([\d,]+\.?\d*)`,
		`\bvat[:\s]+[\$]?([\d,]+\.?\d*)`,
		`\bsales\s+tax[:\s]+[\$]?([\d,]+\.?\d*)`,
	)
	discountPatterns = compileAll(
		`\bdiscount[:\s]+[\$]?([\d,]+\.?\d*)`,
		`\bdiscount\s+amount[:\s]+[\$]?([\d,]+\.?\d*)`,
	)

	bareAmountPattern   = regexp.MustCompile(`[\$]?\s*([\d,]+\.\d{2})`)
	labeledWholePattern = regexp.MustCompile(`(?i)[\$]?\s*([\d,]+)(?:\.\d{0,2})?\s*(?:total|due|amount)`)
)

var (
	minReasonableAmount = decimal.NewFromFloat(0.01)
	maxReasonableAmount = decimal.NewFromInt(999999)
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?m)` + p)
	}
	return out
}

// Amounts extracts the monetary fields. When no labeled total matches, the
// total is derived from a labeled subtotal plus tax; failing that, the
// largest free-standing dollar amount stands in. Derivation comes first so a
// receipt's own subtotal and tax figures never masquerade as its total.
func Amounts(text string) models.AmountSet {
	lower := strings.ToLower(text)
	set := models.AmountSet{
		Total:    firstAmount(totalPatterns, lower),
		Subtotal: firstAmount(subtotalPatterns, lower),
		Tax:      firstAmount(taxPatterns, lower),
		Discount: firstAmount(discountPatterns, lower),
	}

	if set.Total == nil && set.Subtotal != nil {
		total := *set.Subtotal
		if set.Tax != nil {
			total = total.Add(*set.Tax)
		}
		set.Total = &total
	}
	if set.Total == nil {
		set.Total = largestFreeAmount(text)
	}
	return set
}

func firstAmount(patterns []*regexp.Regexp, lower string) *decimal.Decimal {
	for _, p := range patterns {
		m := p.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		if d, ok := parseAmount(m[1]); ok {
			return &d
		}
	}
	return nil
}

// largestFreeAmount scans for every dollar-shaped number in a reasonable
// range and returns the largest, which on receipts is usually the total.
func largestFreeAmount(text string) *decimal.Decimal {
	var best *decimal.Decimal
	consider := func(raw string) {
		d, ok := parseAmount(raw)
		if !ok || d.LessThan(minReasonableAmount) || d.GreaterThan(maxReasonableAmount) {
			return
		}
		if best == nil || d.GreaterThan(*best) {
			best = &d
		}
	}
	for _, m := range bareAmountPattern.FindAllStringSubmatch(text, -1) {
		consider(m[1])
	}
	// Whole-dollar figures like "$50 total" lack the decimal part.
	for _, m := range labeledWholePattern.FindAllStringSubmatch(text, -1) {
		consider(m[1])
	}
	return best
}

func parseAmount(raw string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
