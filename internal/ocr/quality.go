package ocr

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/scanstation/receipt-ocr/internal/models"
)

const (
	// minPlausibleLength is the shortest text worth treating as a real
	// recognition result.
	minPlausibleLength = 10
	// minLetterRatio rejects noise-dominated output.
	minLetterRatio = 0.25
	// maxSymbolRatio rejects output that is mostly punctuation garbage.
	maxSymbolRatio = 0.5
	// minLetteredTokens requires at least this many whitespace tokens
	// containing a letter.
	minLetteredTokens = 2
	// keywordRankBonus pushes keyword-bearing candidates ahead of longer
	// ones during selection.
	keywordRankBonus = 1000
)

// receiptKeywords are terms whose presence marks text as genuine receipt
// content even when the character statistics look poor.
var receiptKeywords = []string{
	"kroger", "total", "balance", "tax", "subtotal",
	"amount", "receipt", "invoice", "date", "cashier",
}

var currencyAmountPattern = regexp.MustCompile(`[\d,]+\.\d{2}`)

// HasReceiptKeyword reports whether text contains any known receipt term,
// case-insensitively.
func HasReceiptKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range receiptKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// HasCurrencyAmount reports whether text contains something shaped like a
// monetary amount (digits with two decimals).
func HasCurrencyAmount(text string) bool {
	return currencyAmountPattern.MatchString(text)
}

// IsPlausible judges whether recognized text looks like real receipt content
// rather than recognition noise. Texts carrying a receipt keyword are
// accepted outright once they clear the length floor.
func IsPlausible(text string) bool {
	text = strings.TrimSpace(text)
	if len(text) < minPlausibleLength {
		return false
	}
	if HasReceiptKeyword(text) {
		return true
	}

	var letters, symbols int
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			letters++
		case !unicode.IsDigit(r) && !unicode.IsSpace(r):
			symbols++
		}
	}
	total := float64(len([]rune(text)))
	if float64(letters)/total < minLetterRatio {
		return false
	}
	if float64(symbols)/total > maxSymbolRatio {
		return false
	}

	lettered := 0
	for _, tok := range strings.Fields(text) {
		if strings.IndexFunc(tok, unicode.IsLetter) >= 0 {
			lettered++
		}
	}
	return lettered >= minLetteredTokens
}

func letterCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

// SelectBest picks the final text from the accepted candidates, ranking by
// keyword presence, then length, then letter count. When no candidate was
// accepted it falls back to the raw attempt texts: the longest one carrying
// a keyword or currency amount, else simply the longest.
func SelectBest(candidates []models.RecognitionCandidate, rawTexts []string) string {
	if len(candidates) > 0 {
		ranked := make([]models.RecognitionCandidate, len(candidates))
		copy(ranked, candidates)
		sort.SliceStable(ranked, func(i, j int) bool {
			return rankGreater(candidateRank(ranked[i]), candidateRank(ranked[j]))
		})
		return ranked[0].Text
	}

	var usable []string
	for _, t := range rawTexts {
		if len(strings.TrimSpace(t)) > minPlausibleLength {
			usable = append(usable, strings.TrimSpace(t))
		}
	}
	if len(usable) == 0 {
		return ""
	}

	best := ""
	for _, t := range usable {
		if (HasReceiptKeyword(t) || HasCurrencyAmount(t)) && len(t) > len(best) {
			best = t
		}
	}
	if best != "" {
		return best
	}
	for _, t := range usable {
		if len(t) > len(best) {
			best = t
		}
	}
	return best
}

func candidateRank(c models.RecognitionCandidate) [3]int {
	rank := [3]int{0, len(c.Text), letterCount(c.Text)}
	if HasReceiptKeyword(c.Text) {
		rank[0] = keywordRankBonus
	}
	return rank
}

func rankGreater(a, b [3]int) bool {
	for k := range a {
		if a[k] != b[k] {
			return a[k] > b[k]
		}
	}
	return false
}
