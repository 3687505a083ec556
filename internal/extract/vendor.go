package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/scanstation/receipt-ocr/internal/models"
)

// Vendor names sit at the top of a receipt, usually in the largest print.
// With word geometry available the locator ranks top-of-page lines by glyph
// height; without it, it falls back to scanning the first text lines.
const (
	// minWordConfidence drops recognizer guesses too weak to trust for
	// layout analysis.
	minWordConfidence = 10
	// lineBandHeight groups words into lines by 20px vertical bands.
	lineBandHeight = 20
	// topLineFloor is the minimum number of bands examined even on short
	// documents; otherwise the top 40% of bands are examined.
	topLineFloor = 15
	// maxVendorLineWords skips long lines, which are usually addresses or
	// marketing text rather than names.
	maxVendorLineWords = 5
	// preferredVendorWords marks the short lines most likely to be names.
	preferredVendorWords = 3
	// headLineCount bounds the text-only scan to the top of the receipt.
	headLineCount = 10
)

var (
	numericLinePattern = regexp.MustCompile(`^[\d\s\-\/\.]+$`)
	dollarLinePattern  = regexp.MustCompile(`[\$]\s*\d+\.\d{2}`)
	phoneLinePattern   = regexp.MustCompile(`\d{3}[-.]?\d{3}[-.]?\d{4}`)

	addressPattern = regexp.MustCompile(
		`(?i)\d+\s+(street|st|avenue|ave|road|rd|drive|dr|lane|ln|boulevard|blvd)`)
	// The first text-only pass filters a few extra street suffixes.
	addressPatternWide = regexp.MustCompile(
		`(?i)\d+\s+(street|st|avenue|ave|road|rd|drive|dr|lane|ln|boulevard|blvd|way|circle|ct)`)
	addressPatternNarrow = regexp.MustCompile(`(?i)\d+\s+(street|st|avenue|ave|road|rd|drive|dr)`)
)

var reservedVendorLines = map[string]struct{}{
	"receipt":   {},
	"invoice":   {},
	"thank you": {},
	"date":      {},
	"time":      {},
	"total":     {},
	"subtotal":  {},
	"tax":       {},
	"amount":    {},
	// Kroger's slogan shows up as the most prominent top line on their
	// receipts.
	"fresh for everyone": {},
}

// Vendor locates the vendor name, preferring word-geometry layout analysis
// when boxes are available and falling back to line heuristics. The result
// is cleaned of trailing recognition fragments.
func Vendor(text string, words []models.RecognizedWord) string {
	var vendor string
	if len(words) > 0 {
		vendor = vendorFromLayout(words)
	} else {
		vendor = vendorFromLines(text)
	}
	return CleanVendorName(vendor)
}

type vendorCandidate struct {
	text      string
	height    float64
	wordCount int
}

func vendorFromLayout(words []models.RecognizedWord) string {
	// Group words into lines by vertical band.
	bands := map[int][]models.RecognizedWord{}
	for _, w := range words {
		if strings.TrimSpace(w.Text) == "" || w.Confidence < minWordConfidence {
			continue
		}
		key := (w.Top / lineBandHeight) * lineBandHeight
		bands[key] = append(bands[key], w)
	}

	keys := make([]int, 0, len(bands))
	for k := range bands {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	// Vendor names live in the top portion of the page.
	top := max(topLineFloor, len(keys)*2/5)
	if top > len(keys) {
		top = len(keys)
	}

	var candidates []vendorCandidate
	for _, key := range keys[:top] {
		lineWords := bands[key]
		parts := make([]string, 0, len(lineWords))
		for _, w := range lineWords {
			if t := strings.TrimSpace(w.Text); t != "" {
				parts = append(parts, t)
			}
		}
		line := strings.TrimSpace(strings.Join(parts, " "))
		if len(line) < 3 || !plausibleVendorLine(line, addressPattern, true) {
			continue
		}
		wordCount := len(strings.Fields(line))
		if wordCount > maxVendorLineWords {
			continue
		}

		var heightSum int
		for _, w := range lineWords {
			heightSum += w.Height
		}
		candidates = append(candidates, vendorCandidate{
			text:      line,
			height:    float64(heightSum) / float64(len(lineWords)),
			wordCount: wordCount,
		})
	}
	if len(candidates) == 0 {
		return ""
	}

	// Short lines in large print are the best vendor signal.
	best := tallestCandidate(candidates, preferredVendorWords)
	if best == "" {
		best = tallestCandidate(candidates, 0)
	}
	return best
}

// tallestCandidate returns the candidate with the greatest average glyph
// height, restricted to lines of at most maxWords when maxWords is positive.
func tallestCandidate(candidates []vendorCandidate, maxWords int) string {
	best := ""
	bestHeight := -1.0
	for _, c := range candidates {
		if maxWords > 0 && c.wordCount > maxWords {
			continue
		}
		if c.height > bestHeight {
			best = c.text
			bestHeight = c.height
		}
	}
	return best
}

func vendorFromLines(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > headLineCount {
		lines = lines[:headLineCount]
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if len(line) < 3 || len(line) > 80 {
			continue
		}
		if !plausibleVendorLine(line, addressPatternWide, true) {
			continue
		}
		if n := len(strings.Fields(line)); n >= 1 && n <= preferredVendorWords {
			return line
		}
	}

	// Relaxed pass: no short business-name line found, take the longest
	// line that still survives the filters.
	best := ""
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if len(line) < 3 || len(line) > 100 {
			continue
		}
		if numericLinePattern.MatchString(line) || dollarLinePattern.MatchString(line) {
			continue
		}
		if addressPatternNarrow.MatchString(line) {
			continue
		}
		lower := strings.ToLower(line)
		if _, reserved := reservedVendorLines[lower]; reserved && lower != "fresh for everyone" {
			continue
		}
		if len(line) > len(best) {
			best = line
		}
	}
	return best
}

func plausibleVendorLine(line string, address *regexp.Regexp, checkPhone bool) bool {
	if numericLinePattern.MatchString(line) {
		return false
	}
	if dollarLinePattern.MatchString(line) {
		return false
	}
	if address.MatchString(line) {
		return false
	}
	if checkPhone && phoneLinePattern.MatchString(line) {
		return false
	}
	_, reserved := reservedVendorLines[strings.ToLower(line)]
	return !reserved
}

// CleanVendorName strips trailing recognition fragments from a vendor name.
// The first word always stays; the second survives at two or more characters
// so short suffixes like "CO" are kept, and later words must be substantial
// (three or more characters plus a vowel, or four or more characters).
func CleanVendorName(vendor string) string {
	words := strings.Fields(vendor)
	if len(words) <= 1 {
		return strings.TrimSpace(vendor)
	}

	cleaned := words[:1]
	for i, word := range words[1:] {
		if i == 0 {
			if len(word) >= 2 {
				cleaned = append(cleaned, word)
			}
			continue
		}
		if len(word) < 3 {
			continue
		}
		if strings.ContainsAny(strings.ToLower(word), "aeiou") || len(word) >= 4 {
			cleaned = append(cleaned, word)
		}
	}
	return strings.Join(cleaned, " ")
}
