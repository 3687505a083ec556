package extract

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	mdyDatePattern = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`)
	ymdDatePattern = regexp.MustCompile(`(\d{4})[/-](\d{1,2})[/-](\d{1,2})`)
)

// Date finds the first plausible date in text and normalizes it to
// YYYY-MM-DD. Month-first forms are tried before year-first forms, matching
// the US receipts this pipeline mostly sees. Two-digit years pivot at 50.
func Date(text string) string {
	for _, m := range mdyDatePattern.FindAllStringSubmatch(text, -1) {
		if d := normalizeDate(m[3], m[1], m[2]); d != "" {
			return d
		}
	}
	for _, m := range ymdDatePattern.FindAllStringSubmatch(text, -1) {
		if d := normalizeDate(m[1], m[2], m[3]); d != "" {
			return d
		}
	}
	return ""
}

func normalizeDate(yearStr, monthStr, dayStr string) string {
	year, err1 := strconv.Atoi(yearStr)
	month, err2 := strconv.Atoi(monthStr)
	day, err3 := strconv.Atoi(dayStr)
	if err1 != nil || err2 != nil || err3 != nil {
		return ""
	}
	if year < 100 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
