package extract

import (
	"regexp"
	"strings"
)

var invoiceNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)invoice[#:\s]+([A-Z0-9\-]+)`),
	regexp.MustCompile(`(?i)receipt[#:\s]+([A-Z0-9\-]+)`),
	regexp.MustCompile(`(?i)#[:\s]+([A-Z0-9\-]{4,})`),
}

// InvoiceNumber returns the first labeled invoice or receipt identifier, or
// an empty string when none matches.
func InvoiceNumber(text string) string {
	for _, p := range invoiceNumberPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
