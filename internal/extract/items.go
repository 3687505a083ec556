package extract

import (
	"regexp"
	"strings"

	"github.com/scanstation/receipt-ocr/internal/models"
)

// maxItems caps line items per receipt; anything past that is almost always
// recognition noise repeating itself.
const maxItems = 20

var itemAmountPattern = regexp.MustCompile(`[\$]?([\d,]+\.\d{2})`)

var summaryLabels = map[string]struct{}{
	"total":    {},
	"subtotal": {},
	"tax":      {},
	"discount": {},
}

// Items extracts line items: any line pairing a description with a trailing
// dollar amount, excluding the summary rows.
func Items(text string) []models.Item {
	var items []models.Item
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if len(line) < 5 {
			continue
		}
		loc := itemAmountPattern.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		amount, ok := parseAmount(line[loc[2]:loc[3]])
		if !ok {
			continue
		}
		description := strings.TrimSpace(line[:loc[0]])
		if len(description) < 3 {
			continue
		}
		if _, reserved := summaryLabels[strings.ToLower(description)]; reserved {
			continue
		}
		items = append(items, models.Item{Description: description, Amount: amount})
		if len(items) == maxItems {
			break
		}
	}
	return items
}
