package transaction

import "strings"

// Keyword sets signaling the direction of value flow. The scribes open
// receipt entries with forms of "empfangen"/"eingenommen" and spending
// entries with forms of "ausgeben"/"bezahlt"; everything else is recorded as
// a plain trade. Matched case-insensitively as substrings, so inflected
// forms ("Empfangen", "ausgaben") are caught.
var (
	incomeKeywords  = []string{"empfang", "eingenommen", "einnahme", "einnemen", "recept", "zins"}
	expenseKeywords = []string{"ausgab", "ausgeben", "bezahlt", "bezalt", "gekauft", "kauft", "exposit"}
)

// inferCategory derives the category from the text, once, at parse time.
func inferCategory(text string) Category {
	lower := strings.ToLower(text)

	for _, kw := range incomeKeywords {
		if strings.Contains(lower, kw) {
			return Income
		}
	}
	for _, kw := range expenseKeywords {
		if strings.Contains(lower, kw) {
			return Expense
		}
	}
	return Trade
}
