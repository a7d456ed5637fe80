package insight

import (
	"strings" // Prompt assembly

	"finance_tracker/internal/domain" // Importing domain models
)

// BuildPrompt renders the fixed analysis prompt listing each transaction
// as "- category: $amount (type)". Transactions without a category are
// listed under "Other".
func BuildPrompt(transactions []domain.Transaction) string {
	var b strings.Builder
	b.WriteString("Analyze these financial transactions and provide brief insights:\n")
	for _, t := range transactions {
		category := "Other"
		if t.CategoryName != nil && *t.CategoryName != "" {
			category = *t.CategoryName
		}
		b.WriteString("- ")
		b.WriteString(category)
		b.WriteString(": $")
		b.WriteString(t.Amount.StringFixed(2))
		b.WriteString(" (")
		b.WriteString(t.Type)
		b.WriteString(")\n")
	}
	b.WriteString("\nProvide 2-3 specific, actionable insights in 2-3 sentences.")
	return b.String()
}
