package classify

import "strings"

// Rule tables are declarative data so precedence is visible and testable in
// isolation, instead of being buried in conditional chains.

// dateNameKeywords force the date role by column name alone.
var dateNameKeywords = []string{"date"}

// chartExcludedKeywords mark free-text columns that remain categorical but
// must never be auto-selected as the "best" categorical column for charting.
var chartExcludedKeywords = []string{
	"address",
	"street",
	"remarks",
	"notes",
	"description",
	"comment",
}

func nameMatchesAny(column string, keywords []string) bool {
	lower := strings.ToLower(column)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
