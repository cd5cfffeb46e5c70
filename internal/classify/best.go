package classify

import (
	"strings"

	"pulseboard/domain/table"
)

// Match is the result of a best-column lookup. Ambiguous lists every other
// candidate that tied on the winning keyword; callers that care about the
// latent ordering gap surface it instead of silently trusting the pick.
type Match struct {
	Column    string   `json:"column"`
	Keyword   string   `json:"keyword,omitempty"`
	Ambiguous []string `json:"ambiguous,omitempty"`
	Fallback  bool     `json:"fallback,omitempty"`
}

// FindBestColumn scans the role-filtered column set in keyword priority
// order: an exact name match beats a substring match, and earlier keywords
// beat later ones. When no keyword matches it falls back to the first column
// of the role (skipping chart-excluded categoricals), which is what lets the
// engine run without a declared schema.
func FindBestColumn(reg table.ColumnRegistry, role table.ColumnRole, keywords []string) (Match, bool) {
	candidates := reg.ColumnsWithRole(role)
	if role == table.RoleCategorical {
		candidates = dropChartExcluded(reg, candidates)
	}
	if len(candidates) == 0 {
		return Match{}, false
	}

	for _, kw := range keywords {
		lower := strings.ToLower(kw)

		if m, ok := pick(candidates, func(c string) bool {
			return strings.ToLower(c) == lower
		}); ok {
			m.Keyword = kw
			return m, true
		}

		if m, ok := pick(candidates, func(c string) bool {
			return strings.Contains(strings.ToLower(c), lower)
		}); ok {
			m.Keyword = kw
			return m, true
		}
	}

	// Candidates come back sorted, so the fallback is deterministic even
	// though it is arbitrary.
	return Match{Column: candidates[0], Fallback: true}, true
}

// pick selects the first matching candidate and records any ties. Candidates
// are in sorted name order, so the pick does not depend on map iteration.
func pick(candidates []string, matches func(string) bool) (Match, bool) {
	var hits []string
	for _, c := range candidates {
		if matches(c) {
			hits = append(hits, c)
		}
	}
	if len(hits) == 0 {
		return Match{}, false
	}
	m := Match{Column: hits[0]}
	if len(hits) > 1 {
		m.Ambiguous = hits[1:]
	}
	return m, true
}

func dropChartExcluded(reg table.ColumnRegistry, candidates []string) []string {
	var kept []string
	for _, c := range candidates {
		if !reg.IsChartExcluded(c) {
			kept = append(kept, c)
		}
	}
	return kept
}
