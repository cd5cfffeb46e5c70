package registry

import "strings"

// nameRule maps raw dataset names onto canonical short categories. Rules are
// evaluated in order and must stay most-specific-first: "lfom" contains
// "fom", so the bare "fom" rule can only run once every "lfom" rule missed.
type nameRule struct {
	canonical string
	all       []string // every token must appear
	none      []string // no token may appear
}

var nameRules = []nameRule{
	{canonical: "POS LFOM", all: []string{"pos", "lfom"}},
	{canonical: "POS FOM", all: []string{"pos", "fom"}, none: []string{"lfom"}},
	{canonical: "LFOM", all: []string{"lfom"}},
	{canonical: "FOM", all: []string{"fom"}, none: []string{"lfom"}},
}

// CanonicalName derives the normalized short display category from a raw
// dataset name. Unmatched names pass through unchanged.
func CanonicalName(raw string) string {
	lower := strings.ToLower(raw)
	for _, rule := range nameRules {
		if rule.matches(lower) {
			return rule.canonical
		}
	}
	return raw
}

func (r nameRule) matches(lower string) bool {
	for _, token := range r.all {
		if !strings.Contains(lower, token) {
			return false
		}
	}
	for _, token := range r.none {
		if strings.Contains(lower, token) {
			return false
		}
	}
	return true
}
