package registry

import "hash/fnv"

// canonicalColors pin each canonical category to one color so the same
// category renders identically across sessions and uploads.
var canonicalColors = map[string]string{
	"FOM":      "#3B82F6",
	"LFOM":     "#10B981",
	"POS FOM":  "#F59E0B",
	"POS LFOM": "#EF4444",
}

// palette colors non-canonical datasets by position among active datasets.
var palette = []string{
	"#6366F1",
	"#EC4899",
	"#14B8A6",
	"#F97316",
	"#8B5CF6",
	"#84CC16",
	"#06B6D4",
	"#D946EF",
}

// AssignColor is deterministic: canonical categories get their fixed color,
// everything else takes a palette slot by position among active datasets.
func AssignColor(rawName string, index int) string {
	if color, ok := canonicalColors[CanonicalName(rawName)]; ok {
		return color
	}
	if index < 0 {
		index = 0
	}
	return palette[index%len(palette)]
}

// StableColor trades position-stability for reorder-stability: the color is
// a pure function of the name, so removing a sibling dataset cannot shift it.
func StableColor(rawName string) string {
	if color, ok := canonicalColors[CanonicalName(rawName)]; ok {
		return color
	}
	h := fnv.New32a()
	h.Write([]byte(rawName))
	return palette[int(h.Sum32())%len(palette)]
}
