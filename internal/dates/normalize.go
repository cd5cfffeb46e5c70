// Package dates is the single point of truth for date parsing. Every
// component that touches a date value goes through Normalize, so one
// canonical YYYY-MM-DD form flows through the whole engine.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const canonicalLayout = "2006-01-02"

// Spreadsheet serial days count from the 1900 epoch. Day 1 is 1899-12-31 in
// the common formats, but the widely-shipped off-by-one (the phantom
// 1900-02-29) makes 1899-12-30 the working offset for modern serials.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var canonicalPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Layouts tried as a last resort, after the explicit delimiter handling.
var fallbackLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2006/01/02",
}

// Normalize parses a heterogeneous date value into canonical YYYY-MM-DD form.
// The second return is false when the value cannot be read as a date; callers
// exclude such rows from date-dependent aggregations rather than erroring.
func Normalize(value interface{}) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case time.Time:
		if v.IsZero() {
			return "", false
		}
		return v.Format(canonicalLayout), true
	case float64:
		return fromSerial(v)
	case float32:
		return fromSerial(float64(v))
	case int:
		return fromSerial(float64(v))
	case int64:
		return fromSerial(float64(v))
	case string:
		return normalizeString(strings.TrimSpace(v))
	default:
		return "", false
	}
}

func normalizeString(s string) (string, bool) {
	if s == "" {
		return "", false
	}

	// Already canonical: return unchanged once the components round-trip.
	if canonicalPattern.MatchString(s) {
		if _, ok := roundTrip(atoi(s[0:4]), atoi(s[5:7]), atoi(s[8:10])); ok {
			return s, true
		}
		return "", false
	}

	// Spreadsheet serials arrive as bare digit strings from CSV decoders.
	if !strings.ContainsAny(s, "/-. ") {
		if serial, err := strconv.ParseFloat(s, 64); err == nil {
			return fromSerial(serial)
		}
	}

	if out, ok := fromDelimited(s); ok {
		return out, true
	}

	// Generic calendar parse as a last resort.
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(canonicalLayout), true
		}
	}

	return "", false
}

// fromDelimited handles DD/MM/YYYY, DD-MM-YYYY, DD/MM/YY, YYYY/MM/DD and
// MM/DD/YYYY, disambiguated by field width. Day-first is the default; the
// US order is only assumed when the middle field cannot be a month.
func fromDelimited(s string) (string, bool) {
	sep := "/"
	if !strings.Contains(s, "/") {
		if !strings.Contains(s, "-") {
			return "", false
		}
		sep = "-"
	}

	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return "", false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	a, errA := strconv.Atoi(parts[0])
	b, errB := strconv.Atoi(parts[1])
	c, errC := strconv.Atoi(parts[2])
	if errA != nil || errB != nil || errC != nil {
		return "", false
	}

	var year, month, day int
	switch {
	case len(parts[0]) == 4:
		// YYYY-MM-DD or YYYY/MM/DD
		year, month, day = a, b, c
	case len(parts[2]) == 4:
		year = c
		if a <= 12 && b > 12 {
			// Middle field cannot be a month: MM/DD/YYYY.
			month, day = a, b
		} else {
			day, month = a, b
		}
	case len(parts[2]) == 2:
		// DD/MM/YY with pivot: <30 maps into the 2000s.
		day, month = a, b
		if c < 30 {
			year = 2000 + c
		} else {
			year = 1900 + c
		}
	default:
		return "", false
	}

	return roundTrip(year, month, day)
}

// fromSerial converts a spreadsheet serial day in the open range (1, 100000).
func fromSerial(serial float64) (string, bool) {
	if serial <= 1 || serial >= 100000 {
		return "", false
	}
	t := serialEpoch.AddDate(0, 0, int(serial))
	return t.Format(canonicalLayout), true
}

// roundTrip builds the date and checks the components survive unchanged,
// which rejects impossible dates like Feb 30 that time.Date would normalize.
func roundTrip(year, month, day int) (string, bool) {
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return t.Format(canonicalLayout), true
}

// MonthKey reduces a canonical date to its YYYY-MM bucket key.
func MonthKey(canonical string) string {
	if len(canonical) < 7 {
		return canonical
	}
	return canonical[:7]
}

// WeekStart returns the Sunday-aligned start of week for a canonical date.
func WeekStart(canonical string) (string, bool) {
	t, err := time.Parse(canonicalLayout, canonical)
	if err != nil {
		return "", false
	}
	t = t.AddDate(0, 0, -int(t.Weekday()))
	return t.Format(canonicalLayout), true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
