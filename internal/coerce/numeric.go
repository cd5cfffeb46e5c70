// Package coerce holds the lenient value coercion shared by the classifier
// and the aggregators. Uploaded business data is dirty: currency symbols,
// thousands separators, parenthesised negatives, stray quotes.
package coerce

import (
	"math"
	"strconv"
	"strings"
)

var currencyTokens = []string{"$", "€", "£", "¥", "₹", "USD", "EUR", "GBP", "INR"}

// ParseNumber attempts a lenient numeric parse. It strips formatting noise
// before handing the remainder to strconv; infinities and NaN are rejected.
func ParseNumber(raw string) (float64, bool) {
	cleanVal := strings.TrimSpace(raw)
	if cleanVal == "" {
		return 0, false
	}

	// Quoted cells show up when CSV escaping survives the decoder.
	cleanVal = strings.Trim(cleanVal, `"'`)

	// Parentheses mark negatives in accounting exports: (123) -> -123.
	isNegative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimSuffix(strings.TrimPrefix(cleanVal, "("), ")")
		isNegative = true
	}

	for _, token := range currencyTokens {
		cleanVal = strings.ReplaceAll(cleanVal, token, "")
	}
	cleanVal = strings.ReplaceAll(cleanVal, "%", "")
	cleanVal = strings.ReplaceAll(cleanVal, ",", "")
	cleanVal = strings.ReplaceAll(cleanVal, " ", "")

	if cleanVal == "" {
		return 0, false
	}
	if isNegative {
		cleanVal = "-" + cleanVal
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// NumberOrZero is the degrade-never-throw variant: unparseable values count
// as 0 so sums stay stable against placeholder dashes and free text.
func NumberOrZero(raw string) float64 {
	val, ok := ParseNumber(raw)
	if !ok {
		return 0
	}
	return val
}
