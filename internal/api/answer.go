package api

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// thousandsRe matches a number whose commas all sit between groups of three
// digits, e.g. "1,250" or "-12,000.5".
var thousandsRe = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)

// ParseAnswer converts free-text answer input into the numeric value sent to
// the service.
//
// Normalization rules:
// - Whitespace is trimmed
// - Thousands separators are ignored (e.g., "1,250" parses as 1250)
// - Any other comma is rejected, so "1,5" is not read as 15
// - NaN and infinities are rejected
func ParseAnswer(input string) (float64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, &ValidationError{Input: input, Reason: "empty"}
	}
	if strings.Contains(s, ",") {
		if !thousandsRe.MatchString(s) {
			return 0, &ValidationError{Input: input, Reason: "misplaced comma"}
		}
		s = strings.ReplaceAll(s, ",", "")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ValidationError{Input: input, Reason: "not a number"}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ValidationError{Input: input, Reason: "not a finite number"}
	}
	return f, nil
}
