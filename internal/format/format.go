// Package format turns raw problem and explanation text into display pieces.
package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// sentenceRe matches a run of text ending in sentence punctuation.
var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]+`)

// stepStartRe matches the start of a numbered step on a new line, e.g. "\n2.".
var stepStartRe = regexp.MustCompile(`\n\s*\d+\.`)

// ProblemType title-cases each word of a problem type ("multi step" becomes
// "Multi Step"). An empty type displays as "Math".
func ProblemType(t string) string {
	if strings.TrimSpace(t) == "" {
		return "Math"
	}
	words := strings.Split(t, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// StepCount renders a step count for the difficulty badge.
func StepCount(n int) string {
	if n == 1 {
		return "1 step"
	}
	return fmt.Sprintf("%d steps", n)
}

// Sentences splits question text into trimmed sentences, keeping their
// punctuation. Text without sentence punctuation is returned whole.
func Sentences(question string) []string {
	if strings.TrimSpace(question) == "" {
		return nil
	}
	matches := sentenceRe.FindAllString(question, -1)
	if len(matches) == 0 {
		matches = []string{question}
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if s := strings.TrimSpace(m); s != "" {
			out = append(out, s)
		}
	}

	// Trailing text after the last punctuation mark.
	if loc := sentenceRe.FindAllStringIndex(question, -1); len(loc) > 0 {
		if tail := strings.TrimSpace(question[loc[len(loc)-1][1]:]); tail != "" {
			out = append(out, tail)
		}
	}
	return out
}

// Steps splits an explanation into its numbered steps. Each step starts at a
// line beginning with "<n>."; text before the first step is kept as its own
// entry. Empty pieces are dropped.
func Steps(explanation string) []string {
	if strings.TrimSpace(explanation) == "" {
		return nil
	}

	var parts []string
	rest := explanation
	for {
		loc := stepStartRe.FindStringIndex(rest)
		if loc == nil {
			parts = append(parts, rest)
			break
		}
		parts = append(parts, rest[:loc[0]])
		// Keep the number with the step that follows; skip the newline.
		rest = rest[loc[0]+1:]
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Number formats an answer without trailing zeros (7, 2.5, -0.25).
func Number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
