// Package duration extracts a shift length in hours from one free-text
// utterance, typed or transcribed.
package duration

import (
	"regexp"
	"strconv"
	"strings"
)

// numberWords covers the spoken vocabulary for whole hours.
var numberWords = map[string]float64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12,
}

// fractionWords is the only fractional vocabulary recognized. A fraction
// word is meaningful only after a number word; any other fractional phrasing
// is a no-match, never a partial value.
var fractionWords = map[string]float64{
	"half":           0.5,
	"quarter":        0.25,
	"three quarters": 0.75,
}

const numberWordAlt = `zero|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve`

var (
	// First decimal number anywhere in the text, unit suffix optional.
	numericRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:hours?|hrs?)?`)

	// <numberWord> [and] [a] <fraction>, unit suffix optional. The
	// "three quarters" alternative must precede "quarter" so the longer
	// phrase wins.
	compoundRe = regexp.MustCompile(`(?i)\b(` + numberWordAlt + `)(?:\s+and)?(?:\s+a)?\s+(three\s+quarters|half|quarter)\b(?:\s+(?:hours?|hrs?))?`)

	// Whole input is exactly one number word, unit suffix optional.
	bareWordRe = regexp.MustCompile(`(?i)^(` + numberWordAlt + `)(?:\s+(?:hours?|hrs?))?$`)

	spacesRe = regexp.MustCompile(`\s+`)
)

// Parse extracts an hour count from text. The boolean is false when no
// duration is detected; that is an expected outcome, not an error.
//
// Forms are tried in priority order, first match wins:
//  1. digits, with or without an hour unit ("2", "2.5 hours", "3 hrs")
//  2. number word plus fraction word ("two and a half", "one and quarter")
//  3. a bare number word as the entire input ("two", "ten hours")
//
// An input carrying both a digit and a number word resolves to the digit.
// Parse has no side effects and is safe for concurrent use.
func Parse(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	if m := numericRe.FindStringSubmatch(text); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return v, true
		}
	}

	if m := compoundRe.FindStringSubmatch(text); m != nil {
		base := numberWords[strings.ToLower(m[1])]
		frac := fractionWords[normalizeFraction(m[2])]
		return base + frac, true
	}

	if m := bareWordRe.FindStringSubmatch(text); m != nil {
		return numberWords[strings.ToLower(m[1])], true
	}

	return 0, false
}

// normalizeFraction collapses whitespace so "three   quarters" keys the
// fraction map the same as "three quarters".
func normalizeFraction(s string) string {
	return spacesRe.ReplaceAllString(strings.ToLower(s), " ")
}
