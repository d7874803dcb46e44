// Package text holds small string helpers shared by log, error and event
// output.
package text

import "strings"

// minLen leaves room for one character plus "...".
const minLen = 4

// OneLine collapses every whitespace run in s, newlines included, into a
// single space and cuts the result to at most maxLen runes, ending in "..."
// when something was cut. maxLen below 4 is treated as 4.
func OneLine(s string, maxLen int) string {
	if maxLen < minLen {
		maxLen = minLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
