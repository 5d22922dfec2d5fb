// Package matcher finds corpus lines containing the query - case-sensitive or case-insensitive
package matcher

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MatchLines returns the lines of corpus containing query, in their original order.
// In case-insensitive mode both sides are lower-cased for the check only,
// the returned lines keep their original text.
func MatchLines(query, corpus string, caseSensitive bool) []string {
	if !caseSensitive {
		query = strings.ToLower(query) // паттерн приводим к нижнему регистру один раз
	}

	result := []string{}
	for _, line := range Lines(corpus) {
		candidate := line
		if !caseSensitive {
			candidate = strings.ToLower(line)
		}
		if strings.Contains(candidate, query) {
			result = append(result, line)
		}
	}
	return result
}

func Search(query, corpus string) []string {
	return MatchLines(query, corpus, true)
}

func SearchCaseInsensitive(query, corpus string) []string {
	return MatchLines(query, corpus, false)
}

// Lines splits corpus on '\n'. A final newline doesn't produce an empty line
// and a '\r' right before '\n' is dropped. Lines share memory with corpus.
func Lines(corpus string) []string {
	if corpus == "" {
		return []string{}
	}

	lines := strings.Split(corpus, "\n")
	last := len(lines) - 1
	// '\r' отрезается только у строк, за которыми шел '\n'
	for i := 0; i < last; i++ {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	if lines[last] == "" {
		lines = lines[:last]
	}
	return lines
}

// Occurrences returns non-overlapping byte ranges [start, end) of query inside line.
// Empty query has no ranges to highlight.
func Occurrences(line, query string, caseSensitive bool) [][2]int {
	if query == "" {
		return nil
	}

	haystack := line
	if !caseSensitive {
		// смещения совпадают, только если ни одна руна не меняет ширину в байтах
		if !lowerKeepsWidth(line) {
			return nil
		}
		haystack = strings.ToLower(line)
		query = strings.ToLower(query)
	}

	var ranges [][2]int
	offset := 0
	for {
		i := strings.Index(haystack[offset:], query)
		if i < 0 {
			return ranges
		}
		start := offset + i
		ranges = append(ranges, [2]int{start, start + len(query)})
		offset = start + len(query)
	}
}

func lowerKeepsWidth(s string) bool {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if utf8.RuneLen(unicode.ToLower(r)) != size {
			return false
		}
		i += size
	}
	return true
}
