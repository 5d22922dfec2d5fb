package matcher_test

import (
	"strings"
	"testing"

	"github.com/UnendingLoop/minigrep/internal/matcher"
	"github.com/stretchr/testify/require"
)

func TestMatchLines(t *testing.T) {
	cases := []struct {
		name          string
		query         string
		corpus        string
		caseSensitive bool
		wantRes       []string
	}{
		{
			name:          "Positive - case sensitive skips lower-case line",
			query:         "The",
			corpus:        "The road to hell\nis there to be seen.\n",
			caseSensitive: true,
			wantRes:       []string{"The road to hell"},
		},
		{
			name:          "Positive - case insensitive keeps original text",
			query:         "rust",
			corpus:        "Rust:\nsafe, fast, productive.\nPick three.\nTrust me.",
			caseSensitive: false,
			wantRes:       []string{"Rust:", "Trust me."},
		},
		{
			name:          "Positive - case sensitive misses other casing",
			query:         "rust",
			corpus:        "Rust:\nsafe, fast, productive.\nPick three.\nTrust me.",
			caseSensitive: true,
			wantRes:       []string{"Trust me."},
		},
		{
			name:          "Positive - upper-case query in insensitive mode",
			query:         "DUCT",
			corpus:        "Rust:\nsafe, fast, productive.\nPick three.",
			caseSensitive: false,
			wantRes:       []string{"safe, fast, productive."},
		},
		{
			name:          "Positive - absent query gives empty result",
			query:         "xyz",
			corpus:        "Rust:\nsafe, fast, productive.\nPick three.\nTrust me.",
			caseSensitive: true,
			wantRes:       []string{},
		},
		{
			name:          "Positive - empty query matches every line sensitive",
			query:         "",
			corpus:        "a\n\nB\n",
			caseSensitive: true,
			wantRes:       []string{"a", "", "B"},
		},
		{
			name:          "Positive - empty query matches every line insensitive",
			query:         "",
			corpus:        "a\n\nB",
			caseSensitive: false,
			wantRes:       []string{"a", "", "B"},
		},
		{
			name:          "Positive - empty corpus",
			query:         "any",
			corpus:        "",
			caseSensitive: true,
			wantRes:       []string{},
		},
		{
			name:          "Positive - empty corpus and empty query",
			query:         "",
			corpus:        "",
			caseSensitive: false,
			wantRes:       []string{},
		},
		{
			name:          "Positive - repeated occurrence listed once, duplicates kept",
			query:         "ab",
			corpus:        "abab\nx\nabab",
			caseSensitive: true,
			wantRes:       []string{"abab", "abab"},
		},
		{
			name:          "Positive - CRLF line endings",
			query:         "end",
			corpus:        "the end\r\nno\r\nweekend\r\n",
			caseSensitive: true,
			wantRes:       []string{"the end", "weekend"},
		},
		{
			name:          "Positive - unicode lower-casing",
			query:         "straße",
			corpus:        "STRAßE 1\nweg 2",
			caseSensitive: false,
			wantRes:       []string{"STRAßE 1"},
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			res := matcher.MatchLines(tt.query, tt.corpus, tt.caseSensitive)
			require.Equal(t, tt.wantRes, res)
		})
	}
}

func TestMatchLinesProperties(t *testing.T) {
	corpus := "Alpha beta\ngamma\nBETA delta\n\nbeta\nepsilon Beta"
	queries := []string{"", "beta", "Beta", "a", "zzz", "\n"}

	for _, q := range queries {
		for _, cs := range []bool{true, false} {
			first := matcher.MatchLines(q, corpus, cs)
			second := matcher.MatchLines(q, corpus, cs)
			require.Equal(t, first, second, "result must be idempotent for %q", q)

			// каждая строка результата содержит запрос и идет в исходном порядке
			lines := matcher.Lines(corpus)
			pos := 0
			for _, got := range first {
				if cs {
					require.Contains(t, got, q)
				} else {
					require.Contains(t, strings.ToLower(got), strings.ToLower(q))
				}
				for pos < len(lines) && lines[pos] != got {
					pos++
				}
				require.Less(t, pos, len(lines), "line %q out of order", got)
				pos++
			}
		}
	}
}

func TestSearchHelpers(t *testing.T) {
	corpus := "Rust:\nsafe, fast, productive.\nPick three.\nTrust me."
	require.Equal(t, []string{"Trust me."}, matcher.Search("rust", corpus))
	require.Equal(t, []string{"Rust:", "Trust me."}, matcher.SearchCaseInsensitive("rust", corpus))
}

func TestLines(t *testing.T) {
	cases := []struct {
		name    string
		corpus  string
		wantRes []string
	}{
		{name: "empty", corpus: "", wantRes: []string{}},
		{name: "single newline", corpus: "\n", wantRes: []string{""}},
		{name: "no trailing newline", corpus: "a\nb", wantRes: []string{"a", "b"}},
		{name: "trailing newline", corpus: "a\nb\n", wantRes: []string{"a", "b"}},
		{name: "two trailing newlines", corpus: "a\n\n", wantRes: []string{"a", ""}},
		{name: "crlf", corpus: "a\r\nb\r\n", wantRes: []string{"a", "b"}},
		{name: "lone cr kept", corpus: "a\rb", wantRes: []string{"a\rb"}},
		{name: "trailing cr without newline kept", corpus: "a\r", wantRes: []string{"a\r"}},
		{name: "crlf then trailing cr", corpus: "a\r\nb\r", wantRes: []string{"a", "b\r"}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.wantRes, matcher.Lines(tt.corpus))
		})
	}
}

func TestOccurrences(t *testing.T) {
	cases := []struct {
		name          string
		line          string
		query         string
		caseSensitive bool
		wantRes       [][2]int
	}{
		{name: "none", line: "abc", query: "x", caseSensitive: true, wantRes: nil},
		{name: "empty query", line: "abc", query: "", caseSensitive: true, wantRes: nil},
		{name: "non overlapping", line: "aaaa", query: "aa", caseSensitive: true, wantRes: [][2]int{{0, 2}, {2, 4}}},
		{name: "insensitive", line: "Trust rust", query: "RUST", caseSensitive: false, wantRes: [][2]int{{1, 5}, {6, 10}}},
		{name: "insensitive unicode same width", line: "Ärger RUST", query: "ärger", caseSensitive: false, wantRes: [][2]int{{0, 6}}},
		{name: "insensitive width changes balance out", line: "\u212AȺȺ rust", query: "rust", caseSensitive: false, wantRes: nil},
		{name: "insensitive invalid utf8", line: "\xff rust", query: "rust", caseSensitive: false, wantRes: nil},
		{name: "sensitive ignores width changes", line: "\u212AȺȺ rust", query: "rust", caseSensitive: true, wantRes: [][2]int{{8, 12}}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.wantRes, matcher.Occurrences(tt.line, tt.query, tt.caseSensitive))
		})
	}
}
