// Package sql provides heuristic analysis of model-generated SQL text:
// string-literal stripping, clause slicing, identifier extraction, and
// sanity filters. It is deliberately not a SQL parser; the clause
// boundaries are textual and do not understand subqueries.
package sql

import (
	"regexp"
	"strings"
)

var backtickPattern = regexp.MustCompile("`([^`]+)`")

// StripStringLiterals replaces the contents of single- and double-quoted
// string literals with empty literals of the same quoting style, so that
// words inside literal values never become identifier candidates.
//
// Single-quoted literals are stripped first, then double-quoted ones,
// each in an independent pass. SQL standard doubled-quote escapes
// ('it''s', "a""b") stay inside their literal. An unterminated quote
// leaves the remainder of the text untouched.
func StripStringLiterals(sql string) string {
	return stripQuoted(stripQuoted(sql, '\''), '"')
}

// stripQuoted replaces every span delimited by the given quote character
// with an empty pair of that quote. Only the one quote character is
// considered; the other quoting style is handled in its own pass.
func stripQuoted(s string, quote byte) string {
	var out strings.Builder
	out.Grow(len(s))

	i := 0
	for i < len(s) {
		c := s[i]
		if c != quote {
			out.WriteByte(c)
			i++
			continue
		}

		end := closingQuote(s, i+1, quote)
		if end == -1 {
			// Unterminated literal, keep the tail verbatim.
			out.WriteString(s[i:])
			break
		}
		out.WriteByte(quote)
		out.WriteByte(quote)
		i = end + 1
	}

	return out.String()
}

// closingQuote returns the index of the quote that terminates a literal
// opened just before position from, treating doubled quotes as escapes.
// Returns -1 if the literal never terminates.
func closingQuote(s string, from int, quote byte) int {
	for i := from; i < len(s); i++ {
		if s[i] != quote {
			continue
		}
		if i+1 < len(s) && s[i+1] == quote {
			i++ // escaped quote, still inside the literal
			continue
		}
		return i
	}
	return -1
}

// BacktickedIdentifiers returns the contents of every backtick-delimited
// identifier, verbatim and in order of appearance.
func BacktickedIdentifiers(sql string) []string {
	matches := backtickPattern.FindAllStringSubmatch(sql, -1)
	if len(matches) == 0 {
		return nil
	}
	idents := make([]string, 0, len(matches))
	for _, m := range matches {
		idents = append(idents, m[1])
	}
	return idents
}
