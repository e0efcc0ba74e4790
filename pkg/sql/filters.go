package sql

import (
	"regexp"
	"strings"
)

// tautologyPatterns are always-false conditions models emit as a
// fallback when they cannot satisfy a request. Whitespace-tolerant.
var tautologyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`1\s*=\s*0`),
	regexp.MustCompile(`0\s*=\s*1`),
	regexp.MustCompile(`where\s+false`),
	regexp.MustCompile(`1\s*!=\s*1`),
	regexp.MustCompile(`1\s*<>\s*1`),
}

// selfErrorPattern matches SQL that selects an error message as a string
// literal, e.g. SELECT 'Error: Column "salary" does not exist' AS msg.
var selfErrorPattern = regexp.MustCompile(`select\s+'[^']*error[^']*'`)

// CheckTautology reports whether the SQL contains an always-false
// condition. Runs against the full lower-cased text, before any
// identifier extraction.
func CheckTautology(sql string) bool {
	lower := strings.ToLower(sql)
	for _, pat := range tautologyPatterns {
		if pat.MatchString(lower) {
			return true
		}
	}
	return false
}

// CheckSelfReportedError reports whether the SQL text itself signals an
// error or missing-column condition instead of a real query. The
// "does not exist" check also covers the column-specific phrasing.
func CheckSelfReportedError(sql string) bool {
	lower := strings.ToLower(sql)
	if selfErrorPattern.MatchString(lower) {
		return true
	}
	return strings.Contains(lower, "does not exist")
}
