package sql

import (
	"regexp"
	"sort"
	"strings"
)

var (
	wordRunPattern    = regexp.MustCompile(`[a-zA-Z0-9_]+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// sqlKeywords is the stoplist of tokens that are never treated as
// identifier candidates.
var sqlKeywords = map[string]struct{}{
	"select": {}, "from": {}, "where": {}, "and": {}, "or": {},
	"order": {}, "by": {}, "group": {}, "having": {}, "limit": {},
	"offset": {}, "asc": {}, "desc": {}, "join": {}, "left": {},
	"right": {}, "inner": {}, "on": {}, "as": {}, "in": {}, "is": {},
	"null": {}, "not": {}, "between": {}, "like": {}, "distinct": {},
	"count": {}, "sum": {}, "avg": {}, "min": {}, "max": {},
	"case": {}, "when": {}, "then": {}, "else": {},
}

// ExtractIdentifiers produces the lower-cased candidate identifiers of a
// generated SQL statement: backticked names (whole and per word) plus the
// identifier tokens of the SELECT and WHERE clauses, with string-literal
// contents, SQL keywords and single-character tokens excluded.
//
// The result is sorted for deterministic iteration; candidate identity,
// not position, is what validation cares about.
func ExtractIdentifiers(sql string) []string {
	stripped := StripStringLiterals(sql)

	candidates := make(map[string]struct{})

	for _, bt := range BacktickedIdentifiers(stripped) {
		lower := strings.ToLower(bt)
		candidates[whitespacePattern.ReplaceAllString(lower, "_")] = struct{}{}
		for _, w := range wordRunPattern.FindAllString(lower, -1) {
			candidates[w] = struct{}{}
		}
	}

	for _, tok := range IdentifierTokens(StripAliases(SelectClause(stripped))) {
		candidates[tok] = struct{}{}
	}
	for _, tok := range IdentifierTokens(WhereClause(stripped)) {
		candidates[tok] = struct{}{}
	}

	result := make([]string, 0, len(candidates))
	for c := range candidates {
		if c == "" || len(c) <= 1 {
			continue
		}
		if _, isKeyword := sqlKeywords[c]; isKeyword {
			continue
		}
		result = append(result, c)
	}
	sort.Strings(result)
	return result
}
