package sql

import (
	"regexp"
	"strings"
)

var (
	// Clause starts: everything after the first keyword occurrence, to
	// end of text. The stop keyword search below trims the tail.
	selectStartPattern = regexp.MustCompile(`(?is)select\s+(.*)`)
	whereStartPattern  = regexp.MustCompile(`(?is)where\s+(.*)`)

	// Stop keywords that terminate a clause, word-boundary matched.
	selectStopPatterns = compileStopPatterns("from")
	whereStopPatterns  = compileStopPatterns("group", "order", "limit", ";")

	// Alias forms inside a SELECT list. Explicit "expr AS alias" and the
	// implicit space-separated "expr alias" pair SQL also permits.
	asAliasPattern       = regexp.MustCompile(`(?i)\bas\s+[a-zA-Z_][a-zA-Z0-9_]*`)
	implicitAliasPattern = regexp.MustCompile(`\b[a-zA-Z_][a-zA-Z0-9_]*\s+[a-zA-Z_][a-zA-Z0-9_]*\b`)

	identTokenPattern = regexp.MustCompile(`\b[a-zA-Z_][a-zA-Z0-9_]*\b`)
)

func compileStopPatterns(keywords ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
	}
	return patterns
}

// SelectClause returns the text between the first SELECT and the earliest
// following FROM, or to end of text if no FROM follows. Empty when the
// SQL contains no SELECT. A subquery's SELECT list is not isolated
// separately; the first SELECT wins.
func SelectClause(sql string) string {
	return extractClause(sql, selectStartPattern, selectStopPatterns)
}

// WhereClause returns the text between the first WHERE and the earliest
// of GROUP, ORDER, LIMIT or a statement terminator.
func WhereClause(sql string) string {
	return extractClause(sql, whereStartPattern, whereStopPatterns)
}

func extractClause(sql string, start *regexp.Regexp, stops []*regexp.Regexp) string {
	m := start.FindStringSubmatch(sql)
	if m == nil {
		return ""
	}
	rest := m[1]

	cut := -1
	for _, stop := range stops {
		if loc := stop.FindStringIndex(rest); loc != nil && (cut == -1 || loc[0] < cut) {
			cut = loc[0]
		}
	}
	if cut == -1 {
		return rest
	}
	return rest[:cut]
}

// StripAliases removes column aliases from a SELECT clause so that alias
// names are not validated as schema identifiers. Both "expr AS alias"
// and the implicit "expr alias" pair collapse to the expression side.
func StripAliases(selectClause string) string {
	cleaned := asAliasPattern.ReplaceAllString(selectClause, "")
	return implicitAliasPattern.ReplaceAllStringFunc(cleaned, func(pair string) string {
		return strings.Fields(pair)[0]
	})
}

// IdentifierTokens returns the identifier-shaped tokens of a clause,
// lower-cased, in order of appearance.
func IdentifierTokens(clause string) []string {
	raw := identTokenPattern.FindAllString(clause, -1)
	if len(raw) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		tokens = append(tokens, strings.ToLower(tok))
	}
	return tokens
}
