package schema

import (
	"regexp"
	"strings"

	"github.com/jinzhu/inflection"
	"github.com/pmezard/go-difflib/difflib"
)

// similarityThreshold is the minimum character-sequence similarity ratio
// for an identifier to be considered a near-miss of an allowed name.
const similarityThreshold = 0.75

var (
	wordRunPattern    = regexp.MustCompile(`[a-zA-Z0-9_]+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	numericPattern    = regexp.MustCompile(`^\d+$`)
)

// AllowedNames holds the normalized name sets derived from one request's
// columns and table name. It is rebuilt per request and never shared.
//
// words holds the individual alphanumeric/underscore tokens of every
// column and table name. full holds whole column names with whitespace
// collapsed to underscores, plus table-name tokens (table tokens are
// acceptable standalone identifiers, so they land in both sets).
type AllowedNames struct {
	words map[string]struct{}
	full  map[string]struct{}
}

// BuildAllowedNames derives the allowed-name sets from the request's
// column names and table name. All names are lower-cased first.
func BuildAllowedNames(columns []string, tableName string) *AllowedNames {
	a := &AllowedNames{
		words: make(map[string]struct{}),
		full:  make(map[string]struct{}),
	}

	for _, col := range columns {
		lc := strings.ToLower(col)
		a.full[whitespacePattern.ReplaceAllString(lc, "_")] = struct{}{}
		for _, w := range wordRunPattern.FindAllString(lc, -1) {
			a.words[w] = struct{}{}
		}
	}

	if tableName != "" {
		for _, w := range wordRunPattern.FindAllString(strings.ToLower(tableName), -1) {
			a.words[w] = struct{}{}
			a.full[w] = struct{}{}
		}
	}

	return a
}

// Matches reports whether an extracted identifier plausibly refers to an
// allowed name. The test is deliberately lenient: wrongly rejecting a
// real column is worse than occasionally letting a near-miss through.
//
// Decision order, first match wins:
//  1. purely numeric identifiers are always allowed
//  2. exact member of the full-name set
//  3. exact member of the word set
//  4. prefix relation (either direction) with any word
//  5. same singular form as any word (handles irregular plurals)
//  6. similarity ratio >= 0.75 against any word or full name
func (a *AllowedNames) Matches(ident string) bool {
	n := strings.ToLower(strings.TrimSpace(ident))
	if numericPattern.MatchString(n) {
		return true
	}
	if _, ok := a.full[n]; ok {
		return true
	}
	if _, ok := a.words[n]; ok {
		return true
	}

	for aw := range a.words {
		if strings.HasPrefix(n, aw) || strings.HasPrefix(aw, n) {
			return true
		}
	}

	singular := inflection.Singular(n)
	for aw := range a.words {
		if singular == inflection.Singular(aw) {
			return true
		}
	}

	for aw := range a.words {
		if similarityRatio(n, aw) >= similarityThreshold {
			return true
		}
	}
	for af := range a.full {
		if similarityRatio(n, af) >= similarityThreshold {
			return true
		}
	}

	return false
}

// Unknown returns the subset of candidates that match nothing in the
// allowed sets, preserving input order.
func (a *AllowedNames) Unknown(candidates []string) []string {
	var unknown []string
	for _, c := range candidates {
		if !a.Matches(c) {
			unknown = append(unknown, c)
		}
	}
	return unknown
}

// similarityRatio computes the character-level sequence similarity of two
// strings as a 0.0-1.0 ratio (2*matches / total length).
func similarityRatio(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}
