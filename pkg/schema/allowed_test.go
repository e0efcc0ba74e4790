package schema

import (
	"testing"
)

func TestBuildAllowedNames_ColumnForms(t *testing.T) {
	a := BuildAllowedNames([]string{"Roll_No", "Candidate Last Name"}, "A4Zi")

	if _, ok := a.full["candidate_last_name"]; !ok {
		t.Error("expected whitespace-collapsed full name candidate_last_name")
	}
	if _, ok := a.words["candidate"]; !ok {
		t.Error("expected component word candidate")
	}
	if _, ok := a.words["roll_no"]; !ok {
		t.Error("expected column token roll_no")
	}
	// Table tokens go into both sets.
	if _, ok := a.words["a4zi"]; !ok {
		t.Error("expected table token in words")
	}
	if _, ok := a.full["a4zi"]; !ok {
		t.Error("expected table token in full")
	}
}

func TestMatches(t *testing.T) {
	a := BuildAllowedNames([]string{"Roll_No", "Candidate Last Name", "username"}, "A4Zi")

	tests := []struct {
		name  string
		ident string
		want  bool
	}{
		{"verbatim column", "roll_no", true},
		{"verbatim column uppercase input", "ROLL_NO", true},
		{"whole name with underscores", "candidate_last_name", true},
		{"component word", "candidate", true},
		{"table name", "a4zi", true},
		{"numeric literal", "42", true},
		{"prefix of allowed word", "cand", true},
		{"allowed word is prefix", "usernames", true},
		{"fuzzy near-miss", "usr_name", true},
		{"no similar allowed name", "zzqqxx", false},
		{"hallucinated column", "salary", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Matches(tt.ident); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.ident, got, tt.want)
			}
		})
	}
}

func TestMatches_EmptySchema(t *testing.T) {
	a := BuildAllowedNames(nil, "")

	if !a.Matches("123") {
		t.Error("numeric identifiers are always allowed")
	}
	if a.Matches("anything") {
		t.Error("non-numeric identifiers must be unknown when nothing is allowed")
	}
}

func TestMatches_PluralForms(t *testing.T) {
	a := BuildAllowedNames([]string{"person"}, "")

	// Irregular plural has no prefix relation to its singular.
	if !a.Matches("people") {
		t.Error("expected plural form of an allowed word to match")
	}
}

func TestUnknown_PreservesOrder(t *testing.T) {
	a := BuildAllowedNames([]string{"username"}, "")

	unknown := a.Unknown([]string{"username", "salary", "zzqqxx"})
	if len(unknown) != 2 || unknown[0] != "salary" || unknown[1] != "zzqqxx" {
		t.Errorf("Unknown() = %v, want [salary zzqqxx]", unknown)
	}
}

func TestSimilarityRatio(t *testing.T) {
	if r := similarityRatio("usr_name", "username"); r < 0.75 {
		t.Errorf("similarityRatio(usr_name, username) = %f, want >= 0.75", r)
	}
	if r := similarityRatio("zzqqxx", "username"); r >= 0.75 {
		t.Errorf("similarityRatio(zzqqxx, username) = %f, want < 0.75", r)
	}
	if r := similarityRatio("same", "same"); r != 1.0 {
		t.Errorf("similarityRatio(same, same) = %f, want 1.0", r)
	}
}

func TestMatches_Idempotent(t *testing.T) {
	a := BuildAllowedNames([]string{"Roll_No"}, "A4Zi")
	first := a.Matches("salary")
	second := a.Matches("salary")
	if first != second {
		t.Error("Matches must be stateless across calls")
	}
}
