package pljitfmt

import "testing"

func TestLintFlagsUnusedVariable(t *testing.T) {
	issues := LintString("VAR x; BEGIN RETURN 1 END.")
	if !hasCode(issues, "UNUSED_DECLARATION") {
		t.Fatalf("issues = %v, want an UNUSED_DECLARATION finding", issues)
	}
}

func TestLintDoesNotFlagUsedVariable(t *testing.T) {
	issues := LintString("VAR x; BEGIN x := 1; RETURN x END.")
	if hasCode(issues, "UNUSED_DECLARATION") {
		t.Fatalf("issues = %v, want no UNUSED_DECLARATION finding", issues)
	}
}

func TestLintDoesNotFlagUnusedParameter(t *testing.T) {
	issues := LintString("PARAM a; BEGIN RETURN 1 END.")
	if hasCode(issues, "UNUSED_DECLARATION") {
		t.Fatalf("issues = %v, want parameters exempt from the unused check", issues)
	}
}

func TestLintFlagsUnreachableCode(t *testing.T) {
	issues := LintString("VAR x; BEGIN RETURN 1; x := 2 END.")
	if !hasCode(issues, "UNREACHABLE_CODE") {
		t.Fatalf("issues = %v, want an UNREACHABLE_CODE finding", issues)
	}
}

func TestLintReportsParseErrors(t *testing.T) {
	issues := LintString("BEGIN RETURN END.")
	if !hasCode(issues, "PARSE_ERROR") {
		t.Fatalf("issues = %v, want a PARSE_ERROR finding", issues)
	}
}

func hasCode(issues []*Issue, code string) bool {
	for _, i := range issues {
		if i.Code == code {
			return true
		}
	}
	return false
}
