package lexer

import (
	"testing"

	"github.com/pljit/pljit/diag"
	"github.com/pljit/pljit/source"
	"github.com/pljit/pljit/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	toks, d := TokenizeAll(source.New(src))
	if d != nil {
		t.Fatalf("TokenizeAll(%q) returned diagnostic: %v", src, d)
	}
	var ks []token.Kind
	for _, tok := range toks {
		ks = append(ks, tok.Kind)
	}
	return ks
}

func TestLexerSymbols(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{"program terminator", ".", []token.Kind{token.PROGRAM_TERMINATOR, token.EOS}},
		{"var assign", ":=", []token.Kind{token.VAR_ASSIGN_OP, token.EOS}},
		{"arithmetic", "+-*/", []token.Kind{token.PLUS, token.MINUS, token.MULT, token.DIV, token.EOS}},
		{"parens", "()", []token.Kind{token.L_PAREN, token.R_PAREN, token.EOS}},
		{"keywords", "PARAM VAR CONST BEGIN END RETURN", []token.Kind{
			token.PARAM, token.VAR, token.CONST, token.BEGIN, token.END, token.RETURN, token.EOS,
		}},
		{"identifier not a keyword prefix", "Param", []token.Kind{token.IDENTIFIER, token.EOS}},
		{"literal", "12345", []token.Kind{token.LITERAL, token.EOS}},
		{"empty input", "", []token.Kind{token.EOS}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(t, tt.src)
			if len(got) != len(tt.want) {
				t.Fatalf("kinds = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("kinds[%d] = %v, want %v (full: %v)", i, got[i], tt.want[i], got)
				}
			}
		})
	}
}

func TestLexerLiteralValue(t *testing.T) {
	toks, d := TokenizeAll(source.New("2400"))
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if toks[0].Literal != 2400 {
		t.Fatalf("Literal = %d, want 2400", toks[0].Literal)
	}
}

func TestLexerLoneColonIsError(t *testing.T) {
	l := New(source.New(": x"))
	tok, d := l.Next()
	if d == nil {
		t.Fatalf("Next() = %v, want a diagnostic", tok)
	}
	if d.Kind != diag.Lexical {
		t.Fatalf("Kind = %v, want Lexical", d.Kind)
	}
	if l.Pos().Column() != 0 {
		t.Fatalf("position after error = %d, want 0 (left at offending character)", l.Pos().Column())
	}
}

func TestLexerInvalidCharacter(t *testing.T) {
	l := New(source.New("?"))
	_, d := l.Next()
	if d == nil {
		t.Fatalf("Next() on '?' should return a diagnostic")
	}
}

func TestLexerNewlineTerminatesTokenRun(t *testing.T) {
	toks, d := TokenizeAll(source.New("PARAM\nabc\n123"))
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	want := []token.Kind{token.PARAM, token.IDENTIFIER, token.LITERAL, token.EOS}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i := range want {
		if toks[i].Kind != want[i] {
			t.Fatalf("token[%d] = %v, want %v", i, toks[i].Kind, want[i])
		}
	}
	if got := toks[1].Fragment.Str(); got != "abc" {
		t.Fatalf("identifier fragment = %q, want %q", got, "abc")
	}
}

func TestLexerSkipsWhitespace(t *testing.T) {
	got := kinds(t, "  \t\n PARAM \n ")
	want := []token.Kind{token.PARAM, token.EOS}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}
