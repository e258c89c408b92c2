// Package lexer scans a source.Buffer into a stream of token.Token
// values, one token at a time.
package lexer

import (
	"strconv"

	"github.com/pljit/pljit/diag"
	"github.com/pljit/pljit/source"
	"github.com/pljit/pljit/token"
)

// Lexer holds the current scan position into a Buffer.
type Lexer struct {
	buf *source.Buffer
	pos source.Position
}

// New creates a Lexer positioned at the start of buf.
func New(buf *source.Buffer) *Lexer {
	return &Lexer{buf: buf, pos: buf.Begin()}
}

// Pos returns the lexer's current position, useful for diagnostics after
// Next returns an error.
func (l *Lexer) Pos() source.Position { return l.pos }

func (l *Lexer) atEnd(p source.Position) bool {
	return p.Compare(l.buf.End()) == 0
}

func (l *Lexer) charAt(p source.Position) byte {
	if l.atEnd(p) {
		return 0
	}
	return p.Deref()
}

func isDigit(ch byte) bool  { return ch >= '0' && ch <= '9' }
func isLetter(ch byte) bool { return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' }
func isSpace(ch byte) bool  { return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' }

func (l *Lexer) skipWhitespace() {
	for !l.atEnd(l.pos) && isSpace(l.charAt(l.pos)) {
		l.pos = l.pos.Next()
	}
}

var singleChar = map[byte]token.Kind{
	'.': token.PROGRAM_TERMINATOR,
	';': token.STATEMENT_TERMINATOR,
	',': token.SEPARATOR,
	'=': token.INIT_ASSIGN_OP,
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.MULT,
	'/': token.DIV,
	'(': token.L_PAREN,
	')': token.R_PAREN,
}

// Next returns the next token, or a diagnostic if the current character
// does not begin any recognized token. On error the lexer's position is
// left at the offending character.
func (l *Lexer) Next() (*token.Token, *diag.Diagnostic) {
	l.skipWhitespace()

	start := l.pos

	if l.atEnd(start) {
		return &token.Token{Kind: token.EOS, Fragment: source.NewFragment(start, start)}, nil
	}

	ch := l.charAt(start)

	if kind, ok := singleChar[ch]; ok {
		end := start.Next()
		l.pos = end
		return &token.Token{Kind: kind, Fragment: source.NewFragment(start, end)}, nil
	}

	if ch == ':' {
		afterColon := start.Next()
		if l.charAt(afterColon) == '=' {
			end := afterColon.Next()
			l.pos = end
			return &token.Token{Kind: token.VAR_ASSIGN_OP, Fragment: source.NewFragment(start, end)}, nil
		}
		return nil, diag.New(diag.Lexical, source.NewFragment(start, start.Next()), "lone ':' is not a valid token")
	}

	if isDigit(ch) {
		cursor := start
		for !l.atEnd(cursor) && isDigit(l.charAt(cursor)) {
			cursor = cursor.Next()
		}
		frag := source.NewFragment(start, cursor)
		value, err := strconv.ParseInt(frag.Str(), 10, 64)
		if err != nil {
			value = 0 // overflow on literals is unspecified; an out-of-range literal becomes 0 rather than failing
		}
		l.pos = cursor
		return &token.Token{Kind: token.LITERAL, Fragment: frag, Literal: value}, nil
	}

	if isLetter(ch) {
		cursor := start
		for !l.atEnd(cursor) && isLetter(l.charAt(cursor)) {
			cursor = cursor.Next()
		}
		frag := source.NewFragment(start, cursor)
		kind := token.IDENTIFIER
		if kw, ok := token.Keywords[frag.Str()]; ok {
			kind = kw
		}
		l.pos = cursor
		return &token.Token{Kind: kind, Fragment: frag}, nil
	}

	return nil, diag.New(diag.Lexical, source.NewFragment(start, start.Next()), "unrecognized character")
}

// TokenizeAll drains the lexer, returning every token up to and including
// EOS, or the first diagnostic encountered.
func TokenizeAll(buf *source.Buffer) ([]token.Token, *diag.Diagnostic) {
	l := New(buf)
	var tokens []token.Token
	for {
		tok, d := l.Next()
		if d != nil {
			return tokens, d
		}
		tokens = append(tokens, *tok)
		if tok.Kind == token.EOS {
			return tokens, nil
		}
	}
}
