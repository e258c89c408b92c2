// Package token defines the token kinds produced by the lexer and the
// Token value that pairs a kind with the source fragment it came from.
package token

import (
	"fmt"

	"github.com/pljit/pljit/source"
)

// Kind enumerates every token the lexer can produce.
type Kind int

const (
	PROGRAM_TERMINATOR Kind = iota // .
	STATEMENT_TERMINATOR           // ;
	SEPARATOR                      // ,
	INIT_ASSIGN_OP                 // =
	VAR_ASSIGN_OP                  // :=
	PLUS                           // +
	MINUS                          // -
	MULT                           // *
	DIV                            // /
	L_PAREN                        // (
	R_PAREN                        // )
	LITERAL
	IDENTIFIER
	PARAM
	VAR
	CONST
	BEGIN
	END
	RETURN
	EOS
)

var kindNames = map[Kind]string{
	PROGRAM_TERMINATOR:   "PROGRAM_TERMINATOR",
	STATEMENT_TERMINATOR: "STATEMENT_TERMINATOR",
	SEPARATOR:            "SEPARATOR",
	INIT_ASSIGN_OP:       "INIT_ASSIGN_OP",
	VAR_ASSIGN_OP:        "VAR_ASSIGN_OP",
	PLUS:                 "PLUS",
	MINUS:                "MINUS",
	MULT:                 "MULT",
	DIV:                  "DIV",
	L_PAREN:              "L_PAREN",
	R_PAREN:              "R_PAREN",
	LITERAL:              "LITERAL",
	IDENTIFIER:           "IDENTIFIER",
	PARAM:                "PARAM",
	VAR:                  "VAR",
	CONST:                "CONST",
	BEGIN:                "BEGIN",
	END:                  "END",
	RETURN:               "RETURN",
	EOS:                  "EOS",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps a reserved spelling to its keyword Kind.
var Keywords = map[string]Kind{
	"PARAM":  PARAM,
	"VAR":    VAR,
	"CONST":  CONST,
	"BEGIN":  BEGIN,
	"END":    END,
	"RETURN": RETURN,
}

// Token is a single lexed unit: its kind, the fragment of source it
// covers, and for LITERAL tokens the decimal value it denotes.
type Token struct {
	Kind     Kind
	Fragment source.Fragment
	Literal  int64 // valid only when Kind == LITERAL
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Kind, t.Fragment.Str())
}
