// Package diag holds the diagnostic taxonomy produced by the lex/parse/
// semantic-analysis pipeline: a typed error value the registry can return
// or optionally render, instead of writing straight to a global stream.
package diag

import (
	"fmt"
	"io"

	"github.com/pljit/pljit/source"
)

// Kind categorizes a Diagnostic into one of the four buckets the error
// taxonomy distinguishes.
type Kind int

const (
	Lexical Kind = iota
	Syntax
	Semantic
	Runtime
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical error"
	case Syntax:
		return "syntax error"
	case Semantic:
		return "semantic error"
	case Runtime:
		return "runtime error"
	default:
		return "error"
	}
}

// Diagnostic is a single compile-time failure, carrying the source
// fragment it points at so it can be rendered with a caret.
type Diagnostic struct {
	Fragment source.Fragment
	Message  string
	Kind     Kind
}

// New builds a Diagnostic.
func New(kind Kind, fragment source.Fragment, message string) *Diagnostic {
	return &Diagnostic{Fragment: fragment, Message: message, Kind: kind}
}

// Error satisfies the error interface so a *Diagnostic composes with
// ordinary Go error handling (fmt.Errorf("...: %w", diagnostic)).
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// String renders the diagnostic followed by the caret-annotated fragment,
// the format required for diagnostic/test parity.
func (d *Diagnostic) String() string {
	frag := d.Fragment.String()
	if frag == "" {
		return d.Error()
	}
	return fmt.Sprintf("%s\n%s", d.Error(), frag)
}

// Sink renders diagnostics to a writer. The compilation pipeline itself
// only returns *Diagnostic values; a Sink is how a facade (the CLI, a
// host application) chooses where and whether to print them.
type Sink struct {
	W io.Writer
}

// Report writes d in its caret-annotated form. A nil d is a no-op so
// callers can pass a pipeline result through unconditionally.
func (s Sink) Report(d *Diagnostic) {
	if d == nil {
		return
	}
	fmt.Fprintln(s.W, d.String())
}
