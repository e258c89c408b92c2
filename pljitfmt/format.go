// Package pljitfmt formats and lints PL source text: a pretty-printer
// that re-emits a parse tree with canonical spacing and indentation, and
// a linter that flags style and reachability issues the compiler itself
// doesn't treat as errors (unused declarations, dead statements after a
// return).
package pljitfmt

import (
	"fmt"
	"strings"

	"github.com/pljit/pljit/parsetree"
	"github.com/pljit/pljit/source"
	"github.com/pljit/pljit/token"
)

// Style names a formatting preset. Format does not read it: every style
// emits one line per declaration section and one indented line per
// statement, and only Options.IndentSize changes the output.
type Style int

const (
	StyleDefault  Style = iota // the DefaultOptions preset
	StyleCompact               // the CompactOptions preset
	StyleExpanded              // the ExpandedOptions preset
)

// Options controls formatter behavior.
type Options struct {
	Style      Style
	IndentSize int
}

// DefaultOptions returns the formatter's default options.
func DefaultOptions() *Options {
	return &Options{Style: StyleDefault, IndentSize: 4}
}

// CompactOptions returns the compact preset, which differs from the
// default only in indenting statements by zero spaces.
func CompactOptions() *Options {
	return &Options{Style: StyleCompact, IndentSize: 0}
}

// ExpandedOptions returns the expanded preset. Its output is the same as
// the default preset's; declarators are not split onto separate lines.
func ExpandedOptions() *Options {
	return &Options{Style: StyleExpanded, IndentSize: 4}
}

// Formatter re-emits parsed PL source in canonical form.
type Formatter struct {
	options *Options
	out     strings.Builder
}

// NewFormatter creates a Formatter. A nil options uses DefaultOptions.
func NewFormatter(options *Options) *Formatter {
	if options == nil {
		options = DefaultOptions()
	}
	return &Formatter{options: options}
}

// Format parses input and re-emits it in canonical form.
func (f *Formatter) Format(input string) (string, error) {
	p := parsetree.NewParser(source.New(input))
	tree := p.Parse()
	if tree == nil {
		return "", fmt.Errorf("parse error: %s", p.Errors().Error())
	}

	f.out.Reset()
	f.formatFunction(tree)
	return f.out.String(), nil
}

func (f *Formatter) formatFunction(fn *parsetree.FunctionDefinition) {
	if fn.Parameters != nil {
		f.out.WriteString("PARAM ")
		f.formatIdentifierList(fn.Parameters.Identifiers)
		f.out.WriteString(";\n")
	}
	if fn.Variables != nil {
		f.out.WriteString("VAR ")
		f.formatIdentifierList(fn.Variables.Identifiers)
		f.out.WriteString(";\n")
	}
	if fn.Constants != nil {
		f.out.WriteString("CONST ")
		for i, init := range fn.Constants.InitDeclarators {
			if i > 0 {
				f.out.WriteString(", ")
			}
			fmt.Fprintf(&f.out, "%s = %d", init.Identifier.Name, init.Literal.Value)
		}
		f.out.WriteString(";\n")
	}

	f.out.WriteString("BEGIN\n")
	indent := strings.Repeat(" ", f.options.IndentSize)
	for i, stmt := range fn.Body.Statements {
		if i > 0 {
			f.out.WriteString(";\n")
		}
		f.out.WriteString(indent)
		f.formatStatement(stmt)
	}
	f.out.WriteString("\n")
	f.out.WriteString("END.\n")
}

func (f *Formatter) formatIdentifierList(ids []*parsetree.Identifier) {
	for i, id := range ids {
		if i > 0 {
			f.out.WriteString(", ")
		}
		f.out.WriteString(id.Name)
	}
}

func (f *Formatter) formatStatement(stmt parsetree.Statement) {
	switch s := stmt.(type) {
	case *parsetree.ReturnStatement:
		f.out.WriteString("RETURN ")
		f.formatAdditive(s.Value)
	case *parsetree.AssignmentExpression:
		f.out.WriteString(s.Identifier.Name)
		f.out.WriteString(" := ")
		f.formatAdditive(s.Value)
	}
}

func (f *Formatter) formatAdditive(e *parsetree.AdditiveExpression) {
	f.formatMultiplicative(e.Left)
	if e.Op != nil {
		f.writeOp(*e.Op)
		f.formatAdditive(e.Right)
	}
}

func (f *Formatter) formatMultiplicative(e *parsetree.MultiplicativeExpression) {
	f.formatUnary(e.Left)
	if e.Op != nil {
		f.writeOp(*e.Op)
		f.formatMultiplicative(e.Right)
	}
}

func (f *Formatter) formatUnary(e *parsetree.UnaryExpression) {
	if e.Op != nil {
		f.writeOp(*e.Op)
	}
	f.formatPrimary(e.Primary)
}

func (f *Formatter) formatPrimary(e *parsetree.PrimaryExpression) {
	switch {
	case e.Identifier != nil:
		f.out.WriteString(e.Identifier.Name)
	case e.Literal != nil:
		fmt.Fprintf(&f.out, "%d", e.Literal.Value)
	case e.Parenthesized != nil:
		f.out.WriteString("(")
		f.formatAdditive(e.Parenthesized)
		f.out.WriteString(")")
	}
}

func (f *Formatter) writeOp(k token.Kind) {
	switch k {
	case token.PLUS:
		f.out.WriteString(" + ")
	case token.MINUS:
		f.out.WriteString(" - ")
	case token.MULT:
		f.out.WriteString(" * ")
	case token.DIV:
		f.out.WriteString(" / ")
	}
}

// FormatString formats input with the default options.
func FormatString(input string) (string, error) {
	return NewFormatter(DefaultOptions()).Format(input)
}
