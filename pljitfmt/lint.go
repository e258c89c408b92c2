package pljitfmt

import (
	"fmt"
	"sort"

	"github.com/pljit/pljit/ast"
	"github.com/pljit/pljit/parsetree"
	"github.com/pljit/pljit/source"
	"github.com/pljit/pljit/symboltable"
)

// Level is the severity of a lint finding.
type Level int

const (
	LevelError   Level = iota // would fail compilation were it not already caught there
	LevelWarning              // style or likely-mistake, compiles fine
	LevelInfo                 // suggestion
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Issue is a single lint finding.
type Issue struct {
	Level   Level
	Line    int
	Column  int
	Message string
	Code    string
}

func (i *Issue) String() string {
	return fmt.Sprintf("line %d:%d: %s: %s [%s]", i.Line, i.Column, i.Level, i.Message, i.Code)
}

// LintOptions controls linter behavior.
type LintOptions struct {
	CheckUnusedDeclarations bool
	CheckUnreachableCode    bool
}

// DefaultLintOptions returns the linter's default options.
func DefaultLintOptions() *LintOptions {
	return &LintOptions{CheckUnusedDeclarations: true, CheckUnreachableCode: true}
}

// Linter analyzes PL source for issues beyond what the compiler itself
// rejects.
type Linter struct {
	options *LintOptions
	issues  []*Issue
}

// NewLinter creates a Linter. A nil options uses DefaultLintOptions.
func NewLinter(options *LintOptions) *Linter {
	if options == nil {
		options = DefaultLintOptions()
	}
	return &Linter{options: options}
}

// Lint analyzes input and returns every issue found, sorted by position.
func (l *Linter) Lint(input string) []*Issue {
	l.issues = nil

	buf := source.New(input)
	p := parsetree.NewParser(buf)
	tree := p.Parse()

	if d := p.Errors(); d != nil {
		l.issues = append(l.issues, &Issue{
			Level:   LevelError,
			Line:    d.Fragment.Begin.Line(),
			Column:  d.Fragment.Begin.Column(),
			Message: d.Message,
			Code:    "PARSE_ERROR",
		})
	}
	if tree == nil {
		return l.issues
	}

	fn, d := ast.Build(tree)
	if d != nil {
		l.issues = append(l.issues, &Issue{
			Level:   LevelError,
			Line:    d.Fragment.Begin.Line(),
			Column:  d.Fragment.Begin.Column(),
			Message: d.Message,
			Code:    "SEMANTIC_ERROR",
		})
		return l.issues
	}

	if l.options.CheckUnusedDeclarations {
		l.checkUnusedDeclarations(fn, tree)
	}
	if l.options.CheckUnreachableCode {
		l.checkUnreachableCode(fn, tree)
	}

	sort.Slice(l.issues, func(i, j int) bool {
		if l.issues[i].Line == l.issues[j].Line {
			return l.issues[i].Column < l.issues[j].Column
		}
		return l.issues[i].Line < l.issues[j].Line
	})

	return l.issues
}

// checkUnusedDeclarations warns about variables and constants that are
// declared but never read. Parameters are exempt: the caller may rely
// on a function's signature even when an implementation ignores one.
func (l *Linter) checkUnusedDeclarations(fn *ast.Function, tree *parsetree.FunctionDefinition) {
	used := make(map[symboltable.ID]bool)
	for _, stmt := range fn.Statements {
		switch s := stmt.(type) {
		case *ast.Return:
			markUsed(s.Value, used)
		case *ast.Assignment:
			markUsed(s.Value, used)
		}
	}

	for _, sym := range fn.Symbols.All() {
		if sym.Kind == symboltable.Parameter {
			continue
		}
		if used[sym.ID] {
			continue
		}
		l.issues = append(l.issues, &Issue{
			Level:   LevelWarning,
			Line:    sym.DeclarationFragment.Begin.Line(),
			Column:  sym.DeclarationFragment.Begin.Column(),
			Message: fmt.Sprintf("%s %q declared but never read", sym.Kind, sym.Name),
			Code:    "UNUSED_DECLARATION",
		})
	}
}

func markUsed(e ast.Expression, used map[symboltable.ID]bool) {
	switch n := e.(type) {
	case *ast.Identifier:
		used[n.Symbol] = true
	case *ast.Unary:
		markUsed(n.Child, used)
	case *ast.Binary:
		markUsed(n.Left, used)
		markUsed(n.Right, used)
	}
}

// checkUnreachableCode warns about statements after the first Return,
// which the optimizer's dead-code pass will silently drop.
func (l *Linter) checkUnreachableCode(fn *ast.Function, tree *parsetree.FunctionDefinition) {
	seenReturn := false
	for i, stmt := range tree.Body.Statements {
		if _, ok := stmt.(*parsetree.ReturnStatement); ok {
			if seenReturn {
				continue
			}
			seenReturn = true
			continue
		}
		if seenReturn {
			pos := tree.Body.Statements[i].Frag().Begin
			l.issues = append(l.issues, &Issue{
				Level:   LevelWarning,
				Line:    pos.Line(),
				Column:  pos.Column(),
				Message: "statement after RETURN is unreachable",
				Code:    "UNREACHABLE_CODE",
			})
		}
	}
}

// LintString lints input with the default options.
func LintString(input string) []*Issue {
	return NewLinter(DefaultLintOptions()).Lint(input)
}
