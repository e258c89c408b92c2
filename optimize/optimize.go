// Package optimize implements the AST rewrite passes: in-place
// simplification of a compiled Function's statement list before it is
// ever evaluated.
//
// The source's ownership-slot design (a pass rewrites a node by
// replacing the unique_ptr that owns it) becomes, in Go, a pointer to
// the interface slot that holds the node: *ast.Expression and
// *ast.Statement. Apply walks a Function post-order, recursing into
// every child slot before invoking the pass on the parent, and a pass
// replaces a node by storing a new value through the slot pointer it
// is given.
package optimize

import "github.com/pljit/pljit/ast"

// Pass rewrites one node at a time. Either method may return the slot's
// existing value unchanged (the identity rewrite) or a new node entirely.
// Apply calls these bottom-up, so by the time a parent is visited its
// children already hold whatever the pass would have produced for them.
type Pass interface {
	RewriteExpression(e ast.Expression) ast.Expression
	RewriteStatement(s ast.Statement) ast.Statement
}

// Apply runs pass over every statement and expression in fn, post-order,
// mutating fn.Statements in place.
func Apply(fn *ast.Function, pass Pass) {
	for i := range fn.Statements {
		optimizeStatementSlot(&fn.Statements[i], pass)
	}
}

func optimizeStatementSlot(slot *ast.Statement, pass Pass) {
	switch s := (*slot).(type) {
	case *ast.Assignment:
		optimizeExpressionSlot(&s.Value, pass)
	case *ast.Return:
		optimizeExpressionSlot(&s.Value, pass)
	}
	*slot = pass.RewriteStatement(*slot)
}

func optimizeExpressionSlot(slot *ast.Expression, pass Pass) {
	switch e := (*slot).(type) {
	case *ast.Unary:
		optimizeExpressionSlot(&e.Child, pass)
	case *ast.Binary:
		optimizeExpressionSlot(&e.Left, pass)
		optimizeExpressionSlot(&e.Right, pass)
	}
	*slot = pass.RewriteExpression(*slot)
}
