package optimize

import "github.com/pljit/pljit/ast"

// UnaryPlusRemoval drops every redundant leading '+' that AST creation
// keeps for this pass to remove. It has no state: RewriteStatement is the
// identity.
type UnaryPlusRemoval struct{}

func (UnaryPlusRemoval) RewriteExpression(e ast.Expression) ast.Expression {
	if u, ok := e.(*ast.Unary); ok && u.Op == ast.UnaryPlus {
		return u.Child
	}
	return e
}

func (UnaryPlusRemoval) RewriteStatement(s ast.Statement) ast.Statement {
	return s
}
