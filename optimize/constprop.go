package optimize

import (
	"github.com/pljit/pljit/ast"
	"github.com/pljit/pljit/symboltable"
)

// ConstantPropagation folds arithmetic on known-constant operands and
// tracks which variables currently hold a known constant value, so that
// a later read of such a variable is replaced by a Literal too.
//
// Apply drives this post-order: by the time RewriteExpression sees a
// Unary or Binary node, its children have already been rewritten, so a
// foldable child already IS a *ast.Literal in the slot. That removes
// the need for any side-channel node-identity map to find out "did this
// child just get folded": the type assertion on the already-rewritten
// slot answers it directly.
type ConstantPropagation struct {
	known map[symboltable.ID]int64
}

// NewConstantPropagation seeds the known-value table from symbols'
// constant partition; propagation through variables accumulates as
// RewriteStatement observes assignments.
func NewConstantPropagation(symbols *symboltable.SymbolTable) *ConstantPropagation {
	cp := &ConstantPropagation{known: make(map[symboltable.ID]int64)}
	for _, sym := range symbols.Constants() {
		cp.known[sym.ID] = sym.ConstantValue
	}
	return cp
}

func (cp *ConstantPropagation) RewriteExpression(e ast.Expression) ast.Expression {
	switch n := e.(type) {
	case *ast.Identifier:
		if v, ok := cp.known[n.Symbol]; ok {
			return &ast.Literal{Value: v}
		}
		return n

	case *ast.Unary:
		lit, ok := n.Child.(*ast.Literal)
		if !ok {
			return n
		}
		return applyUnary(n.Op, lit)

	case *ast.Binary:
		l, ok := n.Left.(*ast.Literal)
		if !ok {
			return n
		}
		r, ok := n.Right.(*ast.Literal)
		if !ok {
			return n
		}
		if n.Op == ast.Div && r.Value == 0 {
			// Leave the division in place so the evaluator traps on it
			// at runtime, rather than folding a trap into a bogus value.
			return n
		}
		return applyBinary(n.Op, l, r)

	default:
		return e
	}
}

func (cp *ConstantPropagation) RewriteStatement(s ast.Statement) ast.Statement {
	if a, ok := s.(*ast.Assignment); ok {
		if lit, ok := a.Value.(*ast.Literal); ok {
			cp.known[a.Target] = lit.Value
		} else {
			delete(cp.known, a.Target)
		}
	}
	return s
}

func applyUnary(op ast.UnaryOp, lit *ast.Literal) *ast.Literal {
	if op == ast.UnaryMinus {
		return &ast.Literal{Value: -lit.Value}
	}
	return lit
}

func applyBinary(op ast.BinaryOp, l, r *ast.Literal) *ast.Literal {
	var v int64
	switch op {
	case ast.Add:
		v = l.Value + r.Value
	case ast.Sub:
		v = l.Value - r.Value
	case ast.Mul:
		v = l.Value * r.Value
	case ast.Div:
		v = l.Value / r.Value
	}
	return &ast.Literal{Value: v}
}
