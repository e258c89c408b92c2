package ast

import "github.com/pljit/pljit/exec"

// Evaluate runs fn against ctx. It returns (value, true) on success; a
// false second return means a runtime trap (integer division by zero)
// occurred and the diagnostic stream (not modeled here beyond the
// boolean) would have recorded why. Reaching the end of the statement
// list without a Return is unreachable: AST creation guarantees at
// least one Return exists.
func Evaluate(fn *Function, ctx *exec.Context) (int64, bool) {
	for _, stmt := range fn.Statements {
		switch s := stmt.(type) {
		case *Assignment:
			v, ok := evaluateExpr(s.Value, ctx)
			if !ok {
				return 0, false
			}
			ctx.Set(s.Target, v)

		case *Return:
			v, ok := evaluateExpr(s.Value, ctx)
			if !ok {
				return 0, false
			}
			ctx.SetResult(v)
			return v, true
		}
	}
	return 0, false
}

func evaluateExpr(e Expression, ctx *exec.Context) (int64, bool) {
	switch n := e.(type) {
	case *Identifier:
		return ctx.Get(n.Symbol), true

	case *Literal:
		return n.Value, true

	case *Unary:
		v, ok := evaluateExpr(n.Child, ctx)
		if !ok {
			return 0, false
		}
		if n.Op == UnaryMinus {
			return -v, true // wraps on math.MinInt64
		}
		return v, true

	case *Binary:
		l, ok := evaluateExpr(n.Left, ctx)
		if !ok {
			return 0, false
		}
		r, ok := evaluateExpr(n.Right, ctx)
		if !ok {
			return 0, false
		}
		switch n.Op {
		case Add:
			return l + r, true
		case Sub:
			return l - r, true
		case Mul:
			return l * r, true
		case Div:
			if r == 0 {
				return 0, false // the divide-by-zero trap
			}
			return l / r, true // truncates toward zero, as Go's int division does
		}
	}
	return 0, false
}
