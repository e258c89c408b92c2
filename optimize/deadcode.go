package optimize

import "github.com/pljit/pljit/ast"

// EliminateDeadCode truncates fn's statement list right after its first
// Return: nothing after it can ever run, since Evaluate halts there.
// Unlike the other passes this isn't node rewriting, so it doesn't
// implement Pass; it just edits the slice once, after the rewrite
// passes have run.
func EliminateDeadCode(fn *ast.Function) {
	for i, stmt := range fn.Statements {
		if _, ok := stmt.(*ast.Return); ok {
			fn.Statements = fn.Statements[:i+1]
			return
		}
	}
}
