package ast

import (
	"fmt"

	"github.com/pljit/pljit/diag"
	"github.com/pljit/pljit/parsetree"
	"github.com/pljit/pljit/source"
	"github.com/pljit/pljit/symboltable"
	"github.com/pljit/pljit/token"
)

// Build lowers a parse tree into a (Function, SymbolTable) pair,
// enforcing every semantic rule in one left-to-right walk: declaration
// order, redeclaration, undeclared/uninitialized use, assignment to a
// constant, and the missing-return check. On any failure it returns nil
// and the diagnostic describing the first rule violated; the partially
// built symbol table is discarded.
func Build(tree *parsetree.FunctionDefinition) (*Function, *diag.Diagnostic) {
	symbols := symboltable.New()

	if tree.Parameters != nil {
		for _, ident := range tree.Parameters.Identifiers {
			if d := declare(symbols, ident.Name, ident.Fragment, symboltable.Parameter, 0); d != nil {
				return nil, d
			}
		}
	}
	if tree.Variables != nil {
		for _, ident := range tree.Variables.Identifiers {
			if d := declare(symbols, ident.Name, ident.Fragment, symboltable.Variable, 0); d != nil {
				return nil, d
			}
		}
	}
	if tree.Constants != nil {
		for _, init := range tree.Constants.InitDeclarators {
			if d := declare(symbols, init.Identifier.Name, init.Fragment, symboltable.Constant, init.Literal.Value); d != nil {
				return nil, d
			}
		}
	}

	var statements []Statement
	sawReturn := false

	for _, stmt := range tree.Body.Statements {
		switch s := stmt.(type) {
		case *parsetree.ReturnStatement:
			expr, d := lowerAdditive(s.Value, symbols)
			if d != nil {
				return nil, d
			}
			statements = append(statements, &Return{Value: expr})
			sawReturn = true

		case *parsetree.AssignmentExpression:
			id, ok := symbols.Find(s.Identifier.Name)
			if !ok {
				return nil, diag.New(diag.Semantic, s.Identifier.Fragment,
					fmt.Sprintf("undeclared identifier %q", s.Identifier.Name))
			}
			sym := symbols.Get(id)
			if sym.Kind == symboltable.Constant {
				return nil, diag.New(diag.Semantic, s.Identifier.Fragment,
					fmt.Sprintf("cannot assign to constant %q", s.Identifier.Name))
			}
			// The right-hand side must be lowered against the symbol's
			// initialization state as it stood on entry to this statement,
			// so "x := x + 1" on an uninitialized x is still rejected; only
			// after a successful lowering does the flag flip.
			expr, d := lowerAdditive(s.Value, symbols)
			if d != nil {
				return nil, d
			}
			symbols.SetInitialized(id)
			statements = append(statements, &Assignment{Target: id, Value: expr})
		}
	}

	if !sawReturn {
		return nil, diag.New(diag.Semantic, tree.Body.Fragment, "function has no return statement")
	}

	return &Function{Statements: statements, Symbols: symbols}, nil
}

// declare inserts name into symbols, failing with a redeclaration
// diagnostic pointing at the original declaration's fragment if the
// name is already present.
func declare(symbols *symboltable.SymbolTable, name string, fragment source.Fragment, kind symboltable.SymbolKind, value int64) *diag.Diagnostic {
	if existing, ok := symbols.Find(name); ok {
		original := symbols.Get(existing).DeclarationFragment
		return diag.New(diag.Semantic, original,
			fmt.Sprintf("%q redeclared (previously declared at %s)", name, original.Begin))
	}
	symbols.Insert(name, fragment, kind, value)
	return nil
}

func lowerAdditive(node *parsetree.AdditiveExpression, symbols *symboltable.SymbolTable) (Expression, *diag.Diagnostic) {
	left, d := lowerMultiplicative(node.Left, symbols)
	if d != nil {
		return nil, d
	}
	if node.Op == nil {
		return left, nil
	}
	right, d := lowerAdditive(node.Right, symbols)
	if d != nil {
		return nil, d
	}
	op := Add
	if *node.Op == token.MINUS {
		op = Sub
	}
	return &Binary{Op: op, Left: left, Right: right}, nil
}

func lowerMultiplicative(node *parsetree.MultiplicativeExpression, symbols *symboltable.SymbolTable) (Expression, *diag.Diagnostic) {
	left, d := lowerUnary(node.Left, symbols)
	if d != nil {
		return nil, d
	}
	if node.Op == nil {
		return left, nil
	}
	right, d := lowerMultiplicative(node.Right, symbols)
	if d != nil {
		return nil, d
	}
	op := Mul
	if *node.Op == token.DIV {
		op = Div
	}
	return &Binary{Op: op, Left: left, Right: right}, nil
}

func lowerUnary(node *parsetree.UnaryExpression, symbols *symboltable.SymbolTable) (Expression, *diag.Diagnostic) {
	primary, d := lowerPrimary(node.Primary, symbols)
	if d != nil {
		return nil, d
	}
	if node.Op == nil {
		return primary, nil
	}
	op := UnaryPlus
	if *node.Op == token.MINUS {
		op = UnaryMinus
	}
	// The '+' form is kept (not dropped here) so the optimizer can
	// eliminate it uniformly.
	return &Unary{Op: op, Child: primary}, nil
}

func lowerPrimary(node *parsetree.PrimaryExpression, symbols *symboltable.SymbolTable) (Expression, *diag.Diagnostic) {
	switch {
	case node.Identifier != nil:
		id, ok := symbols.Find(node.Identifier.Name)
		if !ok {
			return nil, diag.New(diag.Semantic, node.Identifier.Fragment,
				fmt.Sprintf("undeclared identifier %q", node.Identifier.Name))
		}
		sym := symbols.Get(id)
		if sym.Kind == symboltable.Variable && !sym.Initialized {
			return nil, diag.New(diag.Semantic, node.Identifier.Fragment,
				fmt.Sprintf("use of uninitialized variable %q", node.Identifier.Name))
		}
		return &Identifier{Symbol: id}, nil

	case node.Literal != nil:
		return &Literal{Value: node.Literal.Value}, nil

	case node.Parenthesized != nil:
		return lowerAdditive(node.Parenthesized, symbols)

	default:
		return nil, diag.New(diag.Semantic, node.Fragment, "empty primary expression")
	}
}
