// Package ast defines the typed abstract syntax tree a function body
// lowers to, and the tree-walking evaluator that runs it against an
// execution context.
//
// The re-architecture away from the source's class hierarchy is two sum
// types, Expression and Statement, with one concrete type per node kind;
// the "visitor" becomes a type switch, and the optimizer's per-kind
// overrides (package optimize) become an interface whose default is
// identity.
package ast

import "github.com/pljit/pljit/symboltable"

// Expression is implemented by every expression node kind: *Identifier,
// *Literal, *Unary, *Binary.
type Expression interface {
	expressionNode()
}

// Statement is implemented by every statement node kind: *Assignment,
// *Return.
type Statement interface {
	statementNode()
}

// Identifier reads a symbol's current slot value. It never owns a name
// string, only the symbol id into the owning Function's SymbolTable.
type Identifier struct {
	Symbol symboltable.ID
}

func (*Identifier) expressionNode() {}

// Literal is a constant integer value.
type Literal struct {
	Value int64
}

func (*Literal) expressionNode() {}

// UnaryOp is the operator of a Unary expression.
type UnaryOp int

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
)

// Unary applies a unary operator to a single operand.
type Unary struct {
	Op    UnaryOp
	Child Expression
}

func (*Unary) expressionNode() {}

// BinaryOp is the operator of a Binary expression.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
)

// Binary applies a binary operator to two operands.
type Binary struct {
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (*Binary) expressionNode() {}

// Assignment writes the value of an expression into a symbol's slot.
type Assignment struct {
	Target symboltable.ID
	Value  Expression
}

func (*Assignment) statementNode() {}

// Return records the value of an expression as the function's result
// and halts evaluation.
type Return struct {
	Value Expression
}

func (*Return) statementNode() {}

// Function is a compiled program body: its statements, in source order,
// and the symbol table describing its declared names.
type Function struct {
	Statements []Statement
	Symbols    *symboltable.SymbolTable
}
