// Package parsetree defines the concrete syntax tree, one node variant
// per grammar production, and the recursive-descent Parser that builds
// it from a token stream.
package parsetree

import (
	"github.com/pljit/pljit/source"
	"github.com/pljit/pljit/token"
)

// Node is implemented by every parse tree variant; every node stores
// the fragment of source it covers.
type Node interface {
	Frag() source.Fragment
}

// Statement is implemented by the two statement variants.
type Statement interface {
	Node
	statementNode()
}

// FunctionDefinition is the root of the parse tree:
//
//	[parameter-decl] [variable-decl] [constant-decl] compound-statement "." EOS
type FunctionDefinition struct {
	Parameters *ParameterDecl // nil if omitted
	Variables  *VariableDecl  // nil if omitted
	Constants  *ConstantDecl  // nil if omitted
	Body       *CompoundStatement
	Fragment   source.Fragment
}

func (n *FunctionDefinition) Frag() source.Fragment { return n.Fragment }

// ParameterDecl is "PARAM" declarator-list ";".
type ParameterDecl struct {
	Identifiers []*Identifier
	Fragment    source.Fragment
}

func (n *ParameterDecl) Frag() source.Fragment { return n.Fragment }

// VariableDecl is "VAR" declarator-list ";".
type VariableDecl struct {
	Identifiers []*Identifier
	Fragment    source.Fragment
}

func (n *VariableDecl) Frag() source.Fragment { return n.Fragment }

// ConstantDecl is "CONST" init-declarator-list ";".
type ConstantDecl struct {
	InitDeclarators []*InitDeclarator
	Fragment        source.Fragment
}

func (n *ConstantDecl) Frag() source.Fragment { return n.Fragment }

// InitDeclarator is identifier "=" literal.
type InitDeclarator struct {
	Identifier *Identifier
	Literal    *Literal
	Fragment   source.Fragment
}

func (n *InitDeclarator) Frag() source.Fragment { return n.Fragment }

// CompoundStatement is "BEGIN" statement-list "END".
type CompoundStatement struct {
	Statements []Statement
	Fragment   source.Fragment
}

func (n *CompoundStatement) Frag() source.Fragment { return n.Fragment }

// AssignmentExpression is identifier ":=" additive-expression.
type AssignmentExpression struct {
	Identifier *Identifier
	Value      *AdditiveExpression
	Fragment   source.Fragment
}

func (n *AssignmentExpression) Frag() source.Fragment { return n.Fragment }
func (n *AssignmentExpression) statementNode()        {}

// ReturnStatement is "RETURN" additive-expression.
type ReturnStatement struct {
	Value    *AdditiveExpression
	Fragment source.Fragment
}

func (n *ReturnStatement) Frag() source.Fragment { return n.Fragment }
func (n *ReturnStatement) statementNode()        {}

// AdditiveExpression is multiplicative-expression [ ("+"|"-") additive-expression ],
// recursing on the right per the grammar.
type AdditiveExpression struct {
	Left     *MultiplicativeExpression
	Op       *token.Kind // PLUS or MINUS; nil if no right-hand side
	Right    *AdditiveExpression
	Fragment source.Fragment
}

func (n *AdditiveExpression) Frag() source.Fragment { return n.Fragment }

// MultiplicativeExpression is unary-expression [ ("*"|"/") multiplicative-expression ],
// recursing on the right per the grammar.
type MultiplicativeExpression struct {
	Left     *UnaryExpression
	Op       *token.Kind // MULT or DIV; nil if no right-hand side
	Right    *MultiplicativeExpression
	Fragment source.Fragment
}

func (n *MultiplicativeExpression) Frag() source.Fragment { return n.Fragment }

// UnaryExpression is [ "+" | "-" ] primary-expression.
type UnaryExpression struct {
	Op       *token.Kind // PLUS or MINUS; nil if absent
	Primary  *PrimaryExpression
	Fragment source.Fragment
}

func (n *UnaryExpression) Frag() source.Fragment { return n.Fragment }

// PrimaryExpression is identifier | literal | "(" additive-expression ")".
// Exactly one of its fields is non-nil.
type PrimaryExpression struct {
	Identifier    *Identifier
	Literal       *Literal
	Parenthesized *AdditiveExpression
	Fragment      source.Fragment
}

func (n *PrimaryExpression) Frag() source.Fragment { return n.Fragment }

// Identifier is a bare name reference.
type Identifier struct {
	Name     string
	Fragment source.Fragment
}

func (n *Identifier) Frag() source.Fragment { return n.Fragment }

// Literal is a decimal integer literal.
type Literal struct {
	Value    int64
	Fragment source.Fragment
}

func (n *Literal) Frag() source.Fragment { return n.Fragment }
