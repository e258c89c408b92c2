package parsetree

import (
	"fmt"

	"github.com/pljit/pljit/diag"
	"github.com/pljit/pljit/lexer"
	"github.com/pljit/pljit/source"
	"github.com/pljit/pljit/token"
)

// Parser is a hand-written recursive-descent parser with one token of
// lookahead, pulling tokens lazily from the lexer. Once an error occurs
// the error flag latches and every subsequent subparse short-circuits
// to failure.
type Parser struct {
	lex        *lexer.Lexer
	cur        token.Token
	errorFlag  bool
	diagnostic *diag.Diagnostic
}

// NewParser creates a Parser over buf and primes the first lookahead
// token.
func NewParser(buf *source.Buffer) *Parser {
	p := &Parser{lex: lexer.New(buf)}
	p.advance()
	return p
}

// Errors reports the first diagnostic encountered, if any.
func (p *Parser) Errors() *diag.Diagnostic { return p.diagnostic }

func (p *Parser) fail(fragment source.Fragment, message string) {
	if p.errorFlag {
		return
	}
	p.errorFlag = true
	p.diagnostic = diag.New(diag.Syntax, fragment, message)
}

func (p *Parser) advance() {
	tok, d := p.lex.Next()
	if d != nil {
		if !p.errorFlag {
			p.errorFlag = true
			p.diagnostic = d
		}
		p.cur = token.Token{Kind: token.EOS, Fragment: d.Fragment}
		return
	}
	p.cur = *tok
}

func (p *Parser) expect(kind token.Kind) (token.Token, bool) {
	if p.errorFlag {
		return token.Token{}, false
	}
	if p.cur.Kind != kind {
		p.fail(p.cur.Fragment, fmt.Sprintf("expected %s, found %s", kind, p.cur.Kind))
		return token.Token{}, false
	}
	tok := p.cur
	p.advance()
	return tok, true
}

// Parse parses a complete function-definition. It returns the root node
// on success, or nil if any error occurred; callers should check
// Errors() to distinguish "nil because of input" from other failures.
func (p *Parser) Parse() *FunctionDefinition {
	return p.parseFunctionDefinition()
}

func (p *Parser) parseFunctionDefinition() *FunctionDefinition {
	if p.errorFlag {
		return nil
	}
	start := p.cur.Fragment

	var params *ParameterDecl
	if p.cur.Kind == token.PARAM {
		params = p.parseParameterDecl()
		if params == nil {
			return nil
		}
	}

	var vars *VariableDecl
	if p.cur.Kind == token.VAR {
		vars = p.parseVariableDecl()
		if vars == nil {
			return nil
		}
	}

	var consts *ConstantDecl
	if p.cur.Kind == token.CONST {
		consts = p.parseConstantDecl()
		if consts == nil {
			return nil
		}
	}

	body := p.parseCompoundStatement()
	if body == nil {
		return nil
	}

	term, ok := p.expect(token.PROGRAM_TERMINATOR)
	if !ok {
		return nil
	}

	if p.cur.Kind != token.EOS {
		p.fail(p.cur.Fragment, "unexpected input after program terminator")
		return nil
	}

	return &FunctionDefinition{
		Parameters: params,
		Variables:  vars,
		Constants:  consts,
		Body:       body,
		Fragment:   start.Extend(term.Fragment),
	}
}

func (p *Parser) parseParameterDecl() *ParameterDecl {
	kw, ok := p.expect(token.PARAM)
	if !ok {
		return nil
	}
	ids, ok := p.parseDeclaratorList()
	if !ok {
		return nil
	}
	semi, ok := p.expect(token.STATEMENT_TERMINATOR)
	if !ok {
		return nil
	}
	return &ParameterDecl{Identifiers: ids, Fragment: kw.Fragment.Extend(semi.Fragment)}
}

func (p *Parser) parseVariableDecl() *VariableDecl {
	kw, ok := p.expect(token.VAR)
	if !ok {
		return nil
	}
	ids, ok := p.parseDeclaratorList()
	if !ok {
		return nil
	}
	semi, ok := p.expect(token.STATEMENT_TERMINATOR)
	if !ok {
		return nil
	}
	return &VariableDecl{Identifiers: ids, Fragment: kw.Fragment.Extend(semi.Fragment)}
}

func (p *Parser) parseConstantDecl() *ConstantDecl {
	kw, ok := p.expect(token.CONST)
	if !ok {
		return nil
	}
	decls, ok := p.parseInitDeclaratorList()
	if !ok {
		return nil
	}
	semi, ok := p.expect(token.STATEMENT_TERMINATOR)
	if !ok {
		return nil
	}
	return &ConstantDecl{InitDeclarators: decls, Fragment: kw.Fragment.Extend(semi.Fragment)}
}

func (p *Parser) parseDeclaratorList() ([]*Identifier, bool) {
	first := p.parseIdentifier()
	if first == nil {
		return nil, false
	}
	ids := []*Identifier{first}
	for p.cur.Kind == token.SEPARATOR {
		p.advance()
		next := p.parseIdentifier()
		if next == nil {
			return nil, false
		}
		ids = append(ids, next)
	}
	return ids, true
}

func (p *Parser) parseInitDeclaratorList() ([]*InitDeclarator, bool) {
	first := p.parseInitDeclarator()
	if first == nil {
		return nil, false
	}
	decls := []*InitDeclarator{first}
	for p.cur.Kind == token.SEPARATOR {
		p.advance()
		next := p.parseInitDeclarator()
		if next == nil {
			return nil, false
		}
		decls = append(decls, next)
	}
	return decls, true
}

func (p *Parser) parseInitDeclarator() *InitDeclarator {
	ident := p.parseIdentifier()
	if ident == nil {
		return nil
	}
	if _, ok := p.expect(token.INIT_ASSIGN_OP); !ok {
		return nil
	}
	lit := p.parseLiteral()
	if lit == nil {
		return nil
	}
	return &InitDeclarator{Identifier: ident, Literal: lit, Fragment: ident.Fragment.Extend(lit.Fragment)}
}

func (p *Parser) parseCompoundStatement() *CompoundStatement {
	begin, ok := p.expect(token.BEGIN)
	if !ok {
		return nil
	}
	stmts, ok := p.parseStatementList()
	if !ok {
		return nil
	}
	end, ok := p.expect(token.END)
	if !ok {
		return nil
	}
	return &CompoundStatement{Statements: stmts, Fragment: begin.Fragment.Extend(end.Fragment)}
}

func (p *Parser) parseStatementList() ([]Statement, bool) {
	first := p.parseStatement()
	if first == nil {
		return nil, false
	}
	stmts := []Statement{first}
	for p.cur.Kind == token.STATEMENT_TERMINATOR {
		p.advance()
		next := p.parseStatement()
		if next == nil {
			return nil, false
		}
		stmts = append(stmts, next)
	}
	return stmts, true
}

func (p *Parser) parseStatement() Statement {
	if p.errorFlag {
		return nil
	}
	if p.cur.Kind == token.RETURN {
		kw := p.cur
		p.advance()
		expr := p.parseAdditiveExpression()
		if expr == nil {
			return nil
		}
		return &ReturnStatement{Value: expr, Fragment: kw.Fragment.Extend(expr.Fragment)}
	}
	if p.cur.Kind == token.IDENTIFIER {
		ident := p.parseIdentifier()
		if ident == nil {
			return nil
		}
		if _, ok := p.expect(token.VAR_ASSIGN_OP); !ok {
			return nil
		}
		expr := p.parseAdditiveExpression()
		if expr == nil {
			return nil
		}
		return &AssignmentExpression{Identifier: ident, Value: expr, Fragment: ident.Fragment.Extend(expr.Fragment)}
	}
	p.fail(p.cur.Fragment, fmt.Sprintf("expected a statement, found %s", p.cur.Kind))
	return nil
}

func (p *Parser) parseAdditiveExpression() *AdditiveExpression {
	left := p.parseMultiplicativeExpression()
	if left == nil {
		return nil
	}
	if p.cur.Kind == token.PLUS || p.cur.Kind == token.MINUS {
		op := p.cur.Kind
		p.advance()
		right := p.parseAdditiveExpression()
		if right == nil {
			return nil
		}
		return &AdditiveExpression{Left: left, Op: &op, Right: right, Fragment: left.Fragment.Extend(right.Fragment)}
	}
	return &AdditiveExpression{Left: left, Fragment: left.Fragment}
}

func (p *Parser) parseMultiplicativeExpression() *MultiplicativeExpression {
	left := p.parseUnaryExpression()
	if left == nil {
		return nil
	}
	if p.cur.Kind == token.MULT || p.cur.Kind == token.DIV {
		op := p.cur.Kind
		p.advance()
		right := p.parseMultiplicativeExpression()
		if right == nil {
			return nil
		}
		return &MultiplicativeExpression{Left: left, Op: &op, Right: right, Fragment: left.Fragment.Extend(right.Fragment)}
	}
	return &MultiplicativeExpression{Left: left, Fragment: left.Fragment}
}

func (p *Parser) parseUnaryExpression() *UnaryExpression {
	if p.cur.Kind == token.PLUS || p.cur.Kind == token.MINUS {
		op := p.cur.Kind
		opFragment := p.cur.Fragment
		p.advance()
		primary := p.parsePrimaryExpression()
		if primary == nil {
			return nil
		}
		return &UnaryExpression{Op: &op, Primary: primary, Fragment: opFragment.Extend(primary.Fragment)}
	}
	primary := p.parsePrimaryExpression()
	if primary == nil {
		return nil
	}
	return &UnaryExpression{Primary: primary, Fragment: primary.Fragment}
}

func (p *Parser) parsePrimaryExpression() *PrimaryExpression {
	if p.errorFlag {
		return nil
	}
	switch p.cur.Kind {
	case token.IDENTIFIER:
		ident := p.parseIdentifier()
		if ident == nil {
			return nil
		}
		return &PrimaryExpression{Identifier: ident, Fragment: ident.Fragment}
	case token.LITERAL:
		lit := p.parseLiteral()
		if lit == nil {
			return nil
		}
		return &PrimaryExpression{Literal: lit, Fragment: lit.Fragment}
	case token.L_PAREN:
		lp := p.cur
		p.advance()
		inner := p.parseAdditiveExpression()
		if inner == nil {
			return nil
		}
		rp, ok := p.expect(token.R_PAREN)
		if !ok {
			return nil
		}
		return &PrimaryExpression{Parenthesized: inner, Fragment: lp.Fragment.Extend(rp.Fragment)}
	default:
		p.fail(p.cur.Fragment, fmt.Sprintf("expected identifier, literal, or '(', found %s", p.cur.Kind))
		return nil
	}
}

func (p *Parser) parseIdentifier() *Identifier {
	tok, ok := p.expect(token.IDENTIFIER)
	if !ok {
		return nil
	}
	return &Identifier{Name: tok.Fragment.Str(), Fragment: tok.Fragment}
}

func (p *Parser) parseLiteral() *Literal {
	tok, ok := p.expect(token.LITERAL)
	if !ok {
		return nil
	}
	return &Literal{Value: tok.Literal, Fragment: tok.Fragment}
}
