package parser

import (
	"strconv"

	"github.com/glossa-lang/glossa/pkg/ast"
	"github.com/glossa-lang/glossa/pkg/token"
)

// parseExpression is the entry point into the precedence ladder (§4.2,
// lowest to highest): Η → ΚΑΙ → ΟΧΙ → relational → additive →
// multiplicative → unary → primary.
func (p *Parser) parseExpression() ast.Expression {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.at(token.OR) {
		op := p.current()
		p.pos++
		right := p.parseAnd()
		left = ast.NewBinaryExpr(op.Type, left, right, op.Line)
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseNot()
	for p.at(token.AND) {
		op := p.current()
		p.pos++
		right := p.parseNot()
		left = ast.NewBinaryExpr(op.Type, left, right, op.Line)
	}
	return left
}

func (p *Parser) parseNot() ast.Expression {
	if p.at(token.NOT) {
		op := p.current()
		p.pos++
		operand := p.parseNot()
		return ast.NewUnaryExpr(op.Type, operand, op.Line)
	}
	return p.parseRelational()
}

var relationalOps = []token.Type{token.EQ, token.NE, token.LT, token.LE, token.GT, token.GE}

func (p *Parser) parseRelational() ast.Expression {
	left := p.parseAdditive()
	if p.at(relationalOps...) {
		op := p.current()
		p.pos++
		right := p.parseAdditive()
		return ast.NewBinaryExpr(op.Type, left, right, op.Line)
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.at(token.PLUS, token.MINUS) {
		op := p.current()
		p.pos++
		right := p.parseMultiplicative()
		left = ast.NewBinaryExpr(op.Type, left, right, op.Line)
	}
	return left
}

var multiplicativeOps = []token.Type{token.STAR, token.SLASH, token.DIV, token.MOD}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.at(multiplicativeOps...) {
		op := p.current()
		p.pos++
		right := p.parseUnary()
		left = ast.NewBinaryExpr(op.Type, left, right, op.Line)
	}
	return left
}

// parseUnary handles prefix + and - (§4.2 also accepts unary +, grounded
// on the original reference implementation's parse_unary even though the
// spec's precedence table only lists unary minus explicitly).
func (p *Parser) parseUnary() ast.Expression {
	if p.at(token.PLUS, token.MINUS) {
		op := p.current()
		p.pos++
		operand := p.parseUnary()
		return ast.NewUnaryExpr(op.Type, operand, op.Line)
	}
	return p.parsePrimary()
}

// parsePrimary handles literals, parenthesized expressions, and
// identifiers — which may turn out to be a plain variable, an indexed
// array element, or a function call depending on what follows.
func (p *Parser) parsePrimary() ast.Expression {
	tok := p.current()
	switch tok.Type {
	case token.INTEGER:
		p.pos++
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.errorf(tok.Line, "μη έγκυρος ακέραιος αριθμός '%s'", tok.Literal)
		}
		return ast.NewIntegerLiteral(n, tok.Line)
	case token.REAL:
		p.pos++
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.errorf(tok.Line, "μη έγκυρος πραγματικός αριθμός '%s'", tok.Literal)
		}
		return ast.NewRealLiteral(f, tok.Line)
	case token.STRING:
		p.pos++
		return ast.NewStringLiteral(tok.Literal, tok.Line)
	case token.TRUE:
		p.pos++
		return ast.NewBooleanLiteral(true, tok.Line)
	case token.FALSE:
		p.pos++
		return ast.NewBooleanLiteral(false, tok.Line)
	case token.LPAREN:
		p.pos++
		inner := p.parseExpression()
		p.expect(token.RPAREN)
		return inner
	case token.IDENT:
		return p.parseIdentExpr()
	default:
		p.fail(token.INTEGER, token.REAL, token.STRING, token.IDENT, token.LPAREN)
		panic("unreachable")
	}
}

// parseIdentExpr resolves a leading identifier into a VariableRef,
// IndexedRef, or FuncCallExpr depending on the token that follows.
func (p *Parser) parseIdentExpr() ast.Expression {
	tok := p.expect(token.IDENT)
	switch {
	case p.at(token.LBRACKET):
		indices := p.parseIndexList()
		return ast.NewIndexedRef(tok.Literal, indices, tok.Line)
	case p.at(token.LPAREN):
		args := p.parseArgList()
		return ast.NewFuncCallExpr(tok.Literal, args, tok.Line)
	default:
		return ast.NewVariableRef(tok.Literal, tok.Line)
	}
}

// parseIndexList parses `[expr]` or `[expr, expr]`.
func (p *Parser) parseIndexList() []ast.Expression {
	p.expect(token.LBRACKET)
	indices := []ast.Expression{p.parseExpression()}
	for {
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
		indices = append(indices, p.parseExpression())
	}
	p.expect(token.RBRACKET)
	return indices
}

// parseArgList parses a call's `(expr, ...)` or `()`.
func (p *Parser) parseArgList() []ast.Expression {
	p.expect(token.LPAREN)
	if _, ok := p.accept(token.RPAREN); ok {
		return nil
	}
	args := []ast.Expression{p.parseExpression()}
	for {
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
		args = append(args, p.parseExpression())
	}
	p.expect(token.RPAREN)
	return args
}

// parseCaseValue parses one ΠΕΡΙΠΤΩΣΗ value: either a bare literal/unary
// expression or a closed range `low..high` (§4.2's supplemented range
// support — absent from the original reference implementation).
func (p *Parser) parseCaseValue() ast.CaseValue {
	low := p.parseUnary()
	if _, ok := p.accept(token.DOTDOT); ok {
		high := p.parseUnary()
		return ast.CaseValue{Low: low, High: high}
	}
	return ast.CaseValue{Low: low}
}

// constLiteral accepts the handful of expression shapes a ΣΤΑΘΕΡΕΣ
// initializer may take: a literal, or a literal negated by unary minus.
func (p *Parser) constLiteral() ast.Expression {
	return p.parseUnary()
}
