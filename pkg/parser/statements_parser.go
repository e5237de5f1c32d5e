package parser

import (
	"github.com/glossa-lang/glossa/pkg/ast"
	"github.com/glossa-lang/glossa/pkg/token"
)

// parseStatements parses statements until the current token is end (which
// it does not consume) or EOF, matching §4.2's "no error recovery": any
// token that cannot start a statement raises a SyntaxError rather than
// being skipped.
func (p *Parser) parseStatements(end ...token.Type) []ast.Statement {
	var stmts []ast.Statement
	for !p.at(end...) && !p.at(token.EOF) {
		stmts = append(stmts, p.parseStatement())
	}
	return stmts
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.current().Type {
	case token.IDENT:
		return p.parseAssignStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.REPEAT:
		return p.parseRepeatStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.SELECT:
		return p.parseSelectStatement()
	case token.READ:
		return p.parseReadStatement()
	case token.WRITE:
		return p.parseWriteStatement()
	case token.CALL:
		return p.parseCallStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	default:
		p.fail(token.IDENT, token.IF, token.WHILE, token.REPEAT, token.FOR,
			token.SELECT, token.READ, token.WRITE, token.CALL, token.RETURN)
		panic("unreachable")
	}
}

func (p *Parser) parseAssignStatement() *ast.AssignStatement {
	nameTok := p.expect(token.IDENT)
	var indices []ast.Expression
	if p.at(token.LBRACKET) {
		indices = p.parseIndexList()
	}
	assignTok := p.expect(token.ASSIGN)
	value := p.parseExpression()
	return ast.NewAssignStatement(nameTok.Literal, indices, value, assignTok.Line)
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	ifTok := p.expect(token.IF)
	cond := p.parseExpression()
	p.expect(token.THEN)
	stmt := ast.NewIfStatement(cond, p.parseStatements(token.ELSEIF, token.ELSE, token.END_IF), ifTok.Line)

	for p.at(token.ELSEIF) {
		p.pos++
		elseIfCond := p.parseExpression()
		p.expect(token.THEN)
		body := p.parseStatements(token.ELSEIF, token.ELSE, token.END_IF)
		stmt.ElseIfs = append(stmt.ElseIfs, ast.ElseIfClause{Cond: elseIfCond, Body: body})
	}

	if p.at(token.ELSE) {
		p.pos++
		stmt.Else = p.parseStatements(token.END_IF)
		stmt.HasElse = true
	}
	p.expect(token.END_IF)
	return stmt
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	tok := p.expect(token.WHILE)
	cond := p.parseExpression()
	p.expect(token.DO)
	body := p.parseStatements(token.END_LOOP)
	p.expect(token.END_LOOP)
	return ast.NewWhileStatement(cond, body, tok.Line)
}

func (p *Parser) parseRepeatStatement() *ast.RepeatStatement {
	tok := p.expect(token.REPEAT)
	body := p.parseStatements(token.UNTIL)
	p.expect(token.UNTIL)
	cond := p.parseExpression()
	return ast.NewRepeatStatement(body, cond, tok.Line)
}

func (p *Parser) parseForStatement() *ast.ForStatement {
	tok := p.expect(token.FOR)
	varTok := p.expect(token.IDENT)
	p.expect(token.FROM)
	start := p.parseExpression()
	p.expect(token.TO)
	end := p.parseExpression()
	stmt := ast.NewForStatement(varTok.Literal, start, end, tok.Line)
	if p.at(token.STEP) {
		p.pos++
		stmt.Step = p.parseExpression()
	}
	stmt.Body = p.parseStatements(token.END_LOOP)
	p.expect(token.END_LOOP)
	return stmt
}

func (p *Parser) parseSelectStatement() *ast.SelectStatement {
	tok := p.expect(token.SELECT)
	subject := p.parseExpression()
	stmt := ast.NewSelectStatement(subject, tok.Line)

	for p.at(token.CASE) {
		p.pos++
		if p.at(token.ELSE) {
			break // ΠΕΡΙΠΤΩΣΗ ΑΛΛΙΩΣ: the default arm, parsed below
		}
		values := []ast.CaseValue{p.parseCaseValue()}
		for {
			if _, ok := p.accept(token.COMMA); !ok {
				break
			}
			values = append(values, p.parseCaseValue())
		}
		p.expect(token.COLON)
		body := p.parseStatements(token.CASE, token.ELSE, token.END_SELECT)
		stmt.Cases = append(stmt.Cases, ast.SelectCase{Values: values, Body: body})
	}

	if p.at(token.ELSE) {
		p.pos++
		p.expect(token.COLON)
		stmt.Default = p.parseStatements(token.END_SELECT)
		stmt.HasDefault = true
	}
	p.expect(token.END_SELECT)
	return stmt
}

func (p *Parser) parseReadStatement() *ast.ReadStatement {
	tok := p.expect(token.READ)
	targets := []ast.ReadTarget{p.parseReadTarget()}
	for {
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
		targets = append(targets, p.parseReadTarget())
	}
	return ast.NewReadStatement(targets, tok.Line)
}

func (p *Parser) parseReadTarget() ast.ReadTarget {
	nameTok := p.expect(token.IDENT)
	var indices []ast.Expression
	if p.at(token.LBRACKET) {
		indices = p.parseIndexList()
	}
	return ast.ReadTarget{Name: nameTok.Literal, Indices: indices, Line: nameTok.Line}
}

func (p *Parser) parseWriteStatement() *ast.WriteStatement {
	tok := p.expect(token.WRITE)
	values := []ast.Expression{p.parseExpression()}
	for {
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
		values = append(values, p.parseExpression())
	}
	return ast.NewWriteStatement(values, tok.Line)
}

func (p *Parser) parseCallStatement() *ast.CallStatement {
	tok := p.expect(token.CALL)
	nameTok := p.expect(token.IDENT)
	args := p.parseArgList()
	return ast.NewCallStatement(nameTok.Literal, args, tok.Line)
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	tok := p.expect(token.RETURN)
	value := p.parseExpression()
	return ast.NewReturnStatement(value, tok.Line)
}
