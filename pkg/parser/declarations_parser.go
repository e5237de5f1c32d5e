package parser

import (
	"strconv"

	"github.com/glossa-lang/glossa/pkg/ast"
	"github.com/glossa-lang/glossa/pkg/token"
)

var typeTokens = []token.Type{token.TYPE_INTEGER, token.TYPE_REAL, token.TYPE_CHAR, token.TYPE_BOOL}

func typeFromToken(t token.Type) ast.Type {
	switch t {
	case token.TYPE_INTEGER:
		return ast.Integer
	case token.TYPE_REAL:
		return ast.Real
	case token.TYPE_CHAR:
		return ast.Character
	case token.TYPE_BOOL:
		return ast.Boolean
	default:
		return ast.Integer
	}
}

// parseVariableSections consumes zero or more ΣΤΑΘΕΡΕΣ/ΜΕΤΑΒΛΗΤΕΣ/ΠΙΝΑΚΕΣ
// blocks in any order, populating consts and vars. ΜΕΤΑΒΛΗΤΕΣ and ΠΙΝΑΚΕΣ
// share one grammar — a type keyword, colon, and a comma-separated list of
// plain or indexed (`name[upper]`, `name[upper, upper]`) names — since
// §4.2 allows indexed names directly inside ΜΕΤΑΒΛΗΤΕΣ; ΠΙΝΑΚΕΣ is kept as
// an accepted alternate section header for sources written the way the
// original reference implementation expects.
func (p *Parser) parseVariableSections(names *nameSet, consts *[]ast.ConstDecl, vars *[]ast.VarDecl) {
	for {
		switch {
		case p.at(token.CONSTS):
			p.pos++
			p.parseConstSection(names, consts)
		case p.at(token.VARS), p.at(token.ARRAYS):
			p.pos++
			p.parseDeclList(names, vars)
		default:
			return
		}
	}
}

func (p *Parser) parseConstSection(names *nameSet, consts *[]ast.ConstDecl) {
	for p.at(token.IDENT) {
		nameTok := p.expect(token.IDENT)
		names.declare(nameTok.Literal, nameTok.Line)
		p.expect(token.EQ)
		lit := foldConstant(p.constLiteral())
		typ, ok := literalType(lit)
		if !ok {
			p.errorf(nameTok.Line, "η σταθερά '%s' πρέπει να αρχικοποιείται με σταθερή τιμή", nameTok.Literal)
		}
		*consts = append(*consts, ast.ConstDecl{Name: nameTok.Literal, Type: typ, Value: lit, Line: nameTok.Line})
	}
}

// foldConstant collapses a leading unary minus over a numeric literal
// into the literal itself, since ΣΤΑΘΕΡΕΣ initializers (§4.2) must be
// constant values, not general expressions.
func foldConstant(e ast.Expression) ast.Expression {
	u, ok := e.(*ast.UnaryExpr)
	if !ok || u.Op != token.MINUS {
		return e
	}
	switch v := u.Operand.(type) {
	case *ast.IntegerLiteral:
		return ast.NewIntegerLiteral(-v.Value, v.Line())
	case *ast.RealLiteral:
		return ast.NewRealLiteral(-v.Value, v.Line())
	default:
		return e
	}
}

func literalType(e ast.Expression) (ast.Type, bool) {
	switch e.(type) {
	case *ast.IntegerLiteral:
		return ast.Integer, true
	case *ast.RealLiteral:
		return ast.Real, true
	case *ast.StringLiteral:
		return ast.Character, true
	case *ast.BooleanLiteral:
		return ast.Boolean, true
	default:
		return ast.Integer, false
	}
}

func (p *Parser) parseDeclList(names *nameSet, vars *[]ast.VarDecl) {
	for p.at(typeTokens...) {
		typeTok := p.expect(typeTokens...)
		typ := typeFromToken(typeTok.Type)
		p.expect(token.COLON)
		for {
			idTok := p.expect(token.IDENT)
			names.declare(idTok.Literal, idTok.Line)
			var dims []int
			if p.at(token.LBRACKET) {
				dims = p.parseArrayDimensions()
			}
			*vars = append(*vars, ast.VarDecl{Name: idTok.Literal, Type: typ, Dims: dims, Line: idTok.Line})
			if _, ok := p.accept(token.COMMA); !ok {
				break
			}
		}
	}
}

// parseArrayDimensions parses `[upper]` or `[upper, upper]`.
func (p *Parser) parseArrayDimensions() []int {
	p.expect(token.LBRACKET)
	dims := []int{p.parseArrayBound()}
	for {
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
		dims = append(dims, p.parseArrayBound())
	}
	p.expect(token.RBRACKET)
	if len(dims) > 2 {
		p.errorf(p.current().Line, "υποστηρίζονται μόνο μονοδιάστατοι ή διδιάστατοι πίνακες")
	}
	return dims
}

func (p *Parser) parseArrayBound() int {
	tok := p.expect(token.INTEGER)
	n, err := strconv.Atoi(tok.Literal)
	if err != nil || n <= 0 {
		p.errorf(tok.Line, "το μέγεθος πίνακα πρέπει να είναι θετικός ακέραιος")
	}
	return n
}

// parseParameterList parses `(name: type, ...)` or `()`.
func (p *Parser) parseParameterList() []ast.Parameter {
	p.expect(token.LPAREN)
	var params []ast.Parameter
	if _, ok := p.accept(token.RPAREN); ok {
		return params
	}
	seen := map[string]bool{}
	for {
		nameTok := p.expect(token.IDENT)
		if seen[nameTok.Literal] {
			p.errorf(nameTok.Line, "η παράμετρος '%s' έχει ήδη δηλωθεί", nameTok.Literal)
		}
		seen[nameTok.Literal] = true
		p.expect(token.COLON)
		typeTok := p.expect(typeTokens...)
		params = append(params, ast.Parameter{Name: nameTok.Literal, Type: typeFromToken(typeTok.Type)})
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseProcedureDef() *ast.ProcedureDef {
	header := p.expect(token.PROC)
	nameTok := p.expect(token.IDENT)
	proc := ast.NewProcedureDef(nameTok.Literal, header.Line)
	proc.Params = p.parseParameterList()

	localNames := newNameSet()
	for _, param := range proc.Params {
		localNames.declare(param.Name, header.Line)
	}
	p.parseVariableSections(localNames, &proc.Consts, &proc.Locals)

	p.expect(token.BEGIN)
	proc.Body = p.parseStatements(token.END_PROC)
	p.expect(token.END_PROC)
	return proc
}

func (p *Parser) parseFunctionDef() *ast.FunctionDef {
	header := p.expect(token.FUNC)
	nameTok := p.expect(token.IDENT)
	fn := ast.NewFunctionDef(nameTok.Literal, header.Line)
	fn.Params = p.parseParameterList()
	p.expect(token.COLON)
	retTok := p.expect(typeTokens...)
	fn.ReturnType = typeFromToken(retTok.Type)

	localNames := newNameSet()
	for _, param := range fn.Params {
		localNames.declare(param.Name, header.Line)
	}
	p.parseVariableSections(localNames, &fn.Consts, &fn.Locals)

	p.expect(token.BEGIN)
	fn.Body = p.parseStatements(token.END_FUNC)
	p.expect(token.END_FUNC)
	return fn
}
