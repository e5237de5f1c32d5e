// Package parser implements a hand-written recursive-descent parser for
// ΓΛΩΣΣΑ source, turning a token.Token stream into a typed pkg/ast tree.
// There is no backtracking and no error recovery: the first syntax error
// is fatal (§4.2), which this implementation models the way Go's own
// standard-library parsers do — panicking internally with a *SyntaxError
// and recovering once at the Parse entrypoint, rather than threading an
// error return through every one of the dozens of grammar productions.
package parser

import (
	"github.com/glossa-lang/glossa/pkg/ast"
	"github.com/glossa-lang/glossa/pkg/token"
)

// Parser holds the token stream and the cursor into it.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New constructs a Parser over an already-tokenized source.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, pos: 0}
}

// Parse consumes the entire token stream and returns the program AST, or
// the first SyntaxError encountered.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*SyntaxError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()
	return p.parseProgram(), nil
}

// parseProgram implements:
//
//	Program := ΠΡΟΓΡΑΜΜΑ ident [consts] [vars] ΑΡΧΗ stmts ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ subprograms*
//
// subprograms may also precede ΠΡΟΓΡΑΜΜΑ; both orderings are accepted.
func (p *Parser) parseProgram() *ast.Program {
	names := newNameSet()

	leading := p.parseLeadingSubprograms(names)

	header := p.expect(token.PROGRAM)
	nameTok := p.expect(token.IDENT)
	prog := ast.NewProgram(nameTok.Literal, header.Line)

	p.parseVariableSections(names, &prog.Consts, &prog.Vars)

	p.expect(token.BEGIN)
	prog.Body = p.parseStatements(token.END_PROGRAM)
	p.expect(token.END_PROGRAM)

	prog.Procedures = append(prog.Procedures, leading.procs...)
	prog.Functions = append(prog.Functions, leading.funcs...)

	for !p.at(token.EOF) {
		switch {
		case p.at(token.PROC):
			proc := p.parseProcedureDef()
			names.declareSubprogram(proc.Name, proc.Line())
			prog.Procedures = append(prog.Procedures, proc)
		case p.at(token.FUNC):
			fn := p.parseFunctionDef()
			names.declareSubprogram(fn.Name, fn.Line())
			prog.Functions = append(prog.Functions, fn)
		default:
			p.errorf(p.current().Line, "απροσδόκητο περιεχόμενο μετά το %s", token.END_PROGRAM)
		}
	}
	p.expect(token.EOF)
	return prog
}

type leadingSubprograms struct {
	procs []*ast.ProcedureDef
	funcs []*ast.FunctionDef
}

// parseLeadingSubprograms consumes any ΔΙΑΔΙΚΑΣΙΑ/ΣΥΝΑΡΤΗΣΗ definitions
// that appear before the ΠΡΟΓΡΑΜΜΑ keyword (§4.2: "subprograms may also
// appear before the program keyword").
func (p *Parser) parseLeadingSubprograms(names *nameSet) leadingSubprograms {
	var out leadingSubprograms
	for {
		switch {
		case p.at(token.PROC):
			proc := p.parseProcedureDef()
			names.declareSubprogram(proc.Name, proc.Line())
			out.procs = append(out.procs, proc)
		case p.at(token.FUNC):
			fn := p.parseFunctionDef()
			names.declareSubprogram(fn.Name, fn.Line())
			out.funcs = append(out.funcs, fn)
		default:
			return out
		}
	}
}

// nameSet enforces §3's invariant that variable, constant, procedure, and
// function names are unique within the frame they are declared in.
type nameSet struct {
	seen map[string]int // name -> line first declared
}

func newNameSet() *nameSet {
	return &nameSet{seen: make(map[string]int)}
}

func (s *nameSet) declare(name string, line int) {
	if _, ok := s.seen[name]; ok {
		panic(&SyntaxError{Message: "το όνομα '" + name + "' έχει ήδη δηλωθεί", Line: line})
	}
	s.seen[name] = line
}

func (s *nameSet) declareSubprogram(name string, line int) {
	s.declare(name, line)
}
