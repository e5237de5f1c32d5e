package parser

import (
	"fmt"
	"strings"

	"github.com/glossa-lang/glossa/pkg/token"
)

// SyntaxError is a parser error: the first one encountered is fatal (§4.2:
// "no error recovery").
type SyntaxError struct {
	Message string
	Line    int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Συντακτικό λάθος στη γραμμή %d: %s", e.Line, e.Message)
}

func (p *Parser) current() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) token.Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[i]
}

func (p *Parser) at(types ...token.Type) bool {
	cur := p.current().Type
	for _, t := range types {
		if cur == t {
			return true
		}
	}
	return false
}

// accept consumes and returns the current token if its type is one of
// types, otherwise leaves the cursor untouched.
func (p *Parser) accept(types ...token.Type) (token.Token, bool) {
	if p.at(types...) {
		tok := p.current()
		p.pos++
		return tok, true
	}
	return token.Token{}, false
}

// expect consumes the current token if it matches one of types, or raises
// a SyntaxError naming every acceptable type.
func (p *Parser) expect(types ...token.Type) token.Token {
	if tok, ok := p.accept(types...); ok {
		return tok
	}
	p.fail(types...)
	panic("unreachable")
}

func (p *Parser) fail(expected ...token.Type) {
	names := make([]string, len(expected))
	for i, t := range expected {
		names[i] = t.String()
	}
	cur := p.current()
	msg := fmt.Sprintf("αναμενόταν %s, βρέθηκε %s", strings.Join(names, " ή "), describeToken(cur))
	panic(&SyntaxError{Message: msg, Line: cur.Line})
}

func describeToken(tok token.Token) string {
	if tok.Type == token.EOF {
		return "τέλος αρχείου"
	}
	return tok.Type.String()
}

func (p *Parser) errorf(line int, format string, args ...any) {
	panic(&SyntaxError{Message: fmt.Sprintf(format, args...), Line: line})
}
