// Package interp is the tree-walking evaluator for ΓΛΩΣΣΑ (§4.4): it
// turns a pkg/ast.Program plus an IO contract and an optional debugger
// hook into a stream of output and, at most, one terminal Diagnostic.
//
// Propagation follows §7 exactly: the interpreter never recovers from a
// runtime error mid-execution. Internally this is modeled with
// panic/recover, the same idiom pkg/parser uses for its own "first error
// is fatal" rule and the same idiom the teacher corpus's interpreter
// uses for non-local control flow — evalExpression and execStatement
// panic with a *Diagnostic, a returnSignal, or a stopSignal. Run is the
// only place that recovers a *Diagnostic or a stopSignal; a returnSignal
// is recovered at the function or procedure call site it unwinds to.
package interp

import (
	"github.com/glossa-lang/glossa/pkg/ast"
	"github.com/glossa-lang/glossa/pkg/runtime"
)

// Interpreter holds the callable tables built from one Program. It is
// re-entrant across distinct Run calls but is not safe for concurrent
// use of the same instance (§5: "strictly single-threaded").
type Interpreter struct {
	procs map[string]*ast.ProcedureDef
	funcs map[string]*ast.FunctionDef

	out     OutputSink
	in      InputSource
	dbg     Debugger
	realFmt RealFormatter
	global  *runtime.Environment
}

// Option configures an Interpreter at construction time. The only
// option today is WithRealFormatter; it exists as an Option (rather than
// a constructor parameter) so a host wiring a glossa.yaml run
// configuration (pkg/config) can add further knobs later without
// breaking New's signature.
type Option func(*Interpreter)

// WithRealFormatter overrides how REAL values are rendered by ΓΡΑΨΕ. The
// default is formatReal, the shortest round-trip decimal of §6; a host
// whose glossa.yaml pins real_format: fixed should pass
// FixedRealFormatter(decimals) here instead.
func WithRealFormatter(f RealFormatter) Option {
	return func(ip *Interpreter) { ip.realFmt = f }
}

// New constructs an Interpreter with no program loaded yet; call Run to
// execute a parsed Program.
func New(opts ...Option) *Interpreter {
	ip := &Interpreter{realFmt: formatReal}
	for _, opt := range opts {
		opt(ip)
	}
	return ip
}

// Run creates the global frame from the program's constants and
// variables, registers every procedure and function by name (built-in
// names always take precedence at call time, per §4.4), executes the
// main body, and returns the first Diagnostic encountered (a
// debugger-requested stop is reported as a KindControl Diagnostic), or
// nil on a clean finish.
func (ip *Interpreter) Run(prog *ast.Program, out OutputSink, in InputSource, dbg Debugger) (err error) {
	ip.out = out
	ip.in = in
	ip.dbg = dbg
	ip.procs = make(map[string]*ast.ProcedureDef, len(prog.Procedures))
	ip.funcs = make(map[string]*ast.FunctionDef, len(prog.Functions))
	for _, proc := range prog.Procedures {
		ip.procs[proc.Name] = proc
	}
	for _, fn := range prog.Functions {
		ip.funcs[fn.Name] = fn
	}

	global := runtime.NewEnvironment(nil)
	for _, c := range prog.Consts {
		global.DeclareWithValue(c.Name, c.Type, evalConstExpr(c.Value))
	}
	for _, v := range prog.Vars {
		global.Declare(v.Name, v.Type, v.Dims)
	}
	ip.global = global

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch sig := r.(type) {
		case *Diagnostic:
			err = sig
		case stopSignal:
			err = newDiag(KindControl, sig.line, "η εκτέλεση διακόπηκε")
		case returnSignal:
			err = newDiag(KindSemanticBindTime, 0, "το ΕΠΙΣΤΡΕΨΕ χρησιμοποιήθηκε εκτός συνάρτησης")
		default:
			panic(r)
		}
	}()

	ip.execStatements(global, prog.Body)
	return nil
}

// evalConstExpr evaluates a ΣΤΑΘΕΡΕΣ initializer, which the parser
// already guarantees is a folded literal expression (see
// pkg/parser.foldConstant) — so it never needs an environment.
func evalConstExpr(e ast.Expression) runtime.Value {
	switch lit := e.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: lit.Value}
	case *ast.RealLiteral:
		return runtime.RealValue{Val: lit.Value}
	case *ast.StringLiteral:
		return runtime.StringValue{Val: lit.Value}
	case *ast.BooleanLiteral:
		return runtime.BooleanValue{Val: lit.Value}
	default:
		return runtime.NilValue{}
	}
}
