package interp

import (
	"io"
	"strings"

	"github.com/glossa-lang/glossa/pkg/ast"
	"github.com/glossa-lang/glossa/pkg/runtime"
	"github.com/glossa-lang/glossa/pkg/token"
)

func (ip *Interpreter) execStatements(env *runtime.Environment, stmts []ast.Statement) {
	for _, stmt := range stmts {
		ip.execStatement(env, stmt)
	}
}

// execStatement dispatches on the statement's concrete type and, when a
// Debugger was supplied to Run, calls its Before/After hooks around the
// dispatch (§4.4).
func (ip *Interpreter) execStatement(env *runtime.Environment, stmt ast.Statement) {
	if ip.dbg != nil {
		if err := ip.dbg.Before(stmt, snapshotOf(env)); err != nil {
			panic(stopSignal{line: stmt.Line()})
		}
	}

	switch s := stmt.(type) {
	case *ast.AssignStatement:
		ip.execAssign(env, s)
	case *ast.IfStatement:
		ip.execIf(env, s)
	case *ast.WhileStatement:
		ip.execWhile(env, s)
	case *ast.RepeatStatement:
		ip.execRepeat(env, s)
	case *ast.ForStatement:
		ip.execFor(env, s)
	case *ast.SelectStatement:
		ip.execSelect(env, s)
	case *ast.ReadStatement:
		ip.execRead(env, s)
	case *ast.WriteStatement:
		ip.execWrite(env, s)
	case *ast.CallStatement:
		ip.execCall(env, s)
	case *ast.ReturnStatement:
		panic(returnSignal{value: ip.evalExpression(env, s.Value)})
	default:
		panic(newDiag(KindRuntimeType, stmt.Line(), "άγνωστος τύπος εντολής"))
	}

	if ip.dbg != nil {
		if err := ip.dbg.After(stmt, snapshotOf(env)); err != nil {
			panic(stopSignal{line: stmt.Line()})
		}
	}
}

func (ip *Interpreter) execAssign(env *runtime.Environment, s *ast.AssignStatement) {
	value := ip.evalExpression(env, s.Value)
	slot, _ := env.Lookup(s.Name)
	if slot == nil {
		panic(errUnknownIdentifier(s.Line(), s.Name))
	}
	if s.Indices == nil {
		slot.Value = coerceTo(s.Line(), s.Name, value, slot.Type)
		return
	}
	arr, ok := slot.Value.(*runtime.ArrayValue)
	if !ok {
		panic(errTypeMismatch(s.Line(), s.Name))
	}
	indices := ip.evalIndices(env, s.Name, s.Line(), s.Indices)
	coerced := coerceTo(s.Line(), s.Name, value, arr.ElemType)
	if !arr.Set(indices, coerced) {
		panic(errIndexOutOfRange(s.Line(), s.Name))
	}
}

func (ip *Interpreter) execIf(env *runtime.Environment, s *ast.IfStatement) {
	if asBool(s.Line(), ip.evalExpression(env, s.Cond)) {
		ip.execStatements(env, s.Then)
		return
	}
	for _, clause := range s.ElseIfs {
		if asBool(s.Line(), ip.evalExpression(env, clause.Cond)) {
			ip.execStatements(env, clause.Body)
			return
		}
	}
	if s.HasElse {
		ip.execStatements(env, s.Else)
	}
}

func (ip *Interpreter) execWhile(env *runtime.Environment, s *ast.WhileStatement) {
	for asBool(s.Line(), ip.evalExpression(env, s.Cond)) {
		ip.execStatements(env, s.Body)
	}
}

func (ip *Interpreter) execRepeat(env *runtime.Environment, s *ast.RepeatStatement) {
	for {
		ip.execStatements(env, s.Body)
		if asBool(s.Line(), ip.evalExpression(env, s.Cond)) {
			return
		}
	}
}

// execFor implements §4.4's FOR semantics: start/end/step are evaluated
// once at entry, the loop variable must name a declared numeric slot,
// and it retains its final value after exit. Step 0 is rejected as an
// invalid-loop-step Diagnostic rather than looping forever or silently
// skipping (a deliberate resolution of the §9 open question — see
// SPEC_FULL.md).
func (ip *Interpreter) execFor(env *runtime.Environment, s *ast.ForStatement) {
	slot, _ := env.Lookup(s.Var)
	if slot == nil {
		panic(errUnknownIdentifier(s.Line(), s.Var))
	}
	if slot.Type != ast.Integer && slot.Type != ast.Real {
		panic(errTypeMismatch(s.Line(), s.Var))
	}

	start := asFloat(s.Line(), "ΓΙΑ", ip.evalExpression(env, s.Start))
	end := asFloat(s.Line(), "ΓΙΑ", ip.evalExpression(env, s.End))
	step := 1.0
	if s.Step != nil {
		step = asFloat(s.Line(), "ΓΙΑ", ip.evalExpression(env, s.Step))
	}
	if step == 0 {
		panic(errInvalidLoopStep(s.Line()))
	}

	setLoopVar := func(f float64) {
		if slot.Type == ast.Integer {
			slot.Value = runtime.IntegerValue{Val: int64(f)}
		} else {
			slot.Value = runtime.RealValue{Val: f}
		}
	}

	i := start
	setLoopVar(i)
	for (step > 0 && i <= end) || (step < 0 && i >= end) {
		ip.execStatements(env, s.Body)
		i += step
		setLoopVar(i)
	}
}

func (ip *Interpreter) execSelect(env *runtime.Environment, s *ast.SelectStatement) {
	subject := ip.evalExpression(env, s.Subject)
	for _, c := range s.Cases {
		for _, v := range c.Values {
			if caseValueMatches(ip, env, s.Line(), subject, v) {
				ip.execStatements(env, c.Body)
				return
			}
		}
	}
	if s.HasDefault {
		ip.execStatements(env, s.Default)
	}
}

func caseValueMatches(ip *Interpreter, env *runtime.Environment, line int, subject runtime.Value, c ast.CaseValue) bool {
	low := ip.evalExpression(env, c.Low)
	if !c.IsRange() {
		return evalRelational(line, token.EQ, subject, low).(runtime.BooleanValue).Val
	}
	high := ip.evalExpression(env, c.High)
	geLow := evalRelational(line, token.GE, subject, low).(runtime.BooleanValue).Val
	leHigh := evalRelational(line, token.LE, subject, high).(runtime.BooleanValue).Val
	return geLow && leHigh
}

func (ip *Interpreter) execRead(env *runtime.Environment, s *ast.ReadStatement) {
	for _, target := range s.Targets {
		ip.execReadTarget(env, target)
	}
}

func (ip *Interpreter) execReadTarget(env *runtime.Environment, target ast.ReadTarget) {
	slot, _ := env.Lookup(target.Name)
	if slot == nil {
		panic(errUnknownIdentifier(target.Line, target.Name))
	}
	line, err := ip.in.ReadLine()
	if err != nil && err != io.EOF {
		panic(newDiag(KindRuntimeIO, target.Line, "σφάλμα ανάγνωσης εισόδου"))
	}

	if target.Indices == nil {
		v, perr := parseInputValue(target.Line, target.Name, line, slot.Type)
		if perr != nil {
			panic(perr)
		}
		slot.Value = v
		return
	}
	arr, ok := slot.Value.(*runtime.ArrayValue)
	if !ok {
		panic(errTypeMismatch(target.Line, target.Name))
	}
	indices := ip.evalIndices(env, target.Name, target.Line, target.Indices)
	v, perr := parseInputValue(target.Line, target.Name, line, arr.ElemType)
	if perr != nil {
		panic(perr)
	}
	if !arr.Set(indices, v) {
		panic(errIndexOutOfRange(target.Line, target.Name))
	}
}

func (ip *Interpreter) execWrite(env *runtime.Environment, s *ast.WriteStatement) {
	parts := make([]string, len(s.Values))
	for i, expr := range s.Values {
		parts[i] = formatValue(ip.evalExpression(env, expr), ip.realFmt)
	}
	ip.out.WriteLine(strings.Join(parts, " "))
}

func (ip *Interpreter) execCall(env *runtime.Environment, s *ast.CallStatement) {
	if _, isBuiltin := builtins[s.Name]; isBuiltin {
		panic(errCallNotCallable(s.Line(), s.Name))
	}
	if _, isFn := ip.funcs[s.Name]; isFn {
		panic(errCallNotCallable(s.Line(), s.Name))
	}
	proc, ok := ip.procs[s.Name]
	if !ok {
		panic(errUnknownIdentifier(s.Line(), s.Name))
	}
	ip.callProcedure(env, proc, s.Args, s.Line())
}

func (ip *Interpreter) bindCallFrame(params []ast.Parameter, consts []ast.ConstDecl, locals []ast.VarDecl, args []ast.Expression, caller *runtime.Environment, line int, name string) *runtime.Environment {
	if len(args) != len(params) {
		panic(errArityMismatch(line, name, len(params), len(args)))
	}
	frame := runtime.NewEnvironment(ip.global) // flat two-level scoping (§9): globals stay visible through the parent link; only the current call frame is local.
	for i, param := range params {
		argVal := ip.evalExpression(caller, args[i])
		coerced := coerceTo(line, param.Name, argVal, param.Type)
		if arr, ok := coerced.(*runtime.ArrayValue); ok {
			coerced = arr.Clone() // §9: arrays are values, never aliased across a call
		}
		frame.DeclareWithValue(param.Name, param.Type, coerced)
	}
	for _, c := range consts {
		frame.DeclareWithValue(c.Name, c.Type, evalConstExpr(c.Value))
	}
	for _, local := range locals {
		frame.Declare(local.Name, local.Type, local.Dims)
	}
	return frame
}

func (ip *Interpreter) callProcedure(caller *runtime.Environment, proc *ast.ProcedureDef, args []ast.Expression, line int) {
	frame := ip.bindCallFrame(proc.Params, proc.Consts, proc.Locals, args, caller, line, proc.Name)
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(returnSignal); ok {
					panic(newDiag(KindSemanticBindTime, line, "το ΕΠΙΣΤΡΕΨΕ χρησιμοποιήθηκε εκτός συνάρτησης"))
				}
				panic(r)
			}
		}()
		ip.execStatements(frame, proc.Body)
	}()
}

func (ip *Interpreter) callFunction(caller *runtime.Environment, fn *ast.FunctionDef, args []ast.Expression, line int) (result runtime.Value) {
	frame := ip.bindCallFrame(fn.Params, fn.Consts, fn.Locals, args, caller, line, fn.Name)
	returned := false
	func() {
		defer func() {
			if r := recover(); r != nil {
				if sig, ok := r.(returnSignal); ok {
					result = coerceTo(line, fn.Name, sig.value, fn.ReturnType)
					returned = true
					return
				}
				panic(r)
			}
		}()
		ip.execStatements(frame, fn.Body)
	}()
	if !returned {
		panic(newDiag(KindRuntimeType, line, "η συνάρτηση '%s' δεν επέστρεψε τιμή", fn.Name))
	}
	return result
}
