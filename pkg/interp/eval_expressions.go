package interp

import (
	"github.com/glossa-lang/glossa/pkg/ast"
	"github.com/glossa-lang/glossa/pkg/runtime"
	"github.com/glossa-lang/glossa/pkg/token"
)

// coerceTo applies §4.3's coercion table, panicking with a type-mismatch
// Diagnostic when no rule matches.
func coerceTo(line int, name string, v runtime.Value, target ast.Type) runtime.Value {
	switch target {
	case ast.Integer:
		switch n := v.(type) {
		case runtime.IntegerValue:
			return n
		case runtime.BooleanValue:
			if n.Val {
				return runtime.IntegerValue{Val: 1}
			}
			return runtime.IntegerValue{Val: 0}
		}
	case ast.Real:
		switch n := v.(type) {
		case runtime.RealValue:
			return n
		case runtime.IntegerValue:
			return runtime.RealValue{Val: float64(n.Val)}
		case runtime.BooleanValue:
			if n.Val {
				return runtime.RealValue{Val: 1.0}
			}
			return runtime.RealValue{Val: 0.0}
		}
	case ast.Boolean:
		if n, ok := v.(runtime.BooleanValue); ok {
			return n
		}
	case ast.Character:
		if n, ok := v.(runtime.StringValue); ok {
			return n
		}
	}
	panic(errTypeMismatch(line, name))
}

func asFloat(line int, op string, v runtime.Value) float64 {
	switch n := v.(type) {
	case runtime.IntegerValue:
		return float64(n.Val)
	case runtime.RealValue:
		return n.Val
	default:
		panic(errOperandTypesIncompatible(line, op))
	}
}

func isReal(v runtime.Value) bool {
	_, ok := v.(runtime.RealValue)
	return ok
}

func asInt(line int, op string, v runtime.Value) int64 {
	n, ok := v.(runtime.IntegerValue)
	if !ok {
		panic(errOperandTypesIncompatible(line, op))
	}
	return n.Val
}

func asBool(line int, v runtime.Value) bool {
	n, ok := v.(runtime.BooleanValue)
	if !ok {
		panic(errGuardNotBoolean(line))
	}
	return n.Val
}

func (ip *Interpreter) evalExpression(env *runtime.Environment, expr ast.Expression) runtime.Value {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: e.Value}
	case *ast.RealLiteral:
		return runtime.RealValue{Val: e.Value}
	case *ast.StringLiteral:
		return runtime.StringValue{Val: e.Value}
	case *ast.BooleanLiteral:
		return runtime.BooleanValue{Val: e.Value}
	case *ast.VariableRef:
		return ip.evalVariableRef(env, e)
	case *ast.IndexedRef:
		return ip.evalIndexedRef(env, e)
	case *ast.UnaryExpr:
		return ip.evalUnary(env, e)
	case *ast.BinaryExpr:
		return ip.evalBinary(env, e)
	case *ast.FuncCallExpr:
		return ip.evalFuncCall(env, e)
	default:
		panic(newDiag(KindRuntimeType, expr.Line(), "άγνωστος τύπος έκφρασης"))
	}
}

func (ip *Interpreter) evalVariableRef(env *runtime.Environment, e *ast.VariableRef) runtime.Value {
	slot, _ := env.Lookup(e.Name)
	if slot == nil {
		panic(errUnknownIdentifier(e.Line(), e.Name))
	}
	return slot.Value
}

func (ip *Interpreter) evalIndexedRef(env *runtime.Environment, e *ast.IndexedRef) runtime.Value {
	slot, _ := env.Lookup(e.Name)
	if slot == nil {
		panic(errUnknownIdentifier(e.Line(), e.Name))
	}
	arr, ok := slot.Value.(*runtime.ArrayValue)
	if !ok {
		panic(errTypeMismatch(e.Line(), e.Name))
	}
	indices := ip.evalIndices(env, e.Name, e.Line(), e.Indices)
	val, ok := arr.Get(indices)
	if !ok {
		panic(errIndexOutOfRange(e.Line(), e.Name))
	}
	return val
}

func (ip *Interpreter) evalIndices(env *runtime.Environment, name string, line int, exprs []ast.Expression) []int {
	out := make([]int, len(exprs))
	for i, idxExpr := range exprs {
		v := ip.evalExpression(env, idxExpr)
		n, ok := v.(runtime.IntegerValue)
		if !ok {
			panic(errTypeMismatch(line, name))
		}
		out[i] = int(n.Val)
	}
	return out
}

func (ip *Interpreter) evalUnary(env *runtime.Environment, e *ast.UnaryExpr) runtime.Value {
	switch e.Op {
	case token.NOT:
		return runtime.BooleanValue{Val: !asBool(e.Line(), ip.evalExpression(env, e.Operand))}
	case token.MINUS:
		v := ip.evalExpression(env, e.Operand)
		if isReal(v) {
			return runtime.RealValue{Val: -asFloat(e.Line(), "-", v)}
		}
		return runtime.IntegerValue{Val: -asInt(e.Line(), "-", v)}
	case token.PLUS:
		v := ip.evalExpression(env, e.Operand)
		if isReal(v) {
			return runtime.RealValue{Val: asFloat(e.Line(), "+", v)}
		}
		return runtime.IntegerValue{Val: asInt(e.Line(), "+", v)}
	default:
		panic(newDiag(KindRuntimeType, e.Line(), "άγνωστος μοναδιαίος τελεστής"))
	}
}

func (ip *Interpreter) evalBinary(env *runtime.Environment, e *ast.BinaryExpr) runtime.Value {
	// ΚΑΙ/Η short-circuit (§4.4): the right operand is not evaluated when
	// the outcome is already decided.
	if e.Op == token.AND {
		left := asBool(e.Line(), ip.evalExpression(env, e.Left))
		if !left {
			return runtime.BooleanValue{Val: false}
		}
		return runtime.BooleanValue{Val: asBool(e.Line(), ip.evalExpression(env, e.Right))}
	}
	if e.Op == token.OR {
		left := asBool(e.Line(), ip.evalExpression(env, e.Left))
		if left {
			return runtime.BooleanValue{Val: true}
		}
		return runtime.BooleanValue{Val: asBool(e.Line(), ip.evalExpression(env, e.Right))}
	}

	left := ip.evalExpression(env, e.Left)
	right := ip.evalExpression(env, e.Right)

	switch e.Op {
	case token.EQ, token.NE, token.LT, token.LE, token.GT, token.GE:
		return evalRelational(e.Line(), e.Op, left, right)
	case token.PLUS, token.MINUS, token.STAR, token.SLASH:
		return evalArithmetic(e.Line(), e.Op, left, right)
	case token.DIV, token.MOD:
		return evalIntegerOnly(e.Line(), e.Op, left, right)
	default:
		panic(newDiag(KindRuntimeType, e.Line(), "άγνωστος δυαδικός τελεστής"))
	}
}

// evalArithmetic implements §4.3's mixed-arithmetic rule: if either
// operand is REAL the result is REAL, otherwise INTEGER; `/` always
// produces REAL regardless of operand types.
func evalArithmetic(line int, op token.Type, left, right runtime.Value) runtime.Value {
	opName := op.String()
	if op == token.SLASH {
		l := asFloat(line, opName, left)
		r := asFloat(line, opName, right)
		if r == 0 {
			panic(errDivisionByZero(line))
		}
		return runtime.RealValue{Val: l / r}
	}
	if isReal(left) || isReal(right) {
		l := asFloat(line, opName, left)
		r := asFloat(line, opName, right)
		switch op {
		case token.PLUS:
			return runtime.RealValue{Val: l + r}
		case token.MINUS:
			return runtime.RealValue{Val: l - r}
		case token.STAR:
			return runtime.RealValue{Val: l * r}
		}
	}
	l := asInt(line, opName, left)
	r := asInt(line, opName, right)
	switch op {
	case token.PLUS:
		return runtime.IntegerValue{Val: l + r}
	case token.MINUS:
		return runtime.IntegerValue{Val: l - r}
	case token.STAR:
		return runtime.IntegerValue{Val: l * r}
	}
	panic(newDiag(KindRuntimeType, line, "άγνωστος αριθμητικός τελεστής"))
}

// evalIntegerOnly implements DIV and MOD, which require both operands
// INTEGER (§4.3).
func evalIntegerOnly(line int, op token.Type, left, right runtime.Value) runtime.Value {
	opName := op.String()
	l := asInt(line, opName, left)
	r := asInt(line, opName, right)
	if r == 0 {
		panic(errDivisionByZero(line))
	}
	if op == token.DIV {
		return runtime.IntegerValue{Val: l / r}
	}
	return runtime.IntegerValue{Val: l % r}
}

func evalRelational(line int, op token.Type, left, right runtime.Value) runtime.Value {
	if s, ok := left.(runtime.StringValue); ok {
		r, ok := right.(runtime.StringValue)
		if !ok {
			panic(errOperandTypesIncompatible(line, op.String()))
		}
		return runtime.BooleanValue{Val: compareOrdered(op, compareStrings(s.Val, r.Val))}
	}
	if b, ok := left.(runtime.BooleanValue); ok {
		r, ok := right.(runtime.BooleanValue)
		if !ok {
			panic(errOperandTypesIncompatible(line, op.String()))
		}
		return runtime.BooleanValue{Val: compareOrdered(op, compareBools(b.Val, r.Val))}
	}
	l := asFloat(line, op.String(), left)
	r := asFloat(line, op.String(), right)
	var cmp int
	switch {
	case l < r:
		cmp = -1
	case l > r:
		cmp = 1
	default:
		cmp = 0
	}
	return runtime.BooleanValue{Val: compareOrdered(op, cmp)}
}

func compareOrdered(op token.Type, cmp int) bool {
	switch op {
	case token.EQ:
		return cmp == 0
	case token.NE:
		return cmp != 0
	case token.LT:
		return cmp < 0
	case token.LE:
		return cmp <= 0
	case token.GT:
		return cmp > 0
	case token.GE:
		return cmp >= 0
	default:
		return false
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a && b:
		return -1
	default:
		return 1
	}
}

func (ip *Interpreter) evalFuncCall(env *runtime.Environment, e *ast.FuncCallExpr) runtime.Value {
	if fn, ok := builtins[e.Name]; ok {
		if len(e.Args) != 1 {
			panic(errArityMismatch(e.Line(), e.Name, 1, len(e.Args)))
		}
		arg := ip.evalExpression(env, e.Args[0])
		v, err := fn(e.Line(), arg)
		if err != nil {
			panic(err)
		}
		return v
	}
	def, ok := ip.funcs[e.Name]
	if !ok {
		if _, isProc := ip.procs[e.Name]; isProc {
			panic(errCallNotCallable(e.Line(), e.Name))
		}
		panic(errUnknownIdentifier(e.Line(), e.Name))
	}
	return ip.callFunction(env, def, e.Args, e.Line())
}
