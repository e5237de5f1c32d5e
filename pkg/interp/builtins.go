package interp

import (
	"math"

	"github.com/glossa-lang/glossa/pkg/runtime"
)

// builtin is a single-argument numeric callable (§4.5). Built-in names
// shadow user procedures and functions of the same name — Interpreter
// checks this table before the user callable table on every call.
type builtin func(line int, arg runtime.Value) (runtime.Value, error)

var builtins = map[string]builtin{
	"Α_Μ": builtinIntegerPart,
	"Α_Τ": builtinAbs,
	"Ε":   builtinExp,
	"ΕΦ":  builtinTan,
	"ΗΜ":  builtinSin,
	"ΣΥΝ": builtinCos,
	"ΛΟΓ": builtinLog,
	"Τ_Ρ": builtinSqrt,
}

func numericOperand(line int, name string, v runtime.Value) (float64, error) {
	switch n := v.(type) {
	case runtime.IntegerValue:
		return float64(n.Val), nil
	case runtime.RealValue:
		return n.Val, nil
	default:
		return 0, errOperandTypesIncompatible(line, name)
	}
}

func degreesToRadians(deg float64) float64 { return deg * math.Pi / 180 }

// builtinIntegerPart truncates toward zero (§4.5: "Integer part toward
// zero; result INTEGER").
func builtinIntegerPart(line int, arg runtime.Value) (runtime.Value, error) {
	x, err := numericOperand(line, "Α_Μ", arg)
	if err != nil {
		return nil, err
	}
	return runtime.IntegerValue{Val: int64(math.Trunc(x))}, nil
}

// builtinAbs preserves the operand's own numeric type (§4.5: "Absolute
// value; preserves INTEGER/REAL").
func builtinAbs(line int, arg runtime.Value) (runtime.Value, error) {
	switch n := arg.(type) {
	case runtime.IntegerValue:
		v := n.Val
		if v < 0 {
			v = -v
		}
		return runtime.IntegerValue{Val: v}, nil
	case runtime.RealValue:
		return runtime.RealValue{Val: math.Abs(n.Val)}, nil
	default:
		return nil, errOperandTypesIncompatible(line, "Α_Τ")
	}
}

func builtinExp(line int, arg runtime.Value) (runtime.Value, error) {
	x, err := numericOperand(line, "Ε", arg)
	if err != nil {
		return nil, err
	}
	return runtime.RealValue{Val: math.Exp(x)}, nil
}

func builtinTan(line int, arg runtime.Value) (runtime.Value, error) {
	x, err := numericOperand(line, "ΕΦ", arg)
	if err != nil {
		return nil, err
	}
	return runtime.RealValue{Val: math.Tan(degreesToRadians(x))}, nil
}

func builtinSin(line int, arg runtime.Value) (runtime.Value, error) {
	x, err := numericOperand(line, "ΗΜ", arg)
	if err != nil {
		return nil, err
	}
	return runtime.RealValue{Val: math.Sin(degreesToRadians(x))}, nil
}

func builtinCos(line int, arg runtime.Value) (runtime.Value, error) {
	x, err := numericOperand(line, "ΣΥΝ", arg)
	if err != nil {
		return nil, err
	}
	return runtime.RealValue{Val: math.Cos(degreesToRadians(x))}, nil
}

func builtinLog(line int, arg runtime.Value) (runtime.Value, error) {
	x, err := numericOperand(line, "ΛΟΓ", arg)
	if err != nil {
		return nil, err
	}
	if x <= 0 {
		return nil, errDomain(line, "ΛΟΓ")
	}
	return runtime.RealValue{Val: math.Log(x)}, nil
}

func builtinSqrt(line int, arg runtime.Value) (runtime.Value, error) {
	x, err := numericOperand(line, "Τ_Ρ", arg)
	if err != nil {
		return nil, err
	}
	if x < 0 {
		return nil, errDomain(line, "Τ_Ρ")
	}
	return runtime.RealValue{Val: math.Sqrt(x)}, nil
}
