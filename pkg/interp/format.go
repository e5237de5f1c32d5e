package interp

import (
	"strconv"
	"strings"

	"github.com/glossa-lang/glossa/pkg/ast"
	"github.com/glossa-lang/glossa/pkg/runtime"
)

// RealFormatter renders a REAL value as text. Run uses formatReal (the
// shortest round-trip decimal of §6) unless the host supplies a
// different one via WithRealFormatter — see pkg/config's RealFormat
// policy, which a glossa.yaml run configuration can pin to a fixed
// number of fractional digits instead.
type RealFormatter func(float64) string

// FormatValue renders a runtime.Value the same way ΓΡΑΨΕ would (§6),
// using the default shortest-round-trip real formatter. It is exported
// for hosts — e.g. cmd/glossa's terminal debugger — that need to render
// a Snapshot's bindings consistently with the interpreter's own output
// rather than falling back to Go's default %v formatting.
func FormatValue(v runtime.Value) string {
	return formatValue(v, formatReal)
}

// formatValue renders a runtime.Value per §6's ΓΡΑΨΕ formatting rules.
func formatValue(v runtime.Value, realFmt RealFormatter) string {
	switch n := v.(type) {
	case runtime.IntegerValue:
		return strconv.FormatInt(n.Val, 10)
	case runtime.RealValue:
		return realFmt(n.Val)
	case runtime.BooleanValue:
		if n.Val {
			return "ΑΛΗΘΗΣ"
		}
		return "ΨΕΥΔΗΣ"
	case runtime.StringValue:
		return n.Val
	case *runtime.ArrayValue:
		return formatArray(n, realFmt)
	default:
		return ""
	}
}

// formatReal formats the shortest round-trip decimal (§6) but guarantees
// at least one fractional digit even for integral values, since ΓΛΩΣΣΑ's
// REAL must always read back as visibly non-integer. This is the default
// RealFormatter; it is also the closest Go analogue to the original
// implementation's plain `str(float)` (see SPEC_FULL.md).
func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, "eE") {
		// Scientific notation already round-trips unambiguously as a real;
		// leave it untouched rather than force a misleading ".0".
		return s
	}
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FixedRealFormatter returns a RealFormatter that always renders exactly
// decimals fractional digits, for hosts whose glossa.yaml pins
// real_format: fixed instead of the default shortest round-trip.
func FixedRealFormatter(decimals int) RealFormatter {
	return func(f float64) string {
		return strconv.FormatFloat(f, 'f', decimals, 64)
	}
}

// formatArray renders a 1-D array as `[v1, v2, ...]` and a 2-D array as
// `[[v,v,v],[v,v,v]]`, row-major (§6).
func formatArray(arr *runtime.ArrayValue, realFmt RealFormatter) string {
	switch len(arr.Dims) {
	case 1:
		return formatRow(arr, 0, arr.Dims[0], realFmt)
	case 2:
		rows, cols := arr.Dims[0], arr.Dims[1]
		parts := make([]string, rows)
		for r := 0; r < rows; r++ {
			parts[r] = formatRow(arr, r*cols, cols, realFmt)
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return "[]"
	}
}

func formatRow(arr *runtime.ArrayValue, start, count int, realFmt RealFormatter) string {
	parts := make([]string, count)
	for i := 0; i < count; i++ {
		parts[i] = formatValue(arr.Data[start+i], realFmt)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// parseInputValue parses one ΔΙΑΒΑΣΕ input line into the target's
// declared element type (§6). Leading/trailing whitespace is trimmed
// before parsing.
func parseInputValue(line int, name string, text string, typ ast.Type) (runtime.Value, error) {
	text = strings.TrimSpace(text)
	switch typ {
	case ast.Integer:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, errInvalidInput(line, name)
		}
		return runtime.IntegerValue{Val: n}, nil
	case ast.Real:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, errInvalidInput(line, name)
		}
		return runtime.RealValue{Val: f}, nil
	case ast.Boolean:
		switch text {
		case "ΑΛΗΘΗΣ":
			return runtime.BooleanValue{Val: true}, nil
		case "ΨΕΥΔΗΣ":
			return runtime.BooleanValue{Val: false}, nil
		default:
			return nil, errInvalidInput(line, name)
		}
	case ast.Character:
		return runtime.StringValue{Val: text}, nil
	default:
		return nil, errInvalidInput(line, name)
	}
}
