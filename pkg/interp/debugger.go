package interp

import (
	"github.com/glossa-lang/glossa/pkg/ast"
	"github.com/glossa-lang/glossa/pkg/runtime"
)

// Binding is the debugger-facing view of one visible name: its declared
// type, current value, and scope tag (§4.4). It is a plain copy of
// runtime.Binding's shape, kept separate so pkg/interp's public surface
// does not leak runtime.Slot pointers the hook could mutate.
type Binding struct {
	Name  string
	Type  ast.Type
	Value runtime.Value
	Scope runtime.ScopeTag
}

// Snapshot is the read-only environment view passed to a Debugger's
// Before/After calls.
type Snapshot []Binding

func snapshotOf(env *runtime.Environment) Snapshot {
	bindings := env.Snapshot()
	out := make(Snapshot, len(bindings))
	for i, b := range bindings {
		value := b.Slot.Value
		if arr, ok := value.(*runtime.ArrayValue); ok {
			value = arr.Clone() // never hand the hook a live array backing slice
		}
		out[i] = Binding{Name: b.Name, Type: b.Slot.Type, Value: value, Scope: b.Scope}
	}
	return out
}

// Debugger is the cooperative suspension contract of §4.4: the
// interpreter calls Before and After around every statement when a
// Debugger is supplied to Run. Either call may block to implement
// stepping, and either may return a non-nil error to request a clean
// stop — the interpreter unwinds every active call frame and reports
// "execution stopped" (§5), rather than treating it as an ordinary
// runtime error.
type Debugger interface {
	Before(stmt ast.Statement, snap Snapshot) error
	After(stmt ast.Statement, snap Snapshot) error
}

// ErrStopRequested is returned by a Debugger implementation to request a
// clean stop of the running program.
var ErrStopRequested = errStopRequestedSentinel{}

type errStopRequestedSentinel struct{}

func (errStopRequestedSentinel) Error() string { return "stop requested" }
