package runtime

import (
	"sort"

	"github.com/glossa-lang/glossa/pkg/ast"
)

// Slot is one storage cell: a declared type, its array shape (if any),
// and the current value.
type Slot struct {
	Type  ast.Type
	Dims  []int // nil for a scalar
	Value Value
}

func (s *Slot) IsArray() bool { return s.Dims != nil }

// Environment provides ΓΛΩΣΣΑ's lexical scoping: a flat map of bindings
// plus a parent link. Per the design notes (§9), subprograms are never
// nested, so in practice a chain is never longer than two frames — global,
// then the current call frame — but Environment itself places no limit on
// chain length.
type Environment struct {
	slots  map[string]*Slot
	order  []string // declaration order, for deterministic snapshots
	parent *Environment
}

// NewEnvironment creates an environment, optionally nested under parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{slots: make(map[string]*Slot), parent: parent}
}

// Parent exposes the lexical parent (nil for the global frame).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Declare creates a new slot in this frame. It does not check for
// redeclaration; callers (the parser's bind-time checks) are responsible
// for rejecting duplicate names before the interpreter ever calls this.
func (e *Environment) Declare(name string, typ ast.Type, dims []int) *Slot {
	slot := &Slot{Type: typ, Dims: dims, Value: DefaultValue(typ)}
	if dims != nil {
		slot.Value = NewArrayValue(typ, dims)
	}
	if _, exists := e.slots[name]; !exists {
		e.order = append(e.order, name)
	}
	e.slots[name] = slot
	return slot
}

// DeclareWithValue is like Declare but seeds the slot with an explicit
// starting value (used for constants and for binding call arguments).
func (e *Environment) DeclareWithValue(name string, typ ast.Type, value Value) *Slot {
	slot := &Slot{Type: typ, Value: value}
	if arr, ok := value.(*ArrayValue); ok {
		slot.Dims = arr.Dims
	}
	if _, exists := e.slots[name]; !exists {
		e.order = append(e.order, name)
	}
	e.slots[name] = slot
	return slot
}

// Lookup walks the parent chain and returns the slot and the frame that
// owns it, or (nil, nil) if name is not declared anywhere in the chain.
func (e *Environment) Lookup(name string) (*Slot, *Environment) {
	for env := e; env != nil; env = env.parent {
		if slot, ok := env.slots[name]; ok {
			return slot, env
		}
	}
	return nil, nil
}

// Has reports whether name is declared in this frame only (not its
// parents). The parser's bind-time uniqueness checks use their own name
// set and do not call it.
func (e *Environment) Has(name string) bool {
	_, ok := e.slots[name]
	return ok
}

// Binding pairs a name with its slot and the scope tag the debugger
// contract (§4.4) requires: "local" for the current frame, "outer" for
// anything resolved through the parent chain.
type Binding struct {
	Name  string
	Slot  *Slot
	Scope ScopeTag
}

type ScopeTag string

const (
	ScopeLocal ScopeTag = "local"
	ScopeOuter ScopeTag = "outer"
)

// Snapshot returns every name visible from e, tagged local or outer,
// alphabetically within each frame (locals first, then the parent
// chain), for a stable, deterministic ordering a host can render
// without re-sorting itself. This backs the debugger hook's
// env_snapshot (§4.4): a read-only view, never a live reference the
// hook could mutate.
func (e *Environment) Snapshot() []Binding {
	var out []Binding
	seen := make(map[string]bool)
	scope := ScopeLocal
	for env := e; env != nil; env = env.parent {
		names := append([]string(nil), env.order...)
		sort.Strings(names)
		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, Binding{Name: name, Slot: env.slots[name], Scope: scope})
		}
		scope = ScopeOuter
	}
	return out
}
