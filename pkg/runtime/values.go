// Package runtime holds the typed runtime values and the lexical
// environment the tree-walking interpreter in pkg/interp operates on.
package runtime

import (
	"fmt"

	"github.com/glossa-lang/glossa/pkg/ast"
)

// Kind identifies the runtime category of a Value, mirroring the type
// tag union in §3 plus the array/range-free aggregate ΓΛΩΣΣΑ supports.
type Kind int

const (
	KindInteger Kind = iota
	KindReal
	KindString
	KindBoolean
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behavior of every runtime value.
type Value interface {
	Kind() Kind
}

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type RealValue struct {
	Val float64
}

func (v RealValue) Kind() Kind { return KindReal }

// StringValue backs both the CHARACTER type (§3: "CHARACTER accepts
// string only") and ΓΛΩΣΣΑ's string literals; there is no separate
// single-character rune type in the source language.
type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BooleanValue struct {
	Val bool
}

func (v BooleanValue) Kind() Kind { return KindBoolean }

// ArrayValue is a rectangular 1-D or 2-D grid of one element type, stored
// row-major in a flat backing slice. Dims holds the declared upper
// bound(s) (1-based, inclusive).
type ArrayValue struct {
	ElemType ast.Type
	Dims     []int
	Data     []Value
}

// NewArrayValue allocates an array with every cell set to the element
// type's default value (§3).
func NewArrayValue(elemType ast.Type, dims []int) *ArrayValue {
	size := 1
	for _, d := range dims {
		size *= d
	}
	data := make([]Value, size)
	for i := range data {
		data[i] = DefaultValue(elemType)
	}
	return &ArrayValue{ElemType: elemType, Dims: append([]int(nil), dims...), Data: data}
}

func (v *ArrayValue) Kind() Kind { return KindArray }

// Clone performs a deep copy, used at argument-binding time so procedure
// and function calls never alias the caller's array (§9: "Arrays are
// values").
func (v *ArrayValue) Clone() *ArrayValue {
	data := make([]Value, len(v.Data))
	copy(data, v.Data)
	return &ArrayValue{ElemType: v.ElemType, Dims: append([]int(nil), v.Dims...), Data: data}
}

// offset converts 1-based indices into a flat backing-slice offset,
// reporting whether every index was in bounds.
func (v *ArrayValue) offset(indices []int) (int, bool) {
	if len(indices) != len(v.Dims) {
		return 0, false
	}
	off := 0
	for i, idx := range indices {
		if idx < 1 || idx > v.Dims[i] {
			return 0, false
		}
		off = off*v.Dims[i] + (idx - 1)
	}
	return off, true
}

// Get returns the element at the given 1-based indices.
func (v *ArrayValue) Get(indices []int) (Value, bool) {
	off, ok := v.offset(indices)
	if !ok {
		return nil, false
	}
	return v.Data[off], true
}

// Set stores val at the given 1-based indices.
func (v *ArrayValue) Set(indices []int, val Value) bool {
	off, ok := v.offset(indices)
	if !ok {
		return false
	}
	v.Data[off] = val
	return true
}

// DefaultValue returns the zero value for a declared type (§3).
func DefaultValue(t ast.Type) Value {
	switch t {
	case ast.Integer:
		return IntegerValue{Val: 0}
	case ast.Real:
		return RealValue{Val: 0.0}
	case ast.Character:
		return StringValue{Val: ""}
	case ast.Boolean:
		return BooleanValue{Val: false}
	default:
		return NilValue{}
	}
}

// NilValue is never produced by a well-typed program; it exists only so
// DefaultValue has a total return for an unrecognized type tag, which the
// interpreter treats as an internal invariant violation if ever observed.
type NilValue struct{}

func (NilValue) Kind() Kind { return -1 }
