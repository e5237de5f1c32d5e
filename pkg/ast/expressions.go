package ast

import "github.com/glossa-lang/glossa/pkg/token"

type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	Value int64
}

func NewIntegerLiteral(value int64, line int) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLit, line), Value: value}
}

type RealLiteral struct {
	nodeImpl
	expressionMarker
	Value float64
}

func NewRealLiteral(value float64, line int) *RealLiteral {
	return &RealLiteral{nodeImpl: newNodeImpl(NodeRealLit, line), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	Value string
}

func NewStringLiteral(value string, line int) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLit, line), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	Value bool
}

func NewBooleanLiteral(value bool, line int) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLit, line), Value: value}
}

// VariableRef is a bare identifier used as an expression.
type VariableRef struct {
	nodeImpl
	expressionMarker
	Name string
}

func NewVariableRef(name string, line int) *VariableRef {
	return &VariableRef{nodeImpl: newNodeImpl(NodeVariableRef, line), Name: name}
}

// IndexedRef is `name[i]` or `name[i, j]` used as an expression.
type IndexedRef struct {
	nodeImpl
	expressionMarker
	Name    string
	Indices []Expression
}

func NewIndexedRef(name string, indices []Expression, line int) *IndexedRef {
	return &IndexedRef{nodeImpl: newNodeImpl(NodeIndexedRef, line), Name: name, Indices: indices}
}

// UnaryExpr is a prefix operator: ΟΧΙ (logical not), or unary + / -.
type UnaryExpr struct {
	nodeImpl
	expressionMarker
	Op      token.Type
	Operand Expression
}

func NewUnaryExpr(op token.Type, operand Expression, line int) *UnaryExpr {
	return &UnaryExpr{nodeImpl: newNodeImpl(NodeUnaryExpr, line), Op: op, Operand: operand}
}

// BinaryExpr is any infix operator at any precedence level (§4.2).
type BinaryExpr struct {
	nodeImpl
	expressionMarker
	Op    token.Type
	Left  Expression
	Right Expression
}

func NewBinaryExpr(op token.Type, left, right Expression, line int) *BinaryExpr {
	return &BinaryExpr{nodeImpl: newNodeImpl(NodeBinaryExpr, line), Op: op, Left: left, Right: right}
}

// FuncCallExpr calls a user function or a built-in (§4.5) for its value.
type FuncCallExpr struct {
	nodeImpl
	expressionMarker
	Name string
	Args []Expression
}

func NewFuncCallExpr(name string, args []Expression, line int) *FuncCallExpr {
	return &FuncCallExpr{nodeImpl: newNodeImpl(NodeFuncCallExpr, line), Name: name, Args: args}
}
