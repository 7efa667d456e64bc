package ast

import (
	"karst/internal/source"
)

type ExprKind uint8

const (
	ExprIntLit ExprKind = iota
	ExprIdent
	ExprUnary
	ExprBinary
	ExprParen
)

type UnOp uint8

const (
	UnNeg UnOp = iota
	UnPlus
)

type BinOp uint8

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
	BinRem
	BinShl
	BinShr
)

// Expr is a flat expression node; the fields used depend on Kind.
type Expr struct {
	Kind ExprKind
	Span source.Span
	Int  int64           // ExprIntLit
	Name source.StringID // ExprIdent
	Un   UnOp            // ExprUnary
	Bin  BinOp           // ExprBinary
	X    ExprID          // unary/paren operand, binary lhs
	Y    ExprID          // binary rhs
}

type Exprs struct {
	Arena *Arena[Expr]
}

func NewExprs(capHint uint) *Exprs {
	return &Exprs{Arena: NewArena[Expr](capHint)}
}

func (e *Exprs) NewIntLit(span source.Span, value int64) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprIntLit, Span: span, Int: value}))
}

func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprIdent, Span: span, Name: name}))
}

func (e *Exprs) NewUnary(span source.Span, op UnOp, x ExprID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprUnary, Span: span, Un: op, X: x}))
}

func (e *Exprs) NewBinary(span source.Span, op BinOp, x, y ExprID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprBinary, Span: span, Bin: op, X: x, Y: y}))
}

func (e *Exprs) NewParen(span source.Span, x ExprID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprParen, Span: span, X: x}))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}
