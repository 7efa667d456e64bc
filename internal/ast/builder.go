package ast

import (
	"karst/internal/source"
)

// Hints pre-size the builder arenas.
type Hints struct {
	Stmts uint
	Exprs uint
	Attrs uint
}

// Builder groups the arenas and the interner for one parse.
type Builder struct {
	Stmts           *Stmts
	Exprs           *Exprs
	Attrs           *Attrs
	StringsInterner *source.Interner
}

// NewBuilder constructs a Builder; a nil interner gets a fresh one.
func NewBuilder(hints Hints, interner *source.Interner) *Builder {
	if interner == nil {
		interner = source.NewInterner()
	}
	return &Builder{
		Stmts:           NewStmts(hints.Stmts),
		Exprs:           NewExprs(hints.Exprs),
		Attrs:           NewAttrs(hints.Attrs),
		StringsInterner: interner,
	}
}
