package ast

import (
	"karst/internal/source"
)

type StmtKind uint8

const (
	StmtEmpty StmtKind = iota
	StmtBlock
	StmtExpr
	StmtLet
	StmtBreak
	StmtContinue
	StmtFor
	StmtForIn
	StmtWhile
	StmtDo
	StmtSwitch
	StmtCase
	StmtDefault
	StmtAttributed
)

// Stmt is a flat statement node; the fields used depend on Kind.
// Raw attributes parsed in front of the statement are referenced through
// AttrStart/AttrCount until semantic analysis consumes them.
type Stmt struct {
	Kind StmtKind
	Span source.Span

	Cond  ExprID          // loop/switch condition, case value, expr-stmt value, let initializer, for-in iterable
	Init  StmtID          // C-style for initializer
	Post  ExprID          // C-style for step
	Body  StmtID          // loop body, case/default body, attributed child
	Items []StmtID        // block statements
	Name  source.StringID // let binding, for-in binder

	AttrStart AttrID
	AttrCount uint32

	Records []AttrRecord // StmtAttributed only: validated records in syntactic order
}

// IsLoop reports whether the statement kind accepts loop hints.
func (s *Stmt) IsLoop() bool {
	switch s.Kind {
	case StmtFor, StmtForIn, StmtWhile, StmtDo:
		return true
	default:
		return false
	}
}

// IsSwitchLabel reports whether the statement is a case or default label.
func (s *Stmt) IsSwitchLabel() bool {
	return s.Kind == StmtCase || s.Kind == StmtDefault
}

type Stmts struct {
	Arena *Arena[Stmt]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{Arena: NewArena[Stmt](capHint)}
}

func (s *Stmts) alloc(stmt Stmt) StmtID {
	return StmtID(s.Arena.Allocate(stmt))
}

func (s *Stmts) NewEmpty(span source.Span) StmtID {
	return s.alloc(Stmt{Kind: StmtEmpty, Span: span})
}

func (s *Stmts) NewBlock(span source.Span, items []StmtID) StmtID {
	return s.alloc(Stmt{Kind: StmtBlock, Span: span, Items: items})
}

func (s *Stmts) NewExprStmt(span source.Span, value ExprID) StmtID {
	return s.alloc(Stmt{Kind: StmtExpr, Span: span, Cond: value})
}

func (s *Stmts) NewLet(span source.Span, name source.StringID, init ExprID) StmtID {
	return s.alloc(Stmt{Kind: StmtLet, Span: span, Name: name, Cond: init})
}

func (s *Stmts) NewBreak(span source.Span) StmtID {
	return s.alloc(Stmt{Kind: StmtBreak, Span: span})
}

func (s *Stmts) NewContinue(span source.Span) StmtID {
	return s.alloc(Stmt{Kind: StmtContinue, Span: span})
}

func (s *Stmts) NewFor(span source.Span, init StmtID, cond, post ExprID, body StmtID) StmtID {
	return s.alloc(Stmt{Kind: StmtFor, Span: span, Init: init, Cond: cond, Post: post, Body: body})
}

func (s *Stmts) NewForIn(span source.Span, binder source.StringID, iterable ExprID, body StmtID) StmtID {
	return s.alloc(Stmt{Kind: StmtForIn, Span: span, Name: binder, Cond: iterable, Body: body})
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	return s.alloc(Stmt{Kind: StmtWhile, Span: span, Cond: cond, Body: body})
}

func (s *Stmts) NewDo(span source.Span, body StmtID, cond ExprID) StmtID {
	return s.alloc(Stmt{Kind: StmtDo, Span: span, Body: body, Cond: cond})
}

func (s *Stmts) NewSwitch(span source.Span, cond ExprID, body StmtID) StmtID {
	return s.alloc(Stmt{Kind: StmtSwitch, Span: span, Cond: cond, Body: body})
}

func (s *Stmts) NewCase(span source.Span, value ExprID, body StmtID) StmtID {
	return s.alloc(Stmt{Kind: StmtCase, Span: span, Cond: value, Body: body})
}

func (s *Stmts) NewDefault(span source.Span, body StmtID) StmtID {
	return s.alloc(Stmt{Kind: StmtDefault, Span: span, Body: body})
}

// NewAttributed wraps child with its validated attribute records. The node
// span starts at the attribute list, so diagnostics and tooling anchor there.
func (s *Stmts) NewAttributed(span source.Span, child StmtID, records []AttrRecord) StmtID {
	return s.alloc(Stmt{Kind: StmtAttributed, Span: span, Body: child, Records: records})
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// SetAttrs records the raw attribute range parsed before statement id.
func (s *Stmts) SetAttrs(id StmtID, start AttrID, count uint32) {
	if stmt := s.Get(id); stmt != nil {
		stmt.AttrStart = start
		stmt.AttrCount = count
	}
}
