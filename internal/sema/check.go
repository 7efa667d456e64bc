// Package sema validates statement-level attributes and records them on the
// syntax tree: the @fallthrough marker and @loop transformation hints.
// Malformed attributes yield diagnostics and no record; analysis always
// continues with the next attribute and the next statement.
package sema

import (
	"fmt"

	"karst/internal/ast"
	"karst/internal/diag"
	"karst/internal/source"
)

// Options configure a semantic pass over a file.
type Options struct {
	Reporter diag.Reporter
}

// Result stores semantic artefacts produced by the checker. Stmts mirrors
// the input statement list with attributed wrappers substituted in place of
// statements that carried validated attributes.
type Result struct {
	Stmts []ast.StmtID
}

// Check runs statement-attribute analysis over the given top-level
// statements.
func Check(builder *ast.Builder, stmts []ast.StmtID, opts Options) Result {
	res := Result{
		Stmts: make([]ast.StmtID, 0, len(stmts)),
	}
	if builder == nil {
		return res
	}

	c := checker{
		builder:  builder,
		reporter: opts.Reporter,
		fctx:     &FuncContext{},
	}
	for _, id := range stmts {
		res.Stmts = append(res.Stmts, c.checkStmt(id))
	}
	return res
}

type checker struct {
	builder  *ast.Builder
	reporter diag.Reporter
	fctx     *FuncContext
}

// checkStmt walks one statement, maintaining the switch stack, and returns
// the statement that should replace id in its parent (the same id, or an
// attributed wrapper).
func (c *checker) checkStmt(id ast.StmtID) ast.StmtID {
	if !id.IsValid() {
		return id
	}

	// Children may allocate nodes and shift the arena; re-fetch the parent
	// for every write instead of holding a pointer across recursion.
	switch c.builder.Stmts.Get(id).Kind {
	case ast.StmtBlock:
		items := c.builder.Stmts.Get(id).Items
		for i, kid := range items {
			items[i] = c.checkStmt(kid)
		}
	case ast.StmtSwitch:
		c.fctx.PushSwitch(id)
		body := c.checkStmt(c.builder.Stmts.Get(id).Body)
		c.builder.Stmts.Get(id).Body = body
		c.fctx.PopSwitch()
	case ast.StmtFor:
		init := c.checkStmt(c.builder.Stmts.Get(id).Init)
		c.builder.Stmts.Get(id).Init = init
		body := c.checkStmt(c.builder.Stmts.Get(id).Body)
		c.builder.Stmts.Get(id).Body = body
	case ast.StmtForIn, ast.StmtWhile, ast.StmtDo, ast.StmtCase, ast.StmtDefault:
		body := c.checkStmt(c.builder.Stmts.Get(id).Body)
		c.builder.Stmts.Get(id).Body = body
	}

	return c.processStmtAttributes(id)
}

func (c *checker) report(code diag.Code, span source.Span, format string, args ...any) {
	if c.reporter == nil {
		return
	}
	c.reporter.Report(code, diag.SevError, span, fmt.Sprintf(format, args...), nil, nil)
}

func (c *checker) warn(code diag.Code, span source.Span, format string, args ...any) {
	if c.reporter == nil {
		return
	}
	c.reporter.Report(code, diag.SevWarning, span, fmt.Sprintf(format, args...), nil, nil)
}
