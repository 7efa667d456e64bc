package sema

import (
	"karst/internal/ast"
	"karst/internal/diag"
	"karst/internal/fix"
)

// handleFallthrough validates a @fallthrough marker. The target must be an
// empty statement and the marker must sit inside a switch body; each check
// stops validation on its own, so at most one error is produced per marker.
func (c *checker) handleFallthrough(id ast.StmtID, attr *ast.Attr) (ast.AttrRecord, bool) {
	stmt := c.builder.Stmts.Get(id)
	if stmt.Kind != ast.StmtEmpty {
		diag.ReportError(c.reporter, diag.SemaFallthroughWrongTarget, stmt.Span.AtStart(),
			"'@fallthrough' attribute is only allowed on empty statements").Emit()
		if stmt.IsSwitchLabel() {
			// The writer most likely meant `@fallthrough;` right before this
			// label; offer the missing semicolon at the end of the attribute.
			insertAt := attr.Span.AtEnd()
			diag.NewReportBuilder(c.reporter, diag.SevInfo, diag.SemaFallthroughInsertSemi, insertAt,
				"did you forget ';'?").
				WithFixSuggestion(fix.InsertText("insert ';'", insertAt, ";", "")).
				Emit()
		}
		return ast.AttrRecord{}, false
	}

	if !c.fctx.InSwitch() {
		c.report(diag.SemaFallthroughOutsideSwitch, attr.Span,
			"'@fallthrough' attribute is only allowed inside a switch statement")
		return ast.AttrRecord{}, false
	}

	return ast.AttrRecord{
		Kind:          ast.RecordFallthrough,
		Span:          attr.Span,
		SpellingIndex: attr.SpellingIndex,
	}, true
}
