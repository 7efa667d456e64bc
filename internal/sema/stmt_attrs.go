package sema

import (
	"karst/internal/ast"
	"karst/internal/diag"
)

// processStmtAttributes validates the raw attribute prefix of a statement.
// Every attribute is classified independently; failed attributes produce a
// diagnostic and no record. When at least one record survives, the statement
// is replaced by an attributed wrapper covering the attribute list and the
// statement; with no surviving records the original statement is returned
// unchanged.
func (c *checker) processStmtAttributes(id ast.StmtID) ast.StmtID {
	stmt := c.builder.Stmts.Get(id)
	if stmt.AttrCount == 0 {
		return id
	}
	attrs := c.builder.Attrs.Collect(stmt.AttrStart, stmt.AttrCount)

	records := make([]ast.AttrRecord, 0, len(attrs))
	for i := range attrs {
		if rec, ok := c.processStmtAttribute(id, &attrs[i]); ok {
			records = append(records, rec)
		}
	}
	c.checkLoopHintCompatibility(records)

	if len(records) == 0 {
		return id
	}

	span := attrs[0].Span
	for _, a := range attrs[1:] {
		span = span.Cover(a.Span)
	}
	span = span.Cover(c.builder.Stmts.Get(id).Span)
	return c.builder.Stmts.NewAttributed(span, id, records)
}

// processStmtAttribute classifies one attribute against the statement it
// precedes. Unknown attributes warn and are dropped; known attributes that
// cannot appear on statements are hard errors.
func (c *checker) processStmtAttribute(id ast.StmtID, attr *ast.Attr) (ast.AttrRecord, bool) {
	name := c.builder.StringsInterner.MustLookup(attr.Name)
	spec, known := ast.LookupAttr(name)
	if !known {
		if attr.SpellingIndex == ast.SpellingVendor {
			c.warn(diag.SemaUnknownVendorAttrIgnored, attr.Span,
				"unknown vendor attribute '@[%s]' ignored", name)
		} else {
			c.warn(diag.SemaUnknownAttrIgnored, attr.Span,
				"unknown attribute '@%s' ignored", name)
		}
		return ast.AttrRecord{}, false
	}

	switch spec.Name {
	case "fallthrough":
		return c.handleFallthrough(id, attr)
	case "loop":
		return c.handleLoopHint(id, attr)
	default:
		c.report(diag.SemaAttrInvalidOnStmt, attr.Span,
			"attribute '@%s' cannot be applied to a statement", spec.Name)
		return ast.AttrRecord{}, false
	}
}
