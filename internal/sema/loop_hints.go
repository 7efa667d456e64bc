package sema

import (
	"karst/internal/ast"
	"karst/internal/diag"
	"karst/internal/source"
)

// handleLoopHint validates one @loop(option, value) attribute and resolves
// it into a normalized record. Enable-form options carry 1/0 for
// enable/disable; numeric options carry the folded constant.
func (c *checker) handleLoopHint(id ast.StmtID, attr *ast.Attr) (ast.AttrRecord, bool) {
	stmt := c.builder.Stmts.Get(id)
	if !stmt.IsLoop() {
		c.report(diag.SemaLoopHintNonLoop, stmt.Span.AtStart(),
			"'@loop' attribute is only allowed on for, while and do statements")
		return ast.AttrRecord{}, false
	}

	optName, optSpan, ok := c.loopHintOptionArg(attr)
	if !ok {
		c.report(diag.SemaLoopHintInvalidKeyword, optSpan,
			"'@loop' requires an option identifier as its first argument")
		return ast.AttrRecord{}, false
	}
	option := ast.LoopHintOptionFor(optName)

	var value int64
	if option.IsNumeric() {
		valID, valSpan := c.loopHintValueArg(attr)
		v, constant := c.evalConstExpr(valID)
		if !constant || v < 1 {
			c.report(diag.SemaLoopHintInvalidValue, valSpan,
				"invalid argument to '%s'; expected a positive integer constant", option.Name())
			return ast.AttrRecord{}, false
		}
		value = v
	} else {
		valID, valSpan := c.loopHintValueArg(attr)
		keyword := ""
		if valID.IsValid() {
			if e := c.builder.Exprs.Get(valID); e.Kind == ast.ExprIdent {
				keyword = c.builder.StringsInterner.MustLookup(e.Name)
			}
		}
		switch keyword {
		case "enable":
			value = 1
		case "disable":
			value = 0
		default:
			c.report(diag.SemaLoopHintInvalidKeyword, valSpan,
				"invalid argument to '%s'; expected 'enable' or 'disable'", option.Name())
			return ast.AttrRecord{}, false
		}
	}

	return ast.AttrRecord{
		Kind:          ast.RecordLoopHint,
		Span:          attr.Span,
		SpellingIndex: attr.SpellingIndex,
		Option:        option,
		Value:         value,
		Synthesized:   true,
	}, true
}

// loopHintOptionArg extracts the option identifier from the first argument.
func (c *checker) loopHintOptionArg(attr *ast.Attr) (string, source.Span, bool) {
	if len(attr.Args) == 0 {
		return "", attr.Span, false
	}
	e := c.builder.Exprs.Get(attr.Args[0])
	if e.Kind != ast.ExprIdent {
		return "", e.Span, false
	}
	return c.builder.StringsInterner.MustLookup(e.Name), e.Span, true
}

// loopHintValueArg returns the value argument, or an invalid ID anchored at
// the attribute end when the argument is missing.
func (c *checker) loopHintValueArg(attr *ast.Attr) (ast.ExprID, source.Span) {
	if len(attr.Args) < 2 {
		return ast.NoExprID, attr.Span.AtEnd()
	}
	id := attr.Args[1]
	return id, c.builder.Exprs.Get(id).Span
}
