package sema

import (
	"karst/internal/ast"
	"karst/internal/diag"
)

// categoryState tracks both directive forms seen so far for one hint
// category of a single attribute list.
type categoryState struct {
	enabledIsSet bool
	enabled      bool
	valueIsSet   bool
	value        int64
}

// checkLoopHintCompatibility scans the validated records of one attribute
// list for duplicate and contradictory loop hints. Consistency is
// re-evaluated after every record, so a contradiction repeated by later
// records is reported again each time; all records stay bound regardless.
func (c *checker) checkLoopHintCompatibility(records []ast.AttrRecord) {
	var states [ast.NumLoopHintCategories]categoryState

	for i := range records {
		rec := &records[i]
		if rec.Kind != ast.RecordLoopHint {
			continue
		}
		cat := rec.Option.Category()
		state := &states[cat]
		at := rec.Span.AtEnd()

		if rec.Option.IsNumeric() {
			if state.valueIsSet {
				c.warn(diag.SemaLoopHintCompatibility, at,
					"duplicate loop hint directives '%s(%d)' and '%s(%d)'",
					rec.Option.Name(), state.value, rec.Option.Name(), rec.Value)
			}
			state.valueIsSet = true
			state.value = rec.Value
		} else {
			if state.enabledIsSet {
				var prev int64
				if state.enabled {
					prev = 1
				}
				c.warn(diag.SemaLoopHintCompatibility, at,
					"duplicate loop hint directives '%s(%s)' and '%s(%s)'",
					rec.Option.Name(), ast.LoopHintValueName(prev),
					rec.Option.Name(), ast.LoopHintValueName(rec.Value))
			}
			state.enabledIsSet = true
			state.enabled = rec.Value != 0
		}

		if state.enabledIsSet && !state.enabled && state.valueIsSet {
			c.warn(diag.SemaLoopHintCompatibility, at,
				"incompatible loop hint directives '%s(disable)' and '%s(%d)'",
				cat.EnableOption().Name(), cat.NumericOption().Name(), state.value)
		}
	}
}
