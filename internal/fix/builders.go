// Package fix builds diag.Fix suggestions. The builders only describe edits;
// applying them to source text is the caller's concern.
package fix

import (
	"karst/internal/diag"
	"karst/internal/source"
)

// InsertText creates a fix that inserts text at a zero-width span.
// guard, when non-empty, must match the bytes at the insertion point
// before the edit may be applied.
func InsertText(title string, at source.Span, text string, guard string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.TextEdit{{
			Span:    at,
			NewText: text,
			OldText: guard,
		}},
	}
}

// ReplaceSpan replaces the text covered by span with newText.
// expect, when non-empty, guards against stale spans.
func ReplaceSpan(title string, span source.Span, newText, expect string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.TextEdit{{
			Span:    span,
			NewText: newText,
			OldText: expect,
		}},
	}
}

// DeleteSpan removes the text covered by span.
func DeleteSpan(title string, span source.Span, expect string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.TextEdit{{
			Span:    span,
			NewText: "",
			OldText: expect,
		}},
	}
}
