package diag

import (
	"karst/internal/source"
)

// Note is a secondary message attached to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit is a single source edit: replace the bytes covered by Span with
// NewText. A zero-width span inserts. OldText, when non-empty, is a guard:
// appliers must verify the current bytes match before editing.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// Fix is a suggested source change attached to a diagnostic.
type Fix struct {
	Title string
	Edits []TextEdit
}

// Diagnostic is one report: severity, code, primary location, message and
// optional notes and fix suggestions.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...TextEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}
