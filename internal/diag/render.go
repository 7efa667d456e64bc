package diag

import (
	"fmt"
	"strings"

	"karst/internal/source"
)

// FormatShort renders diagnostics one per line in a stable form:
//
//	SEVERITY KAxxxx path:line:col message
//
// Diagnostics are expected to be pre-sorted (Bag.Sort). Notes, when
// requested, follow their parent indented with "note:".
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeLine(&b, fs, d.Severity.String(), d.Code.ID(), d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			b.WriteByte('\n')
			b.WriteString("  ")
			writeLine(&b, fs, "note", d.Code.ID(), n.Span, n.Msg)
		}
	}
	return b.String()
}

func writeLine(b *strings.Builder, fs *source.FileSet, label, code string, span source.Span, msg string) {
	path := "<unknown>"
	if f := fs.Get(span.File); f != nil {
		path = f.Path
	}
	pos := fs.Position(span.File, span.Start)
	fmt.Fprintf(b, "%s %s %s:%d:%d %s", label, code, path, pos.Line, pos.Col, msg)
}
