package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"karst/internal/diag"
	"karst/internal/source"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	warningLabel = color.New(color.FgYellow, color.Bold)
	infoLabel    = color.New(color.FgCyan)
	positionText = color.New(color.Faint)
)

// printDiagnostics renders one file's sorted diagnostics, one per line:
//
//	SEVERITY KAxxxx path:line:col message
func printDiagnostics(w io.Writer, res fileResult, opts checkOptions) {
	for _, d := range res.bag.Items() {
		if opts.noWarnings && d.Severity == diag.SevWarning {
			continue
		}
		printLine(w, res.fs, severityLabel(d.Severity), d.Code.ID(), d.Primary, d.Message)
		if !opts.withNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprint(w, "  ")
			printLine(w, res.fs, infoLabel.Sprint("note"), d.Code.ID(), n.Span, n.Msg)
		}
	}
}

func printLine(w io.Writer, fs *source.FileSet, label, code string, span source.Span, msg string) {
	path := "<unknown>"
	if f := fs.Get(span.File); f != nil {
		path = f.Path
	}
	pos := fs.Position(span.File, span.Start)
	where := positionText.Sprintf("%s:%d:%d", path, pos.Line, pos.Col)
	fmt.Fprintf(w, "%s %s %s %s\n", label, code, where, msg)
}

func severityLabel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return errorLabel.Sprint("error")
	case diag.SevWarning:
		return warningLabel.Sprint("warning")
	case diag.SevInfo:
		return infoLabel.Sprint("note")
	default:
		return sev.String()
	}
}
