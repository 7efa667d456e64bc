package fix

import (
	"testing"

	"karst/internal/source"
)

func TestInsertText(t *testing.T) {
	at := source.Span{File: 1, Start: 12, End: 12}
	f := InsertText("insert ';'", at, ";", "")

	if f.Title != "insert ';'" {
		t.Errorf("Title = %q", f.Title)
	}
	if len(f.Edits) != 1 {
		t.Fatalf("expected one edit, got %d", len(f.Edits))
	}
	e := f.Edits[0]
	if !e.Span.Empty() || e.NewText != ";" || e.OldText != "" {
		t.Errorf("edit = %+v", e)
	}
}

func TestReplaceAndDelete(t *testing.T) {
	sp := source.Span{File: 1, Start: 4, End: 10}

	r := ReplaceSpan("swap keyword", sp, "enable", "disable")
	if r.Edits[0].NewText != "enable" || r.Edits[0].OldText != "disable" {
		t.Errorf("replace edit = %+v", r.Edits[0])
	}

	d := DeleteSpan("drop attribute", sp, "@loop")
	if d.Edits[0].NewText != "" || d.Edits[0].OldText != "@loop" {
		t.Errorf("delete edit = %+v", d.Edits[0])
	}
}
