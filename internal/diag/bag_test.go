package diag

import (
	"testing"

	"karst/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)

	if !bag.Add(NewError(SemaLoopHintNonLoop, span(0, 0, 1), "one")) {
		t.Fatal("first add rejected")
	}
	if !bag.Add(NewError(SemaLoopHintNonLoop, span(0, 1, 2), "two")) {
		t.Fatal("second add rejected")
	}
	if bag.Add(NewError(SemaLoopHintNonLoop, span(0, 2, 3), "three")) {
		t.Fatal("add above capacity must be rejected")
	}
	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
}

func TestBagSeverityQueries(t *testing.T) {
	bag := NewBag(8)
	bag.Add(New(SevInfo, UnknownCode, span(0, 0, 0), "info"))

	if bag.HasWarnings() || bag.HasErrors() {
		t.Fatal("info-only bag must not report warnings or errors")
	}

	bag.Add(New(SevWarning, SemaUnknownAttrIgnored, span(0, 0, 0), "warn"))
	if !bag.HasWarnings() || bag.HasErrors() {
		t.Fatal("expected warnings only")
	}

	bag.Add(NewError(SemaLoopHintInvalidValue, span(0, 0, 0), "err"))
	if !bag.HasErrors() {
		t.Fatal("expected errors")
	}
}

func TestBagSortDeterministic(t *testing.T) {
	bag := NewBag(8)
	bag.Add(New(SevWarning, SemaUnknownAttrIgnored, span(0, 10, 12), "b"))
	bag.Add(NewError(SemaLoopHintNonLoop, span(0, 4, 6), "a"))
	bag.Add(NewError(SemaLoopHintInvalidValue, span(0, 10, 12), "c"))

	bag.Sort()
	items := bag.Items()
	if items[0].Primary.Start != 4 {
		t.Errorf("expected earliest span first, got %v", items[0].Primary)
	}
	// Same span: error sorts before warning.
	if items[1].Severity != SevError || items[2].Severity != SevWarning {
		t.Errorf("severity tie-break broken: %v then %v", items[1].Severity, items[2].Severity)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(8)
	rep := NewDedupReporter(&BagReporter{Bag: bag})

	sp := span(0, 3, 7)
	rep.Report(SemaLoopHintCompatibility, SevError, sp, "same", nil, nil)
	rep.Report(SemaLoopHintCompatibility, SevError, sp, "same", nil, nil)
	rep.Report(SemaLoopHintCompatibility, SevError, sp, "different", nil, nil)

	if bag.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", bag.Len())
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := NewBag(4)
	b := ReportError(&BagReporter{Bag: bag}, SemaFallthroughWrongTarget, span(0, 0, 4), "msg").
		WithNote(span(0, 4, 4), "note here").
		WithFix("insert ';'", TextEdit{Span: span(0, 4, 4), NewText: ";"})

	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || len(d.Fixes) != 1 {
		t.Fatalf("notes/fixes lost: %+v", d)
	}
	if d.Fixes[0].Edits[0].NewText != ";" {
		t.Errorf("fix edit = %+v", d.Fixes[0].Edits[0])
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.ka", []byte("let a;\nfor\n"))

	bag := NewBag(4)
	bag.Add(NewError(SemaLoopHintNonLoop, source.Span{File: id, Start: 7, End: 10}, "loop hint precedes non-loop statement"))
	bag.Sort()

	got := FormatShort(bag.Items(), fs, false)
	want := "ERROR KA3007 x.ka:2:1 loop hint precedes non-loop statement"
	if got != want {
		t.Errorf("FormatShort = %q, want %q", got, want)
	}
}
