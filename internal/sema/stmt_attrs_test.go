package sema_test

import (
	"testing"

	"karst/internal/ast"
	"karst/internal/diag"
	"karst/internal/lexer"
	"karst/internal/parser"
	"karst/internal/sema"
	"karst/internal/source"
)

func checkSrc(t *testing.T, src string) (*ast.Builder, sema.Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ka", []byte(src))
	bag := diag.NewBag(32)
	builder := ast.NewBuilder(ast.Hints{}, nil)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	parsed := parser.ParseFile(lx, builder, parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("parse diagnostics: %v", bag.Items())
	}
	res := sema.Check(builder, parsed.Stmts, sema.Options{Reporter: &diag.BagReporter{Bag: bag}})
	return builder, res, bag
}

func codesOf(bag *diag.Bag) []diag.Code {
	items := bag.Items()
	codes := make([]diag.Code, 0, len(items))
	for _, d := range items {
		codes = append(codes, d.Code)
	}
	return codes
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

// attributedChild unwraps one attributed node, failing if id is anything else.
func attributedChild(t *testing.T, builder *ast.Builder, id ast.StmtID) *ast.Stmt {
	t.Helper()
	stmt := builder.Stmts.Get(id)
	if stmt.Kind != ast.StmtAttributed {
		t.Fatalf("kind = %v, want attributed", stmt.Kind)
	}
	return stmt
}

func TestFallthroughValid(t *testing.T) {
	builder, res, bag := checkSrc(t, `
switch (x) {
case 1:
	@fallthrough ;
case 2:
	;
}
`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}

	sw := builder.Stmts.Get(res.Stmts[0])
	block := builder.Stmts.Get(sw.Body)
	case1 := builder.Stmts.Get(block.Items[0])
	marked := attributedChild(t, builder, case1.Body)
	if len(marked.Records) != 1 || marked.Records[0].Kind != ast.RecordFallthrough {
		t.Fatalf("records = %+v", marked.Records)
	}
	if child := builder.Stmts.Get(marked.Body); child.Kind != ast.StmtEmpty {
		t.Fatalf("wrapped child kind = %v, want empty", child.Kind)
	}
}

func TestFallthroughOutsideSwitch(t *testing.T) {
	builder, res, bag := checkSrc(t, "@fallthrough ;")
	if got := codesOf(bag); len(got) != 1 || got[0] != diag.SemaFallthroughOutsideSwitch {
		t.Fatalf("codes = %v", got)
	}
	// The failed attribute binds nothing; the statement stays unwrapped.
	if got := builder.Stmts.Get(res.Stmts[0]).Kind; got != ast.StmtEmpty {
		t.Fatalf("kind = %v, want empty", got)
	}
}

func TestFallthroughWrongTarget(t *testing.T) {
	_, _, bag := checkSrc(t, `
switch (x) {
case 1:
	@fallthrough break;
}
`)
	got := codesOf(bag)
	if len(got) != 1 || got[0] != diag.SemaFallthroughWrongTarget {
		t.Fatalf("codes = %v", got)
	}
	// Target check failed first, so the switch-membership check never ran.
	if countCode(bag, diag.SemaFallthroughOutsideSwitch) != 0 {
		t.Fatal("unexpected outside-switch diagnostic")
	}
}

func TestFallthroughBeforeLabelSuggestsSemicolon(t *testing.T) {
	_, _, bag := checkSrc(t, `
switch (x) {
case 1:
	@fallthrough case 2: ;
}
`)
	if countCode(bag, diag.SemaFallthroughWrongTarget) != 1 {
		t.Fatalf("codes = %v", codesOf(bag))
	}
	if countCode(bag, diag.SemaFallthroughInsertSemi) != 1 {
		t.Fatalf("missing semicolon note, codes = %v", codesOf(bag))
	}
	var note diag.Diagnostic
	for _, d := range bag.Items() {
		if d.Code == diag.SemaFallthroughInsertSemi {
			note = d
		}
	}
	if len(note.Fixes) != 1 || len(note.Fixes[0].Edits) != 1 {
		t.Fatalf("fixes = %+v", note.Fixes)
	}
	edit := note.Fixes[0].Edits[0]
	if edit.NewText != ";" || !edit.Span.Empty() {
		t.Fatalf("edit = %+v, want zero-width ';' insertion", edit)
	}
}

func TestFallthroughInLoopInsideSwitch(t *testing.T) {
	_, _, bag := checkSrc(t, `
switch (x) {
case 1:
	while (n) { @fallthrough ; }
}
`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestLoopHintValid(t *testing.T) {
	builder, res, bag := checkSrc(t, "@loop(unroll, enable) @loop(unroll_count, 4) while (n) ;")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	wrapped := attributedChild(t, builder, res.Stmts[0])
	if len(wrapped.Records) != 2 {
		t.Fatalf("records = %+v", wrapped.Records)
	}
	if r := wrapped.Records[0]; r.Option != ast.LoopHintUnroll || r.Value != 1 {
		t.Errorf("record 0 = %+v", r)
	}
	if r := wrapped.Records[1]; r.Option != ast.LoopHintUnrollCount || r.Value != 4 {
		t.Errorf("record 1 = %+v", r)
	}
	if child := builder.Stmts.Get(wrapped.Body); child.Kind != ast.StmtWhile {
		t.Fatalf("wrapped child kind = %v, want while", child.Kind)
	}
}

func TestLoopHintOnNonLoop(t *testing.T) {
	_, _, bag := checkSrc(t, "@loop(unroll, enable) x;")
	if got := codesOf(bag); len(got) != 1 || got[0] != diag.SemaLoopHintNonLoop {
		t.Fatalf("codes = %v", got)
	}
}

func TestLoopHintUnknownOptionFallsBackToVectorize(t *testing.T) {
	builder, res, bag := checkSrc(t, "@loop(bogus_option, enable) while (n) ;")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	wrapped := attributedChild(t, builder, res.Stmts[0])
	if r := wrapped.Records[0]; r.Option != ast.LoopHintVectorize || r.Value != 1 {
		t.Fatalf("record = %+v, want vectorize enable", r)
	}
}

func TestLoopHintBadKeyword(t *testing.T) {
	_, _, bag := checkSrc(t, "@loop(unroll, maybe) while (n) ;")
	if got := codesOf(bag); len(got) != 1 || got[0] != diag.SemaLoopHintInvalidKeyword {
		t.Fatalf("codes = %v", got)
	}
}

func TestLoopHintNumericValues(t *testing.T) {
	cases := []struct {
		name string
		src  string
		ok   bool
		want int64
	}{
		{"literal", "@loop(vectorize_width, 4) while (n) ;", true, 4},
		{"folded", "@loop(unroll_count, (2 + 2) * 2) while (n) ;", true, 8},
		{"shifted", "@loop(interleave_count, 1 << 3) while (n) ;", true, 8},
		{"zero", "@loop(unroll_count, 0) while (n) ;", false, 0},
		{"negative", "@loop(unroll_count, -2) while (n) ;", false, 0},
		{"nonconstant", "@loop(unroll_count, n) while (n) ;", false, 0},
		{"divzero", "@loop(unroll_count, 4 / 0) while (n) ;", false, 0},
		{"missing", "@loop(unroll_count) while (n) ;", false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			builder, res, bag := checkSrc(t, tc.src)
			if !tc.ok {
				if got := codesOf(bag); len(got) != 1 || got[0] != diag.SemaLoopHintInvalidValue {
					t.Fatalf("codes = %v", got)
				}
				return
			}
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %v", bag.Items())
			}
			wrapped := attributedChild(t, builder, res.Stmts[0])
			if r := wrapped.Records[0]; r.Value != tc.want || !r.Synthesized {
				t.Fatalf("record = %+v, want value %d", r, tc.want)
			}
		})
	}
}

func TestLoopHintDuplicate(t *testing.T) {
	builder, res, bag := checkSrc(t, "@loop(unroll, enable) @loop(unroll, disable) while (n) ;")
	if countCode(bag, diag.SemaLoopHintCompatibility) != 1 {
		t.Fatalf("codes = %v", codesOf(bag))
	}
	if bag.HasErrors() {
		t.Fatal("compatibility findings must stay non-blocking")
	}
	// Both records still bind despite the warning.
	wrapped := attributedChild(t, builder, res.Stmts[0])
	if len(wrapped.Records) != 2 {
		t.Fatalf("records = %+v", wrapped.Records)
	}
}

func TestLoopHintIncompatibleReportedPerRecord(t *testing.T) {
	_, _, bag := checkSrc(t,
		"@loop(vectorize, disable) @loop(vectorize_width, 4) @loop(vectorize_width, 8) while (n) ;")
	// width(4) contradicts the disable; width(8) is both a duplicate and a
	// fresh contradiction, so three findings total.
	if got := countCode(bag, diag.SemaLoopHintCompatibility); got != 3 {
		t.Fatalf("compatibility findings = %d, want 3 (%v)", got, codesOf(bag))
	}
}

func TestLoopHintCategoriesIndependent(t *testing.T) {
	_, _, bag := checkSrc(t,
		"@loop(vectorize, enable) @loop(interleave, enable) @loop(unroll_count, 4) while (n) ;")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestUnknownAttributeWarnsAndUnwraps(t *testing.T) {
	builder, res, bag := checkSrc(t, "@frobnicate while (n) ;")
	if got := codesOf(bag); len(got) != 1 || got[0] != diag.SemaUnknownAttrIgnored {
		t.Fatalf("codes = %v", got)
	}
	if bag.HasErrors() {
		t.Fatal("unknown attributes must only warn")
	}
	if got := builder.Stmts.Get(res.Stmts[0]).Kind; got != ast.StmtWhile {
		t.Fatalf("kind = %v, want while without wrapper", got)
	}
}

func TestUnknownVendorAttributeWarns(t *testing.T) {
	_, _, bag := checkSrc(t, "@[frobnicate] while (n) ;")
	if got := codesOf(bag); len(got) != 1 || got[0] != diag.SemaUnknownVendorAttrIgnored {
		t.Fatalf("codes = %v", got)
	}
}

func TestDeclAttributeOnStatement(t *testing.T) {
	_, _, bag := checkSrc(t, "@pure x;")
	if got := codesOf(bag); len(got) != 1 || got[0] != diag.SemaAttrInvalidOnStmt {
		t.Fatalf("codes = %v", got)
	}
	if !bag.HasErrors() {
		t.Fatal("misplaced declaration attribute must be an error")
	}
}

func TestMixedSurvivorsStillBind(t *testing.T) {
	builder, res, bag := checkSrc(t, "@frobnicate @loop(unroll, enable) while (n) ;")
	if got := codesOf(bag); len(got) != 1 || got[0] != diag.SemaUnknownAttrIgnored {
		t.Fatalf("codes = %v", got)
	}
	wrapped := attributedChild(t, builder, res.Stmts[0])
	if len(wrapped.Records) != 1 || wrapped.Records[0].Option != ast.LoopHintUnroll {
		t.Fatalf("records = %+v", wrapped.Records)
	}
}

func TestUnattributedStatementsPassThrough(t *testing.T) {
	builder, res, bag := checkSrc(t, "let a = 1; while (a) { a; }")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	for i, id := range res.Stmts {
		if builder.Stmts.Get(id).Kind == ast.StmtAttributed {
			t.Fatalf("statement %d unexpectedly wrapped", i)
		}
	}
}
