package parser

import (
	"testing"

	"karst/internal/ast"
	"karst/internal/diag"
	"karst/internal/lexer"
	"karst/internal/source"
)

func parseSrc(t *testing.T, src string) (*ast.Builder, Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ka", []byte(src))
	bag := diag.NewBag(16)
	builder := ast.NewBuilder(ast.Hints{}, nil)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	res := ParseFile(lx, builder, Options{Reporter: &diag.BagReporter{Bag: bag}})
	return builder, res, bag
}

func TestParseStatementKinds(t *testing.T) {
	builder, res, bag := parseSrc(t, `
;
{ let x = 1; x; }
for (let i = 0; i; i + 1) ;
for v in xs { v; }
while (n) ;
do ; while (n);
switch (x) { case 1: ; default: ; }
break;
continue;
`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}

	want := []ast.StmtKind{
		ast.StmtEmpty, ast.StmtBlock, ast.StmtFor, ast.StmtForIn,
		ast.StmtWhile, ast.StmtDo, ast.StmtSwitch, ast.StmtBreak, ast.StmtContinue,
	}
	if len(res.Stmts) != len(want) {
		t.Fatalf("statement count = %d, want %d", len(res.Stmts), len(want))
	}
	for i, id := range res.Stmts {
		if got := builder.Stmts.Get(id).Kind; got != want[i] {
			t.Errorf("stmt %d kind = %v, want %v", i, got, want[i])
		}
	}
}

func TestParseAttrPrefix(t *testing.T) {
	builder, res, bag := parseSrc(t, "@loop(unroll, enable) @loop(unroll_count, 4) while (n) ;")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(res.Stmts) != 1 {
		t.Fatalf("expected one statement, got %d", len(res.Stmts))
	}

	stmt := builder.Stmts.Get(res.Stmts[0])
	if stmt.Kind != ast.StmtWhile {
		t.Fatalf("kind = %v, want while", stmt.Kind)
	}
	if stmt.AttrCount != 2 {
		t.Fatalf("attr count = %d, want 2", stmt.AttrCount)
	}

	attrs := builder.Attrs.Collect(stmt.AttrStart, stmt.AttrCount)
	if name := builder.StringsInterner.MustLookup(attrs[0].Name); name != "loop" {
		t.Errorf("attr 0 name = %q", name)
	}
	if len(attrs[0].Args) != 2 || len(attrs[1].Args) != 2 {
		t.Fatalf("attr args = %d/%d, want 2/2", len(attrs[0].Args), len(attrs[1].Args))
	}

	opt := builder.Exprs.Get(attrs[0].Args[0])
	if opt.Kind != ast.ExprIdent || builder.StringsInterner.MustLookup(opt.Name) != "unroll" {
		t.Errorf("attr 0 option arg wrong: %+v", opt)
	}
	val := builder.Exprs.Get(attrs[1].Args[1])
	if val.Kind != ast.ExprIntLit || val.Int != 4 {
		t.Errorf("attr 1 value arg wrong: %+v", val)
	}
}

func TestParseVendorSpelling(t *testing.T) {
	builder, res, bag := parseSrc(t, "@[frobnicate] ;")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	stmt := builder.Stmts.Get(res.Stmts[0])
	attrs := builder.Attrs.Collect(stmt.AttrStart, stmt.AttrCount)
	if len(attrs) != 1 {
		t.Fatalf("expected one attribute")
	}
	if attrs[0].SpellingIndex != ast.SpellingVendor {
		t.Errorf("spelling index = %d, want vendor", attrs[0].SpellingIndex)
	}
}

func TestParseCaseWithoutBody(t *testing.T) {
	builder, res, bag := parseSrc(t, "switch (x) { case 1: case 2: ; }")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	sw := builder.Stmts.Get(res.Stmts[0])
	block := builder.Stmts.Get(sw.Body)
	if len(block.Items) != 2 {
		t.Fatalf("switch body items = %d, want 2", len(block.Items))
	}
	first := builder.Stmts.Get(block.Items[0])
	if first.Kind != ast.StmtCase || first.Body.IsValid() {
		t.Errorf("first label should have no body: %+v", first)
	}
	second := builder.Stmts.Get(block.Items[1])
	if second.Kind != ast.StmtCase || !second.Body.IsValid() {
		t.Errorf("second label should cover the empty statement: %+v", second)
	}
}

func TestParseExprPrecedence(t *testing.T) {
	builder, res, bag := parseSrc(t, "1 + 2 * 3 << 4;")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	root := builder.Exprs.Get(builder.Stmts.Get(res.Stmts[0]).Cond)
	if root.Kind != ast.ExprBinary || root.Bin != ast.BinShl {
		t.Fatalf("root should be shift, got %+v", root)
	}
	left := builder.Exprs.Get(root.X)
	if left.Kind != ast.ExprBinary || left.Bin != ast.BinAdd {
		t.Fatalf("shift lhs should be addition, got %+v", left)
	}
}

func TestParseRecovery(t *testing.T) {
	_, res, bag := parseSrc(t, "while ; \n let ok = 1;")
	if bag.Len() == 0 {
		t.Fatal("expected syntax diagnostics")
	}
	// The parser must recover and still deliver the trailing statement.
	if len(res.Stmts) != 1 {
		t.Fatalf("statements after recovery = %d, want 1", len(res.Stmts))
	}
}
