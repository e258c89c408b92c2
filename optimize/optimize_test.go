package optimize

import (
	"reflect"
	"testing"

	"github.com/pljit/pljit/ast"
	"github.com/pljit/pljit/exec"
	"github.com/pljit/pljit/parsetree"
	"github.com/pljit/pljit/source"
)

func build(t *testing.T, src string) *ast.Function {
	t.Helper()
	tree := parsetree.NewParser(source.New(src)).Parse()
	if tree == nil {
		t.Fatalf("parse failed for %q", src)
	}
	fn, d := ast.Build(tree)
	if d != nil {
		t.Fatalf("Build() failed: %s", d.Error())
	}
	return fn
}

func TestUnaryPlusRemovalDropsLeadingPlus(t *testing.T) {
	fn := build(t, "BEGIN RETURN +5 END.")
	Apply(fn, UnaryPlusRemoval{})
	ret := fn.Statements[0].(*ast.Return)
	if _, ok := ret.Value.(*ast.Literal); !ok {
		t.Fatalf("Value = %T, want *ast.Literal after unary-plus removal", ret.Value)
	}
}

func TestConstantPropagationFoldsArithmetic(t *testing.T) {
	fn := build(t, "BEGIN RETURN 2 * 3 + 4 END.")
	Apply(fn, NewConstantPropagation(fn.Symbols))
	ret := fn.Statements[0].(*ast.Return)
	lit, ok := ret.Value.(*ast.Literal)
	if !ok || lit.Value != 10 {
		t.Fatalf("Value = %+v, want literal 10", ret.Value)
	}
}

func TestConstantPropagationPropagatesThroughVariable(t *testing.T) {
	fn := build(t, "VAR x; BEGIN x := 7; RETURN x + 1 END.")
	Apply(fn, NewConstantPropagation(fn.Symbols))
	ret := fn.Statements[1].(*ast.Return)
	lit, ok := ret.Value.(*ast.Literal)
	if !ok || lit.Value != 8 {
		t.Fatalf("Value = %+v, want literal 8", ret.Value)
	}
}

func TestConstantPropagationDoesNotFoldDivByZero(t *testing.T) {
	fn := build(t, "BEGIN RETURN 1 / 0 END.")
	Apply(fn, NewConstantPropagation(fn.Symbols))
	ret := fn.Statements[0].(*ast.Return)
	if _, ok := ret.Value.(*ast.Literal); ok {
		t.Fatalf("Value folded to a literal, want the division left intact for a runtime trap")
	}
	ctx := exec.NewContext(fn.Symbols, nil)
	if _, ok := ast.Evaluate(fn, ctx); ok {
		t.Fatalf("Evaluate() ok = true, want trap")
	}
}

func TestConstantPropagationSeedsDeclaredConstants(t *testing.T) {
	fn := build(t, "CONST k = 9; BEGIN RETURN k * 2 END.")
	Apply(fn, NewConstantPropagation(fn.Symbols))
	ret := fn.Statements[0].(*ast.Return)
	lit, ok := ret.Value.(*ast.Literal)
	if !ok || lit.Value != 18 {
		t.Fatalf("Value = %+v, want literal 18", ret.Value)
	}
}

func TestConstantPropagationInvalidatesOnNonConstantAssignment(t *testing.T) {
	fn := build(t, "PARAM a; VAR x; BEGIN x := 7; x := a; RETURN x END.")
	Apply(fn, NewConstantPropagation(fn.Symbols))
	ret := fn.Statements[2].(*ast.Return)
	if _, ok := ret.Value.(*ast.Literal); ok {
		t.Fatalf("Value folded to a literal, want identifier read of a now-unknown variable")
	}
}

func TestUnaryPlusRemovalIsIdempotent(t *testing.T) {
	const src = "PARAM a; BEGIN RETURN +(+a) + 2 END."
	once := build(t, src)
	Apply(once, UnaryPlusRemoval{})

	twice := build(t, src)
	Apply(twice, UnaryPlusRemoval{})
	Apply(twice, UnaryPlusRemoval{})

	if !reflect.DeepEqual(once.Statements, twice.Statements) {
		t.Fatalf("second application changed the tree")
	}
}

func TestConstantPropagationIsIdempotent(t *testing.T) {
	const src = "PARAM a; VAR x; BEGIN x := 3 * 4; RETURN x + a END."
	once := build(t, src)
	Apply(once, NewConstantPropagation(once.Symbols))

	twice := build(t, src)
	Apply(twice, NewConstantPropagation(twice.Symbols))
	Apply(twice, NewConstantPropagation(twice.Symbols))

	if !reflect.DeepEqual(once.Statements, twice.Statements) {
		t.Fatalf("second application changed the tree")
	}
}

func TestConstantPropagationMatchesHandFoldedProgram(t *testing.T) {
	optimized := build(t, "PARAM w; VAR volume,some; CONST density = 10; BEGIN volume := density; some := volume + 10; RETURN density*volume END.")
	Apply(optimized, UnaryPlusRemoval{})
	Apply(optimized, NewConstantPropagation(optimized.Symbols))

	expected := build(t, "PARAM w; VAR volume,some; CONST density = 10; BEGIN volume := 10; some := 20; RETURN 100 END.")
	Apply(expected, UnaryPlusRemoval{})

	if !reflect.DeepEqual(optimized.Statements, expected.Statements) {
		t.Fatalf("optimized statements differ from the hand-folded program:\n%#v\nvs\n%#v",
			optimized.Statements, expected.Statements)
	}
}

func TestOptimizedTreeEvaluatesLikeUnoptimized(t *testing.T) {
	const src = "PARAM w,h,d; VAR volume,some; CONST density = 2400; BEGIN volume := w*h*d; some := volume + w*10 + h; RETURN density*volume END."
	args := []int64{10, 10, 10}

	plain := build(t, src)
	plainCtx := exec.NewContext(plain.Symbols, args)
	want, ok := ast.Evaluate(plain, plainCtx)
	if !ok {
		t.Fatalf("unoptimized evaluation failed")
	}

	opt := build(t, src)
	Apply(opt, UnaryPlusRemoval{})
	Apply(opt, NewConstantPropagation(opt.Symbols))
	EliminateDeadCode(opt)
	optCtx := exec.NewContext(opt.Symbols, args)
	got, ok := ast.Evaluate(opt, optCtx)
	if !ok || got != want {
		t.Fatalf("optimized evaluation = (%d, %v), want (%d, true)", got, ok, want)
	}
	if want != 2400000 {
		t.Fatalf("result = %d, want 2400000", want)
	}
}

func TestEliminateDeadCodeMatchesProgramWithoutTrailingStatements(t *testing.T) {
	withDead := build(t, "PARAM w,h,d; VAR volume,some; CONST density = 2400; BEGIN volume := w*h*d; some := volume + w*10 + h; RETURN density*volume; some := 0 END.")
	EliminateDeadCode(withDead)

	want := build(t, "PARAM w,h,d; VAR volume,some; CONST density = 2400; BEGIN volume := w*h*d; some := volume + w*10 + h; RETURN density*volume END.")

	if !reflect.DeepEqual(withDead.Statements, want.Statements) {
		t.Fatalf("statements after dead-code elimination differ from the program without trailing statements:\n%#v\nvs\n%#v",
			withDead.Statements, want.Statements)
	}
}

func TestEliminateDeadCodeTruncatesAfterReturn(t *testing.T) {
	fn := &ast.Function{Statements: []ast.Statement{
		&ast.Return{Value: &ast.Literal{Value: 1}},
		&ast.Return{Value: &ast.Literal{Value: 2}},
	}}
	EliminateDeadCode(fn)
	if len(fn.Statements) != 1 {
		t.Fatalf("len(Statements) = %d, want 1", len(fn.Statements))
	}
}
