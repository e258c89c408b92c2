package ast

import (
	"testing"

	"github.com/pljit/pljit/exec"
	"github.com/pljit/pljit/parsetree"
	"github.com/pljit/pljit/source"
)

func build(t *testing.T, src string) *Function {
	t.Helper()
	tree := parsetree.NewParser(source.New(src)).Parse()
	if tree == nil {
		t.Fatalf("parse failed for %q", src)
	}
	fn, d := Build(tree)
	if d != nil {
		t.Fatalf("Build() failed: %s", d.Error())
	}
	return fn
}

func TestEvaluateArithmetic(t *testing.T) {
	fn := build(t, "PARAM a, b; BEGIN RETURN a * b + 1 END.")
	ctx := exec.NewContext(fn.Symbols, []int64{3, 4})
	got, ok := Evaluate(fn, ctx)
	if !ok || got != 13 {
		t.Fatalf("Evaluate() = (%d, %v), want (13, true)", got, ok)
	}
}

func TestEvaluateDivideByZeroTraps(t *testing.T) {
	fn := build(t, "PARAM a; BEGIN RETURN a / 0 END.")
	ctx := exec.NewContext(fn.Symbols, []int64{5})
	_, ok := Evaluate(fn, ctx)
	if ok {
		t.Fatalf("Evaluate() ok = true, want trap on division by zero")
	}
}

func TestEvaluateAssignmentThenReturn(t *testing.T) {
	fn := build(t, "PARAM a; VAR x; BEGIN x := a + 1; RETURN x * 2 END.")
	ctx := exec.NewContext(fn.Symbols, []int64{10})
	got, ok := Evaluate(fn, ctx)
	if !ok || got != 22 {
		t.Fatalf("Evaluate() = (%d, %v), want (22, true)", got, ok)
	}
}

func TestEvaluateUnaryMinus(t *testing.T) {
	fn := build(t, "BEGIN RETURN -5 END.")
	ctx := exec.NewContext(fn.Symbols, nil)
	got, ok := Evaluate(fn, ctx)
	if !ok || got != -5 {
		t.Fatalf("Evaluate() = (%d, %v), want (-5, true)", got, ok)
	}
}

func TestEvaluateRightAssociativeSubtraction(t *testing.T) {
	// a - b - c parses as a - (b - c); with a=10,b=3,c=2 that is 10-(3-2)=9,
	// not (10-3)-2=5.
	fn := build(t, "PARAM a,b,c; BEGIN RETURN a-b-c END.")
	ctx := exec.NewContext(fn.Symbols, []int64{10, 3, 2})
	got, ok := Evaluate(fn, ctx)
	if !ok || got != 9 {
		t.Fatalf("Evaluate() = (%d, %v), want (9, true)", got, ok)
	}
}

func TestEvaluateResultRecordedOnContext(t *testing.T) {
	fn := build(t, "BEGIN RETURN 7 END.")
	ctx := exec.NewContext(fn.Symbols, nil)
	Evaluate(fn, ctx)
	got, ok := ctx.Result()
	if !ok || got != 7 {
		t.Fatalf("ctx.Result() = (%d, %v), want (7, true)", got, ok)
	}
}
