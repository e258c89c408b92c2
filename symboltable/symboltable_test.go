package symboltable

import (
	"testing"

	"github.com/pljit/pljit/source"
)

func emptyFragment() source.Fragment {
	buf := source.New("x\n")
	return source.NewFragment(buf.Begin(), buf.Begin())
}

func TestInsertPhaseOrder(t *testing.T) {
	st := New()
	p := st.Insert("a", emptyFragment(), Parameter, 0)
	v := st.Insert("b", emptyFragment(), Variable, 0)
	c := st.Insert("density", emptyFragment(), Constant, 2400)

	if p != 0 || v != 1 || c != 2 {
		t.Fatalf("ids = %d,%d,%d, want 0,1,2", p, v, c)
	}
	if st.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", st.Size())
	}
	if st.NumberOfParameters() != 1 || st.NumberOfVariables() != 1 || st.NumberOfConstants() != 1 {
		t.Fatalf("phase counts wrong: %d %d %d", st.NumberOfParameters(), st.NumberOfVariables(), st.NumberOfConstants())
	}
}

func TestParameterAndConstantInitializedOnInsert(t *testing.T) {
	st := New()
	p := st.Insert("a", emptyFragment(), Parameter, 0)
	v := st.Insert("vol", emptyFragment(), Variable, 0)
	c := st.Insert("density", emptyFragment(), Constant, 2400)

	if !st.Get(p).Initialized {
		t.Fatalf("parameter should be initialized on insert")
	}
	if !st.Get(c).Initialized {
		t.Fatalf("constant should be initialized on insert")
	}
	if st.Get(v).Initialized {
		t.Fatalf("variable should not be initialized on insert")
	}
	if st.Get(c).ConstantValue != 2400 {
		t.Fatalf("ConstantValue = %d, want 2400", st.Get(c).ConstantValue)
	}
}

func TestSetInitializedFlipsVariable(t *testing.T) {
	st := New()
	v := st.Insert("x", emptyFragment(), Variable, 0)
	st.SetInitialized(v)
	if !st.Get(v).Initialized {
		t.Fatalf("SetInitialized should flip the flag")
	}
}

func TestFind(t *testing.T) {
	st := New()
	st.Insert("a", emptyFragment(), Parameter, 0)
	id, ok := st.Find("a")
	if !ok || id != 0 {
		t.Fatalf("Find(a) = %d,%v want 0,true", id, ok)
	}
	if _, ok := st.Find("missing"); ok {
		t.Fatalf("Find(missing) should report false")
	}
}

func TestConstantsPartition(t *testing.T) {
	st := New()
	st.Insert("a", emptyFragment(), Parameter, 0)
	st.Insert("vol", emptyFragment(), Variable, 0)
	st.Insert("density", emptyFragment(), Constant, 2400)
	st.Insert("gravity", emptyFragment(), Constant, 98)

	constants := st.Constants()
	if len(constants) != 2 {
		t.Fatalf("Constants() len = %d, want 2", len(constants))
	}
	if constants[0].Name != "density" || constants[1].Name != "gravity" {
		t.Fatalf("Constants() order wrong: %+v", constants)
	}
}

func TestInsertOutOfPhaseOrderPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on out-of-order insert")
		}
	}()
	st := New()
	st.Insert("v", emptyFragment(), Variable, 0)
	st.Insert("p", emptyFragment(), Parameter, 0)
}
