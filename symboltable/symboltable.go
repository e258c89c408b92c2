// Package symboltable implements the ordered, phase-partitioned symbol
// table: all Parameters, then all Variables, then all Constants,
// insertion order doubling as the symbol id.
package symboltable

import "github.com/pljit/pljit/source"

// SymbolKind distinguishes the three declaration phases.
type SymbolKind int

const (
	Parameter SymbolKind = iota
	Variable
	Constant
)

func (k SymbolKind) String() string {
	switch k {
	case Parameter:
		return "parameter"
	case Variable:
		return "variable"
	case Constant:
		return "constant"
	default:
		return "symbol"
	}
}

// ID is the insertion-order index of a symbol, used everywhere in the
// AST instead of names.
type ID int

// Symbol is one declared name.
type Symbol struct {
	Name                string
	DeclarationFragment source.Fragment
	Kind                SymbolKind
	ID                  ID
	Initialized         bool
	ConstantValue       int64 // meaningful only when Kind == Constant
}

// SymbolTable is the ordered list of declared symbols, partitioned
// Parameters -> Variables -> Constants.
type SymbolTable struct {
	symbols []Symbol
	byName  map[string]ID

	lastKind   SymbolKind
	sawAnyKind bool
	numParams  int
	numVars    int
	numConsts  int
}

// New returns an empty SymbolTable.
func New() *SymbolTable {
	return &SymbolTable{byName: make(map[string]ID)}
}

// Insert appends a new symbol of the given kind. Inserts must occur in
// phase order (Parameters, then Variables, then Constants); violating
// that order is a programming error, not a diagnostic, since AST
// creation is the only caller and walks declarations in that order by
// construction.
func (st *SymbolTable) Insert(name string, fragment source.Fragment, kind SymbolKind, constantValue int64) ID {
	if st.sawAnyKind && kind < st.lastKind {
		panic("symboltable: insert out of phase order")
	}
	st.lastKind = kind
	st.sawAnyKind = true

	id := ID(len(st.symbols))
	sym := Symbol{
		Name:                name,
		DeclarationFragment: fragment,
		Kind:                kind,
		ID:                  id,
	}
	switch kind {
	case Parameter:
		sym.Initialized = true
		st.numParams++
	case Variable:
		sym.Initialized = false
		st.numVars++
	case Constant:
		sym.Initialized = true
		sym.ConstantValue = constantValue
		st.numConsts++
	}
	st.symbols = append(st.symbols, sym)
	st.byName[name] = id
	return id
}

// Find looks up a symbol id by name.
func (st *SymbolTable) Find(name string) (ID, bool) {
	id, ok := st.byName[name]
	return id, ok
}

// Get returns a copy of the symbol at id.
func (st *SymbolTable) Get(id ID) Symbol {
	return st.symbols[id]
}

// SetInitialized marks the symbol at id as initialized. This is the one
// mutation the pipeline performs on an existing symbol: flipping a
// Variable's flag on its first assignment during AST creation.
func (st *SymbolTable) SetInitialized(id ID) {
	st.symbols[id].Initialized = true
}

// Size returns the total number of declared symbols.
func (st *SymbolTable) Size() int { return len(st.symbols) }

// NumberOfParameters, NumberOfVariables and NumberOfConstants report the
// size of each phase partition.
func (st *SymbolTable) NumberOfParameters() int { return st.numParams }
func (st *SymbolTable) NumberOfVariables() int  { return st.numVars }
func (st *SymbolTable) NumberOfConstants() int  { return st.numConsts }

// All returns every symbol in insertion order.
func (st *SymbolTable) All() []Symbol {
	return st.symbols
}

// Constants returns just the constant partition, in order, used by the
// execution context to seed constant slots.
func (st *SymbolTable) Constants() []Symbol {
	return st.symbols[st.numParams+st.numVars:]
}
