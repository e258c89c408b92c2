// Package exec holds the runtime state a compiled function evaluates
// against: one dense slot per declared symbol, plus the most recent
// return value.
package exec

import (
	"fmt"

	"github.com/pljit/pljit/symboltable"
)

// Context is the dense slot vector a function body reads and writes
// while it runs. Slots are indexed by symboltable.ID, so the vector's
// length equals the symbol table's size and every identifier lookup
// is a plain slice index, no map involved.
type Context struct {
	slots     []int64
	result    int64
	hasResult bool
}

// NewContext builds a Context for symbols, seeding parameter slots from
// args (in declaration order) and constant slots from their declared
// values. Variable slots start at zero. len(args) must equal the number
// of declared parameters; a mismatch is a programming error on the
// caller's side, not a runtime failure of the program, so it panics.
func NewContext(symbols *symboltable.SymbolTable, args []int64) *Context {
	if len(args) != symbols.NumberOfParameters() {
		panic(fmt.Sprintf("exec: got %d arguments for a function with %d parameters",
			len(args), symbols.NumberOfParameters()))
	}
	ctx := &Context{slots: make([]int64, symbols.Size())}
	for _, sym := range symbols.All() {
		switch sym.Kind {
		case symboltable.Parameter:
			ctx.slots[sym.ID] = args[sym.ID]
		case symboltable.Constant:
			ctx.slots[sym.ID] = sym.ConstantValue
		}
	}
	return ctx
}

// Get reads the current value of a symbol's slot.
func (c *Context) Get(id symboltable.ID) int64 {
	return c.slots[id]
}

// Set writes a symbol's slot.
func (c *Context) Set(id symboltable.ID, value int64) {
	c.slots[id] = value
}

// SetResult records value as the function's return value.
func (c *Context) SetResult(value int64) {
	c.result = value
	c.hasResult = true
}

// Result reports the most recently recorded return value, if any.
func (c *Context) Result() (int64, bool) {
	return c.result, c.hasResult
}
