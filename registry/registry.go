// Package registry is the library's public facade: compile source text
// once per Handle, then call the compiled function any number of times
// concurrently. Parse/analyze/optimize happen lazily on first use and
// are cached behind a sync.Once, while the evaluator runs fresh against
// a new execution context on every call.
package registry

import (
	"fmt"
	"sync"

	"github.com/pljit/pljit/ast"
	"github.com/pljit/pljit/config"
	"github.com/pljit/pljit/diag"
	"github.com/pljit/pljit/exec"
	"github.com/pljit/pljit/optimize"
	"github.com/pljit/pljit/parsetree"
	"github.com/pljit/pljit/source"
)

// Options controls which optimizer passes a Handle runs before its
// first evaluation.
type Options struct {
	EnableUnaryPlusRemoval    bool
	EnableConstantPropagation bool
	EnableDeadCodeElimination bool
}

// DefaultOptions enables every pass, matching config.DefaultConfig.
func DefaultOptions() Options {
	return Options{
		EnableUnaryPlusRemoval:    true,
		EnableConstantPropagation: true,
		EnableDeadCodeElimination: true,
	}
}

// OptionsFromConfig translates a loaded config.Config into registry
// Options, so cmd/pljit can wire a TOML file straight through.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		EnableUnaryPlusRemoval:    cfg.Optimize.EnableUnaryPlusRemoval,
		EnableConstantPropagation: cfg.Optimize.EnableConstantPropagation,
		EnableDeadCodeElimination: cfg.Optimize.EnableDeadCodeElimination,
	}
}

// Handle is one registered source text. Compilation happens at most
// once, on the first Call, Err or NumberOfParameters; every later Call reuses
// the already-built Function.
type Handle struct {
	source  string
	options Options

	once       sync.Once
	fn         *ast.Function
	diagnostic *diag.Diagnostic
}

// Registry holds every Handle ever registered, in registration order.
// It is safe for concurrent Register and concurrent Handle.Call, but
// Handles themselves are never removed; this is a compile cache, not
// an LRU.
type Registry struct {
	mu      sync.Mutex
	options Options
	handles []*Handle
}

// New creates an empty Registry using opts for every future Handle.
func New(opts Options) *Registry {
	return &Registry{options: opts}
}

// Register adds src to the registry and returns a Handle for it.
// Registration never compiles; compilation is deferred to the first
// Call, Err or NumberOfParameters.
func (r *Registry) Register(src string) *Handle {
	h := &Handle{source: src, options: r.options}
	r.mu.Lock()
	r.handles = append(r.handles, h)
	r.mu.Unlock()
	return h
}

// compile runs the lex/parse/semantic-analysis/optimize pipeline exactly
// once per Handle, double-checked via sync.Once so concurrent first
// callers all block on the same compilation instead of racing it.
func (h *Handle) compile() {
	h.once.Do(func() {
		tree := parsetree.NewParser(source.New(h.source))
		root := tree.Parse()
		if root == nil {
			h.diagnostic = tree.Errors()
			return
		}

		fn, d := ast.Build(root)
		if d != nil {
			h.diagnostic = d
			return
		}

		if h.options.EnableUnaryPlusRemoval {
			optimize.Apply(fn, optimize.UnaryPlusRemoval{})
		}
		if h.options.EnableConstantPropagation {
			optimize.Apply(fn, optimize.NewConstantPropagation(fn.Symbols))
		}
		if h.options.EnableDeadCodeElimination {
			optimize.EliminateDeadCode(fn)
		}

		h.fn = fn
	})
}

// Err forces compilation (if it hasn't happened yet) and reports any
// compile-time diagnostic, so a caller can validate source without
// calling it.
func (h *Handle) Err() *diag.Diagnostic {
	h.compile()
	return h.diagnostic
}

// NumberOfParameters reports how many parameters the compiled function
// declares. It forces compilation; callers that only need parameter
// count but not a value should still check Err first.
func (h *Handle) NumberOfParameters() int {
	h.compile()
	if h.fn == nil {
		return 0
	}
	return h.fn.Symbols.NumberOfParameters()
}

// Call compiles h if needed, then evaluates it against args. A false
// second return covers both compile-time failure (see Err) and a
// runtime trap (division by zero); callers that need to distinguish the
// two should check Err first. len(args) must equal the function's
// declared parameter count; a mismatch is a programming error and
// panics rather than reporting a compilation failure.
func (h *Handle) Call(args []int64) (int64, bool) {
	h.compile()
	if h.fn == nil {
		return 0, false
	}
	ctx := exec.NewContext(h.fn.Symbols, args)
	return ast.Evaluate(h.fn, ctx)
}

// MustRegister registers src and panics if it fails to compile. Intended
// for call sites that embed known-good source text, such as tests.
func MustRegister(r *Registry, src string) *Handle {
	h := r.Register(src)
	if d := h.Err(); d != nil {
		panic(fmt.Sprintf("registry: MustRegister: %s", d.String()))
	}
	return h
}
