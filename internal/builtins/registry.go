// Package builtins implements MiniDyn's built-in registry (spec.md
// §4.H): the host-provided operations exposed as callables under fixed
// names — I/O, numeric/array/object combinators, JSON, regex, date/time,
// crypto, UUID, filesystem, path, environment, and HTTP (disabled).
//
// Grounded on the teacher's own built-in-registration shape: a Registry
// mapping name to a FunctionInfo carrying the function, its category, and
// its arity range, looked up case-sensitively at call time.
package builtins

import (
	"bufio"
	"io"

	"github.com/minidyn/minidyn/internal/token"
	"github.com/minidyn/minidyn/internal/value"
)

// Invoker calls back into a resolved callable with purely positional
// arguments. Higher-order built-ins (map/filter/reduce/sort) need this to
// invoke the user-supplied function; everything else only consumes
// values directly, per spec.md §4.H ("never receive named arguments").
type Invoker interface {
	InvokePositional(callee value.Callable, args []value.Value, pos token.Position) (value.Value, error)
}

// FunctionInfo describes one registered built-in.
type FunctionInfo struct {
	Name        string
	Func        value.BuiltinFunc
	Category    string
	ArityMin    int
	ArityMax    int // -1 means unbounded
	Description string
}

// Registry holds every built-in under its name, preserving registration
// order for Names().
type Registry struct {
	entries map[string]FunctionInfo
	order   []string

	inv Invoker
	out io.Writer
	in  *bufio.Reader
}

// New builds a Registry with every category wired in. out/in back the I/O
// category (print/println/gets); inv lets the collection combinators
// (map/filter/reduce/sort) call back into a user-supplied function.
func New(inv Invoker, out io.Writer, in io.Reader) *Registry {
	r := &Registry{entries: make(map[string]FunctionInfo), inv: inv, out: out, in: bufio.NewReader(in)}
	r.registerIO()
	r.registerMath()
	r.registerCollections()
	r.registerText()
	r.registerJSON()
	r.registerRegex()
	r.registerDateTime()
	r.registerCrypto()
	r.registerUUID()
	r.registerFS()
	r.registerPath()
	r.registerEnv()
	r.registerHTTP()
	return r
}

func (r *Registry) register(name string, min, max int, category, desc string, fn value.BuiltinFunc) {
	if _, exists := r.entries[name]; !exists {
		r.order = append(r.order, name)
	}
	r.entries[name] = FunctionInfo{
		Name: name, Func: fn, Category: category,
		ArityMin: min, ArityMax: max, Description: desc,
	}
}

// Lookup finds a built-in by its exact (case-sensitive) name.
func (r *Registry) Lookup(name string) (FunctionInfo, bool) {
	info, ok := r.entries[name]
	return info, ok
}

// Names returns every registered name in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Binder is satisfied by environment.Environment: the one write operation
// the registry needs to install itself into a scope.
type Binder interface {
	DefineConst(name string, val value.Value) error
}

// DefineAll binds every registered built-in as a const in env, so
// `println`, `map`, and the rest resolve the same way any other global
// name does.
func (r *Registry) DefineAll(env Binder) error {
	for _, name := range r.order {
		info := r.entries[name]
		if err := env.DefineConst(name, value.NewBuiltin(info.Name, info.ArityMin, info.ArityMax, info.Func)); err != nil {
			return err
		}
	}
	return nil
}
