// Package runtime wires together the pieces a running MiniDyn program
// needs: a global environment, an evaluator, the built-in registry bound
// into that environment, and a module loader bound into the evaluator's
// ModuleLoader slot. cmd/minidyn and the module loader itself both go
// through this single constructor so there is exactly one place that
// assembles the interpreter.
package runtime

import (
	"io"

	"github.com/minidyn/minidyn/internal/builtins"
	"github.com/minidyn/minidyn/internal/environment"
	"github.com/minidyn/minidyn/internal/evaluator"
	"github.com/minidyn/minidyn/internal/module"
)

// Runtime bundles the constructed pieces, each reachable for callers that
// need to go lower-level (e.g. a REPL binding `require` per input file).
type Runtime struct {
	Global   *environment.Environment
	Eval     *evaluator.Evaluator
	Builtins *builtins.Registry
	Modules  *module.Loader
}

// New assembles a Runtime. out/in back the I/O built-ins (print/println
// and gets); a typical CLI passes os.Stdout/os.Stdin.
func New(out io.Writer, in io.Reader) *Runtime {
	global := environment.New()
	eval := evaluator.New()

	reg := builtins.New(eval, out, in)
	loader := module.New(eval, global)
	eval.Modules = loader

	rt := &Runtime{Global: global, Eval: eval, Builtins: reg, Modules: loader}
	return rt
}

// Prepare binds the built-in registry and a `require` closure (resolving
// relative to entryFile) into the Runtime's global environment, readying
// it to evaluate a program loaded from entryFile.
func (rt *Runtime) Prepare(entryFile string) error {
	if err := rt.Builtins.DefineAll(rt.Global); err != nil {
		return err
	}
	return rt.Modules.DefineRequire(rt.Global, entryFile)
}

// SetTrace enables per-call execution tracing to w, the --trace flag's
// sink.
func (rt *Runtime) SetTrace(w io.Writer) {
	rt.Eval.Trace = w
}
