// Package module implements MiniDyn's module loader (spec.md §4.G/§6):
// resolving a `require` specifier against a candidate extension list, and
// evaluating a module file exactly once, caching its exports object under
// a case-insensitive absolute-path key so repeated or cyclic requires see
// the same object.
//
// Grounded on the evaluator's own ModuleLoader contract (a single Require
// method) and on the teacher's habit of keeping host-facing services as a
// small struct constructed once and handed to the interpreter — here the
// evaluator.Evaluator it drives.
package module

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minidyn/minidyn/internal/environment"
	"github.com/minidyn/minidyn/internal/evaluator"
	"github.com/minidyn/minidyn/internal/parser"
	"github.com/minidyn/minidyn/internal/value"
)

// candidateExts are tried, in order, against a bare specifier that does not
// resolve as-is.
var candidateExts = []string{"", ".mdl", ".minidyn"}

// entry tracks one module's resolution and evaluation state. exports is
// pre-seeded before the module body runs so a cyclic require sees the
// partially-built object instead of recursing.
type entry struct {
	exports *value.Object
	loaded  bool
}

// Loader resolves and evaluates `require`d modules against a shared global
// environment and evaluator.
type Loader struct {
	eval   *evaluator.Evaluator
	global *environment.Environment
	cache  map[string]*entry
}

// New builds a Loader. eval is used to run each module's top-level code;
// global is the environment new module scopes are enclosed in, so modules
// see the same built-ins as the entry script.
func New(eval *evaluator.Evaluator, global *environment.Environment) *Loader {
	return &Loader{eval: eval, global: global, cache: make(map[string]*entry)}
}

// resolve turns a specifier into an absolute file path, trying each
// candidate extension and, for directories, an index fallback — per
// spec.md §6.
func resolve(specifier, baseDir string) (string, error) {
	base := specifier
	if !filepath.IsAbs(base) {
		base = filepath.Join(baseDir, specifier)
	}

	if candidate, ok := tryFile(base); ok {
		return candidate, nil
	}

	indexBase := filepath.Join(base, "index")
	if candidate, ok := tryFile(indexBase); ok {
		return candidate, nil
	}

	return "", fmt.Errorf("cannot resolve module %q from %q", specifier, baseDir)
}

func tryFile(base string) (string, bool) {
	for _, ext := range candidateExts {
		candidate := base + ext
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				continue
			}
			return abs, true
		}
	}
	return "", false
}

func cacheKey(absPath string) string {
	return strings.ToLower(absPath)
}

// Require resolves specifier relative to fromFile's directory, evaluates
// the module on first use, and returns its exports object. A require cycle
// returns the in-progress exports object as seeded so far, matching
// spec.md §4.G's cyclic-require rule.
func (l *Loader) Require(specifier, fromFile string) (*value.Object, error) {
	baseDir := "."
	if fromFile != "" {
		baseDir = filepath.Dir(fromFile)
	}

	absPath, err := resolve(specifier, baseDir)
	if err != nil {
		// On a case-sensitive filesystem a case-differing specifier does not
		// resolve, but it still matches a module cached under the folded key.
		base := specifier
		if !filepath.IsAbs(base) {
			base = filepath.Join(baseDir, specifier)
		}
		for _, b := range []string{base, filepath.Join(base, "index")} {
			for _, ext := range candidateExts {
				if abs, absErr := filepath.Abs(b + ext); absErr == nil {
					if e, ok := l.cache[cacheKey(abs)]; ok {
						return e.exports, nil
					}
				}
			}
		}
		return nil, err
	}

	key := cacheKey(absPath)
	if e, ok := l.cache[key]; ok {
		return e.exports, nil
	}

	e := &entry{exports: value.NewObject()}
	l.cache[key] = e

	source, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("require %q: %w", specifier, err)
	}

	prog, parseErrs := parser.ParseProgram(string(source), absPath)
	if len(parseErrs) > 0 {
		return nil, fmt.Errorf("require %q: parse error: %s", specifier, parseErrs[0].Error())
	}

	moduleEnv := environment.NewFunctionRoot(l.global)

	moduleObj := value.NewObject()
	moduleObj.Set("exports", e.exports)
	if err := moduleEnv.DefineConst("module", moduleObj); err != nil {
		return nil, err
	}
	if err := moduleEnv.DefineConst("exports", e.exports); err != nil {
		return nil, err
	}
	if err := l.DefineRequire(moduleEnv, absPath); err != nil {
		return nil, err
	}

	if _, err := l.eval.EvalProgram(prog, moduleEnv); err != nil {
		return nil, fmt.Errorf("require %q: %w", specifier, err)
	}

	finalExports, ok := moduleObj.Get("exports")
	if ok {
		if obj, ok := finalExports.(*value.Object); ok {
			e.exports = obj
		} else {
			return nil, fmt.Errorf("require %q: module.exports must be an object, got %s", specifier, finalExports.Kind())
		}
	}

	e.loaded = true
	return e.exports, nil
}

// Binder is satisfied by environment.Environment: the one write operation
// DefineRequire needs to install a per-file require closure.
type Binder interface {
	DefineConst(name string, val value.Value) error
}

// DefineRequire binds a `require` builtin into env that resolves relative
// to fromFile, so nested requires inside a module resolve against that
// module's own directory rather than the entry script's.
func (l *Loader) DefineRequire(env Binder, fromFile string) error {
	fn := value.NewBuiltin("require", 1, 1, func(args []value.Value) (value.Value, error) {
		spec, ok := args[0].(value.String)
		if !ok {
			return nil, fmt.Errorf("require: expected a string specifier")
		}
		exports, err := l.Require(string(spec), fromFile)
		if err != nil {
			return nil, err
		}
		return exports, nil
	})
	return env.DefineConst("require", fn)
}
