// Package environment implements MiniDyn's lexical environment chain:
// three disjoint name-binding disciplines (function-scoped var,
// block-scoped mutable let with a temporal dead zone, block-scoped
// immutable const) threaded through nested frames.
package environment

import (
	"fmt"

	"github.com/minidyn/minidyn/internal/value"
)

type bindingKind int

const (
	bindVar bindingKind = iota
	bindLet
	bindConst
)

type binding struct {
	kind        bindingKind
	value       value.Value
	initialized bool
}

// Environment is one frame of the lexical scope chain.
type Environment struct {
	store        map[string]*binding
	outer        *Environment
	functionRoot bool
}

// New creates a root environment (the global/module scope). It is always
// a function-root frame: `var` declarations with no enclosing function
// land here.
func New() *Environment {
	return &Environment{store: make(map[string]*binding), functionRoot: true}
}

// NewEnclosed creates a block-scoped child of outer (e.g. an `if`/`while`
// body, a `for` loop's per-iteration frame). `var` declarations inside it
// skip past it to the nearest function-root ancestor.
func NewEnclosed(outer *Environment) *Environment {
	return &Environment{store: make(map[string]*binding), outer: outer}
}

// NewFunctionRoot creates a function-body/module-top-level child of
// outer. `var` declarations inside it (and inside any non-function-root
// descendant) target this frame.
func NewFunctionRoot(outer *Environment) *Environment {
	return &Environment{store: make(map[string]*binding), outer: outer, functionRoot: true}
}

func (e *Environment) functionRootFrame() *Environment {
	f := e
	for !f.functionRoot && f.outer != nil {
		f = f.outer
	}
	return f
}

// DefineVar declares or redeclares name as a var in the nearest
// function-root ancestor frame. Colliding with an existing let/const of
// the same name in that frame is an error; colliding with an existing
// var simply overwrites it (var redeclaration is legal).
func (e *Environment) DefineVar(name string, val value.Value) error {
	target := e.functionRootFrame()
	if b, ok := target.store[name]; ok && b.kind != bindVar {
		return fmt.Errorf("cannot redeclare %q as var: already declared as %s", name, kindName(b.kind))
	}
	target.store[name] = &binding{kind: bindVar, value: val, initialized: true}
	return nil
}

// DefineLet declares name as a let binding in the current frame. hasInit
// controls whether the binding starts initialized or enters the TDZ
// (readable only after the first assignment clears it).
func (e *Environment) DefineLet(name string, val value.Value, hasInit bool) error {
	if _, ok := e.store[name]; ok {
		return fmt.Errorf("%q already declared in this scope", name)
	}
	e.store[name] = &binding{kind: bindLet, value: val, initialized: hasInit}
	return nil
}

// DefineConst declares name as a const binding in the current frame. A
// const always carries an initializer (enforced at parse time).
func (e *Environment) DefineConst(name string, val value.Value) error {
	if _, ok := e.store[name]; ok {
		return fmt.Errorf("%q already declared in this scope", name)
	}
	e.store[name] = &binding{kind: bindConst, value: val, initialized: true}
	return nil
}

// Get resolves name by walking the chain outward. Reading a binding that
// is still in its temporal dead zone is an error regardless of whether
// an outer binding of the same name exists: the shadowing inner binding
// is what is "in scope", and it isn't readable yet.
func (e *Environment) Get(name string) (value.Value, error) {
	for f := e; f != nil; f = f.outer {
		if b, ok := f.store[name]; ok {
			if !b.initialized {
				return nil, fmt.Errorf("cannot access %q before initialization", name)
			}
			return b.value, nil
		}
	}
	return nil, fmt.Errorf("undefined name %q", name)
}

// Assign walks the chain outward for an existing binding of name and
// writes val into it. It also clears the TDZ flag, since the first
// assignment to an uninitialized let is how it becomes readable.
// Assigning to a const is an error.
func (e *Environment) Assign(name string, val value.Value) error {
	for f := e; f != nil; f = f.outer {
		if b, ok := f.store[name]; ok {
			if b.kind == bindConst {
				return fmt.Errorf("cannot assign to const %q", name)
			}
			b.value = val
			b.initialized = true
			return nil
		}
	}
	return fmt.Errorf("undefined name %q", name)
}

// HasLocally reports whether name is bound in this frame specifically
// (not an outer one).
func (e *Environment) HasLocally(name string) bool {
	_, ok := e.store[name]
	return ok
}

func kindName(k bindingKind) string {
	switch k {
	case bindLet:
		return "let"
	case bindConst:
		return "const"
	default:
		return "var"
	}
}
