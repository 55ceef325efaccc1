package builtins

import (
	"fmt"
	"path/filepath"

	"github.com/minidyn/minidyn/internal/value"
)

// registerPath wires path-manipulation built-ins over stdlib
// path/filepath.
func (r *Registry) registerPath() {
	r.register("path_join", 0, -1, "path", "join path segments with the host separator", pathJoinFn)
	r.register("path_dir", 1, 1, "path", "a path's directory component", pathDirFn)
	r.register("path_base", 1, 1, "path", "a path's final element", pathBaseFn)
	r.register("path_ext", 1, 1, "path", "a path's file extension, including the leading dot", pathExtFn)
}

func pathJoinFn(args []value.Value) (value.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		s, ok := a.(value.String)
		if !ok {
			return nil, fmt.Errorf("path_join: expected string segments")
		}
		parts[i] = string(s)
	}
	return value.String(filepath.Join(parts...)), nil
}

func pathOneArg(name string, fn func(string) string) value.BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		s, ok := args[0].(value.String)
		if !ok {
			return nil, fmt.Errorf("%s: expected string path", name)
		}
		return value.String(fn(string(s))), nil
	}
}

func pathDirFn(args []value.Value) (value.Value, error) {
	return pathOneArg("path_dir", filepath.Dir)(args)
}

func pathBaseFn(args []value.Value) (value.Value, error) {
	return pathOneArg("path_base", filepath.Base)(args)
}

func pathExtFn(args []value.Value) (value.Value, error) {
	return pathOneArg("path_ext", filepath.Ext)(args)
}
