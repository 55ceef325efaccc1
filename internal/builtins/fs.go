package builtins

import (
	"fmt"
	"os"

	"github.com/minidyn/minidyn/internal/value"
)

// registerFS wires the filesystem built-ins over stdlib os/io: host file
// I/O is explicitly out of core scope (spec.md §1) and has no ecosystem
// replacement in the retrieval pack, so these stay on the standard
// library as external collaborators the core never touches directly.
func (r *Registry) registerFS() {
	r.register("read_file", 1, 1, "fs", "read a file's contents as a string", readFileFn)
	r.register("write_file", 2, 2, "fs", "write a string to a file, creating or truncating it", writeFileFn)
	r.register("list_dir", 1, 1, "fs", "array of entry names in a directory", listDirFn)
	r.register("file_exists", 1, 1, "fs", "whether a path exists", fileExistsFn)
}

func readFileFn(args []value.Value) (value.Value, error) {
	path, ok := args[0].(value.String)
	if !ok {
		return nil, fmt.Errorf("read_file: expected path string")
	}
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read_file: %w", err)
	}
	return value.String(string(data)), nil
}

func writeFileFn(args []value.Value) (value.Value, error) {
	path, ok := args[0].(value.String)
	if !ok {
		return nil, fmt.Errorf("write_file: expected path string")
	}
	content, ok := args[1].(value.String)
	if !ok {
		return nil, fmt.Errorf("write_file: expected content string")
	}
	if err := os.WriteFile(string(path), []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("write_file: %w", err)
	}
	return value.Bool(true), nil
}

func listDirFn(args []value.Value) (value.Value, error) {
	path, ok := args[0].(value.String)
	if !ok {
		return nil, fmt.Errorf("list_dir: expected path string")
	}
	entries, err := os.ReadDir(string(path))
	if err != nil {
		return nil, fmt.Errorf("list_dir: %w", err)
	}
	out := make([]value.Value, len(entries))
	for i, e := range entries {
		out[i] = value.String(e.Name())
	}
	return value.NewArray(out), nil
}

func fileExistsFn(args []value.Value) (value.Value, error) {
	path, ok := args[0].(value.String)
	if !ok {
		return nil, fmt.Errorf("file_exists: expected path string")
	}
	_, err := os.Stat(string(path))
	return value.Bool(err == nil), nil
}
