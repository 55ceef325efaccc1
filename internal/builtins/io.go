package builtins

import (
	"fmt"
	"io"
	"strings"

	"github.com/minidyn/minidyn/internal/value"
)

// registerIO wires print/println/gets over the registry's out/in
// streams, following the teacher's plain bufio/os terminal-I/O style —
// there is no ecosystem terminal library in the retrieval pack to reach
// for here.
func (r *Registry) registerIO() {
	r.register("print", 0, -1, "io", "write args space-joined, no trailing newline", r.printFn)
	r.register("println", 0, -1, "io", "write args space-joined, with a trailing newline", r.printlnFn)
	r.register("gets", 0, 0, "io", "read one line from stdin, without its trailing newline", r.getsFn)
}

func joinArgs(args []value.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = value.CanonicalKey(a)
	}
	return strings.Join(parts, " ")
}

func (r *Registry) printFn(args []value.Value) (value.Value, error) {
	fmt.Fprint(r.out, joinArgs(args))
	return value.NilValue, nil
}

func (r *Registry) printlnFn(args []value.Value) (value.Value, error) {
	fmt.Fprintln(r.out, joinArgs(args))
	return value.NilValue, nil
}

func (r *Registry) getsFn(_ []value.Value) (value.Value, error) {
	line, err := r.in.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return value.NilValue, nil
		}
		return nil, err
	}
	return value.String(strings.TrimRight(line, "\r\n")), nil
}
