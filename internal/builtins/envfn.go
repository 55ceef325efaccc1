package builtins

import (
	"fmt"
	"os"

	"github.com/minidyn/minidyn/internal/value"
)

// registerEnv wires environment-variable access over stdlib os.
func (r *Registry) registerEnv() {
	r.register("getenv", 1, 1, "env", "an environment variable's value, or nil if unset", getenvFn)
	r.register("setenv", 2, 2, "env", "set an environment variable for this process", setenvFn)
}

func getenvFn(args []value.Value) (value.Value, error) {
	name, ok := args[0].(value.String)
	if !ok {
		return nil, fmt.Errorf("getenv: expected name string")
	}
	v, ok := os.LookupEnv(string(name))
	if !ok {
		return value.NilValue, nil
	}
	return value.String(v), nil
}

func setenvFn(args []value.Value) (value.Value, error) {
	name, ok := args[0].(value.String)
	if !ok {
		return nil, fmt.Errorf("setenv: expected name string")
	}
	val, ok := args[1].(value.String)
	if !ok {
		return nil, fmt.Errorf("setenv: expected value string")
	}
	if err := os.Setenv(string(name), string(val)); err != nil {
		return nil, fmt.Errorf("setenv: %w", err)
	}
	return value.Bool(true), nil
}
