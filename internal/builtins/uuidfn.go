package builtins

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/minidyn/minidyn/internal/value"
)

// registerUUID wires UUID generation over github.com/google/uuid
// (contributed by the gaarutyunov-guix example repo in the retrieval
// pack).
func (r *Registry) registerUUID() {
	r.register("uuid_v4", 0, 0, "uuid", "a random (version 4) UUID", uuidV4Fn)
	r.register("uuid_v5", 2, 2, "uuid", "a deterministic (version 5) UUID from a namespace UUID and a name", uuidV5Fn)
}

func uuidV4Fn(_ []value.Value) (value.Value, error) {
	return value.String(uuid.New().String()), nil
}

func uuidV5Fn(args []value.Value) (value.Value, error) {
	ns, ok := args[0].(value.String)
	if !ok {
		return nil, fmt.Errorf("uuid_v5: expected namespace UUID string")
	}
	name, ok := args[1].(value.String)
	if !ok {
		return nil, fmt.Errorf("uuid_v5: expected name string")
	}
	nsUUID, err := uuid.Parse(string(ns))
	if err != nil {
		return nil, fmt.Errorf("uuid_v5: invalid namespace UUID: %w", err)
	}
	return value.String(uuid.NewSHA1(nsUUID, []byte(name)).String()), nil
}
