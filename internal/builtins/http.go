package builtins

import (
	"fmt"

	"github.com/minidyn/minidyn/internal/value"
)

// registerHTTP registers http_get/http_post as always-disabled
// built-ins: the core ships no sandboxing or network policy, so rather
// than wiring a live net/http client it registers the names and raises
// the host-policy error spec.md §4.H names ("HTTP is disabled"),
// matching the teacher's own pattern of registering built-ins that exist
// to report a host-policy refusal rather than perform the operation.
func (r *Registry) registerHTTP() {
	r.register("http_get", 1, 1, "http", "disabled: always raises \"HTTP is disabled\"", httpDisabledFn)
	r.register("http_post", 2, 2, "http", "disabled: always raises \"HTTP is disabled\"", httpDisabledFn)
}

func httpDisabledFn(_ []value.Value) (value.Value, error) {
	return nil, fmt.Errorf("HTTP is disabled")
}
