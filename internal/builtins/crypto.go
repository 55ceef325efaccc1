package builtins

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"github.com/minidyn/minidyn/internal/value"
)

// registerCrypto wires the hash built-ins over the stdlib crypto
// subpackages; the retrieval pack carries no third-party hashing library
// (noted in DESIGN.md).
func (r *Registry) registerCrypto() {
	r.register("md5", 1, 1, "crypto", "hex-encoded MD5 digest", hashFn(func(b []byte) []byte { h := md5.Sum(b); return h[:] }))
	r.register("sha1", 1, 1, "crypto", "hex-encoded SHA-1 digest", hashFn(func(b []byte) []byte { h := sha1.Sum(b); return h[:] }))
	r.register("sha256", 1, 1, "crypto", "hex-encoded SHA-256 digest", hashFn(func(b []byte) []byte { h := sha256.Sum256(b); return h[:] }))
	r.register("sha512", 1, 1, "crypto", "hex-encoded SHA-512 digest", hashFn(func(b []byte) []byte { h := sha512.Sum512(b); return h[:] }))
}

func hashFn(sum func([]byte) []byte) value.BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		s, ok := args[0].(value.String)
		if !ok {
			return nil, fmt.Errorf("expected string argument")
		}
		return value.String(hex.EncodeToString(sum([]byte(s)))), nil
	}
}
