package password

import (
	"github.com/alexedwards/argon2id"
)

var params = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// Hash produces a self-salted argon2id hash. Two calls on the same input
// yield different strings because a fresh salt is drawn each time.
func Hash(password string) (string, error) {
	return argon2id.CreateHash(password, params)
}

// Verify reports whether password matches hash. A malformed hash counts as a
// mismatch, never an error.
func Verify(password, hash string) bool {
	ok, err := argon2id.ComparePasswordAndHash(password, hash)
	return err == nil && ok
}
