package security

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// CodeChecker verifies the presented operator credential in constant time.
// It is configured with either the plaintext shared secret or a bcrypt hash
// of it; the hash wins when both are set. A mismatch carries no partial
// feedback — wrong length and wrong content fail identically.
type CodeChecker struct {
	code string
	hash string
}

// NewCodeChecker returns a checker for the configured secret. Both arguments
// may be empty, in which case the checker reports unconfigured and rejects
// everything.
func NewCodeChecker(code, hash string) *CodeChecker {
	return &CodeChecker{code: code, hash: hash}
}

// Configured reports whether an operator credential is set at all.
func (c *CodeChecker) Configured() bool {
	return c.code != "" || c.hash != ""
}

// Check reports whether presented matches the configured secret.
func (c *CodeChecker) Check(presented string) bool {
	if presented == "" || !c.Configured() {
		return false
	}
	if c.hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(c.hash), []byte(presented)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(c.code)) == 1
}
