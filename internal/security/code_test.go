package security

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestCodeChecker_Plaintext(t *testing.T) {
	c := NewCodeChecker("opensesame", "")

	if !c.Configured() {
		t.Fatal("Configured = false")
	}
	if !c.Check("opensesame") {
		t.Error("rejected the correct code")
	}
	for _, presented := range []string{"", "wrong", "opensesame ", "OPENSESAME", "opensesam"} {
		if c.Check(presented) {
			t.Errorf("accepted %q", presented)
		}
	}
}

func TestCodeChecker_Hash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("opensesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	c := NewCodeChecker("", string(hash))

	if !c.Check("opensesame") {
		t.Error("rejected the correct code against its hash")
	}
	if c.Check("wrong") {
		t.Error("accepted a wrong code against the hash")
	}
}

func TestCodeChecker_HashWinsOverPlaintext(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	c := NewCodeChecker("plain-secret", string(hash))

	if !c.Check("hashed-secret") {
		t.Error("hash configured but not consulted")
	}
	if c.Check("plain-secret") {
		t.Error("plaintext accepted although a hash is configured")
	}
}

func TestCodeChecker_Unconfigured(t *testing.T) {
	c := NewCodeChecker("", "")

	if c.Configured() {
		t.Error("Configured = true for empty checker")
	}
	if c.Check("") || c.Check("anything") {
		t.Error("unconfigured checker accepted a code")
	}
}
