package integrity_test

import (
	"strings"
	"testing"

	"skill-registry/pkg/integrity"
)

func TestComputeHash(t *testing.T) {
	content := "# My Skill\n\nThis is a test skill."
	hash := integrity.ComputeHashString(content)

	if len(hash) != integrity.HashLength {
		t.Fatalf("expected %d chars, got %d", integrity.HashLength, len(hash))
	}
	if hash != strings.ToLower(hash) {
		t.Errorf("expected lowercase hex, got %s", hash)
	}
	if hash != integrity.ComputeHashString(content) {
		t.Errorf("hash is not deterministic")
	}

	// Known vector: SHA-256 of the empty string.
	const empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := integrity.ComputeHash(nil); got != empty {
		t.Errorf("empty content: expected %s, got %s", empty, got)
	}
}

func TestVerifyHash(t *testing.T) {
	contents := []string{
		"",
		"# My Skill\n\nThis is a test skill.",
		"---\nname: Foo\n---\nbody with unicode: héllo ✓\n",
	}

	for _, c := range contents {
		hash := integrity.ComputeHashString(c)

		if !integrity.VerifyHashString(c, hash) {
			t.Errorf("round trip failed for %q", c)
		}
		if !integrity.VerifyHashString(c, strings.ToUpper(hash)) {
			t.Errorf("uppercase hash rejected for %q", c)
		}
		if integrity.VerifyHashString(c+"x", hash) {
			t.Errorf("modified content accepted for %q", c)
		}
	}
}

func TestHashSensitivity(t *testing.T) {
	a := integrity.ComputeHashString("name: foo\n")
	b := integrity.ComputeHashString("name: foo\r\n")
	c := integrity.ComputeHashString("name: Foo\n")

	if a == b || a == c || b == c {
		t.Errorf("distinct content produced equal hashes: %s %s %s", a, b, c)
	}
}
