// Package integrity fingerprints SKILL.md content.
package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashLength is the length of a hex-encoded SHA-256 digest.
const HashLength = sha256.Size * 2

// ComputeHash returns the lowercase hex SHA-256 of the exact content bytes.
func ComputeHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ComputeHashString is ComputeHash for string content.
func ComputeHashString(content string) string {
	return ComputeHash([]byte(content))
}

// VerifyHash reports whether content hashes to expected. Case-insensitive.
func VerifyHash(content []byte, expected string) bool {
	return strings.EqualFold(ComputeHash(content), expected)
}

// VerifyHashString is VerifyHash for string content.
func VerifyHashString(content, expected string) bool {
	return VerifyHash([]byte(content), expected)
}
