package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashIdentifier returns a stable, log-safe digest of an email or user key.
// Emails are case-folded first so the same address always hashes alike.
func HashIdentifier(s string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(s))))
	return hex.EncodeToString(sum[:])[:16]
}
