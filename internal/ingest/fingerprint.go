package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint returns the hex SHA-256 digest of input. Identical input
// bytes always produce identical digests; the pipeline stores the digest to
// detect change between ingestions but never uses it to skip versioning.
func Fingerprint(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// FingerprintFields fingerprints a deterministic concatenation of an
// entity's identifying fields.
func FingerprintFields(fields ...string) string {
	return Fingerprint(strings.Join(fields, "|"))
}
