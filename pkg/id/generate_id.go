// Package id generates the opaque identifiers used for loans, journal
// entries, payments and provision records.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns a 32-char lowercase hex identifier (16 random bytes,
// no separators or prefixes).
func NewID32() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// ids must not silently degrade into zeros if crypto/rand ever fails
		panic(err)
	}
	return hex.EncodeToString(b[:])
}
