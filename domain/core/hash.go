package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// SampleFingerprint produces a deterministic hash of an input sample so a
// report can be traced back to the exact data it was computed from. Column
// order matters; observation order matters.
func SampleFingerprint(names []string, columns map[string][]string) Hash {
	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('\x00')
		for _, v := range columns[name] {
			b.WriteString(v)
			b.WriteByte('\x01')
		}
		b.WriteByte('\n')
	}
	return NewHash([]byte(b.String()))
}

// MapFingerprint hashes a string→float64 mapping independent of map iteration
// order. Used to fingerprint PMFs and TPM rows.
func MapFingerprint(m map[string]float64) Hash {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%.12g\n", k, m[k])
	}
	return NewHash([]byte(b.String()))
}
