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

// FilterHash identifies a filter state for memoization keys
type FilterHash Hash

func (h FilterHash) String() string { return Hash(h).String() }

// ComputeFilterHash derives a stable hash over arbitrary key/value filter
// components. Map iteration order must not leak into the hash, so keys are
// sorted before feeding the digest.
func ComputeFilterHash(components map[string]interface{}) FilterHash {
	keys := make([]string, 0, len(components))
	for k := range components {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var data strings.Builder
	for _, key := range keys {
		data.WriteString(key)
		data.WriteString(fmt.Sprintf("%v", components[key]))
	}

	return FilterHash(NewHash([]byte(data.String())))
}
