package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// hashedKeyPrefix marks a hashed entity key in log output.
const hashedKeyPrefix = "ek_"

// hashedKeyLen is the number of hex digest characters retained. Twelve
// characters keep collisions negligible at realistic entity counts while
// staying readable in log lines.
const hashedKeyLen = 12

// KeyHasher replaces raw entity keys in log fields with short, stable
// digests. The digest is deterministic so log lines for the same entity
// still correlate, but the raw identifier never appears in output.
type KeyHasher struct {
	// sensitiveKeys are the field names whose values get hashed.
	sensitiveKeys map[string]bool
}

// NewKeyHasher creates a hasher covering the entity-key field names used
// across the codebase.
func NewKeyHasher() *KeyHasher {
	return &KeyHasher{
		sensitiveKeys: map[string]bool{
			"entity_key": true,
			"entity":     true,
		},
	}
}

// HashKey returns the stable digest form of an entity key.
func HashKey(key string) string {
	if key == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(key))
	return hashedKeyPrefix + hex.EncodeToString(sum[:])[:hashedKeyLen]
}

// HashArgs returns a copy of the key-value argument list with every
// sensitive field's value replaced by its digest. Non-string values and
// malformed (odd-length) argument lists pass through unchanged.
func (h *KeyHasher) HashArgs(args ...any) []any {
	if len(args)%2 != 0 {
		return args
	}

	out := make([]any, len(args))
	copy(out, args)

	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok || !h.isSensitiveKey(key) {
			continue
		}
		if value, ok := out[i+1].(string); ok {
			out[i+1] = HashKey(value)
		}
	}

	return out
}

// isSensitiveKey reports whether a field name's value should be hashed.
func (h *KeyHasher) isSensitiveKey(key string) bool {
	return h.sensitiveKeys[strings.ToLower(key)]
}
