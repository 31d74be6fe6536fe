package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// SnapshotDigest returns a hex HMAC-SHA256 of the JSON encoding of parts.
// Equal inputs always produce the same digest.
func SnapshotDigest(secret string, parts ...any) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("digest secret is empty")
	}

	h := hmac.New(sha256.New, []byte(secret))
	enc := json.NewEncoder(h)
	for i, part := range parts {
		if err := enc.Encode(part); err != nil {
			return "", fmt.Errorf("failed to encode snapshot part %d: %w", i, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
