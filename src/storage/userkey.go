package storage

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// DeriveUserKey maps a bearer credential to a stable, non-reversible user key.
//
// Ghostfolio issues a fresh JWT on every login, but the payload carries the
// same "id" claim for a given user, so the key is derived from that claim
// when the credential parses as a JWT. The token signature is not checked
// here; the upstream API already rejected invalid tokens. Non-JWT
// credentials hash as-is.
func DeriveUserKey(authToken string) string {
	id := extractUserID(authToken)
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])[:16]
}

func extractUserID(authToken string) string {
	parts := strings.Split(authToken, ".")
	if len(parts) != 3 {
		return authToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return authToken
	}

	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.ID == "" {
		return authToken
	}
	return payload.ID
}
