package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// tokenBytes gives 40 hex chars on the wire, enough entropy that tokens are
// unguessable without being unwieldy in an Authorization header.
const tokenBytes = 20

// Manager issues and fingerprints opaque bearer tokens. The token itself is
// random bytes, not a signed claim set: it stays valid until the stored row
// backing it is revoked, and carries no readable identity.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// GenerateToken returns the raw token handed to the client. Only the HMAC
// hash of it is ever persisted.
func (m *Manager) GenerateToken() (string, error) {
	buf := make([]byte, tokenBytes)

	_, err := rand.Read(buf)

	if err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}

// Deterministic HMAC hash (server-side pepper = auth secret bytes).
// Store this in DB (never store the raw token).
func (m *Manager) HashToken(raw string) string {
	h := hmac.New(sha256.New, m.secret)
	h.Write([]byte(raw))
	return hex.EncodeToString(h.Sum(nil))
}
