package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ResetTokenTTL is ten minutes. An earlier rendition of this flow
// multiplied the wrong unit and effectively produced one minute; the
// documented ten-minute window is what we keep.
const ResetTokenTTL = 10 * time.Minute

// ResetToken pairs the plaintext sent by email with the hash that gets
// persisted. The plaintext never touches the database.
type ResetToken struct {
	Plain     string
	Hash      string
	ExpiresAt time.Time
}

func NewResetToken() (ResetToken, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return ResetToken{}, err
	}

	plain := hex.EncodeToString(raw)
	return ResetToken{
		Plain:     plain,
		Hash:      HashResetToken(plain),
		ExpiresAt: time.Now().Add(ResetTokenTTL),
	}, nil
}

// HashResetToken is the lookup key transform: the same one-way hash applied
// at issue time and at redemption time.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
