package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

// ConnectionFingerprint derives a stable, non-reversible identifier for an
// encrypted connection blob. It keys server-side event history without ever
// persisting the blob itself.
func ConnectionFingerprint(encryptedBlob string) string {
	sum := sha256.Sum256([]byte(encryptedBlob))
	return hex.EncodeToString(sum[:16])
}
