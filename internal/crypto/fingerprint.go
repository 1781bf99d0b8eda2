package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// fingerprintBytes is the number of SHA-256 prefix bytes kept.
const fingerprintBytes = 8

// Fingerprint returns the 16 lowercase hex characters that identify a
// public key for display and as the recipients-map key. It is a pure
// function of the public key: two identical keys always fingerprint the
// same, and collisions are only as likely as the 32-bit birthday bound —
// acceptable for a display identifier, not for authentication.
func Fingerprint(publicKey [32]byte) string {
	sum := sha256.Sum256(publicKey[:])
	return hex.EncodeToString(sum[:fingerprintBytes])
}
