// Package crypto implements the vault's cryptographic primitives:
// authenticated symmetric encryption, anonymous public-key sealing, and
// password-based key derivation. Every function here is a stateless, pure
// operation over byte slices — no filesystem access, no package-level
// state.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	kerrors "github.com/vaultenv/vaultenv/internal/errors"
)

// ivSize is the random nonce length for AES-256-GCM.
const ivSize = 12

// tagSize is the GCM authentication tag length.
const tagSize = 16

// minCiphertextLen is the shortest input Decrypt will accept: an IV and a
// tag with zero bytes of ciphertext in between.
const minCiphertextLen = ivSize + tagSize

// Encrypt performs AES-256-GCM encryption with a fresh random IV, returning
// IV ∥ ciphertext ∥ tag. It fails only if the OS random source fails.
func Encrypt(plaintext []byte, key [32]byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return nil, err
	}

	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, err
	}

	out := make([]byte, 0, ivSize+len(plaintext)+tagSize)
	out = append(out, iv...)
	out = gcm.Seal(out, iv, plaintext, nil)
	return out, nil
}

// Decrypt reverses Encrypt. It returns errors.ErrIntegrity for any input
// shorter than 28 bytes or whose authentication tag fails to verify; it
// never distinguishes the two so no oracle on ciphertext length leaks
// beyond what the caller already observed.
func Decrypt(ciphertext []byte, key [32]byte) ([]byte, error) {
	if len(ciphertext) < minCiphertextLen {
		return nil, kerrors.ErrIntegrity
	}

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return nil, err
	}

	iv := ciphertext[:ivSize]
	sealed := ciphertext[ivSize:]

	plaintext, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, kerrors.ErrIntegrity
	}
	return plaintext, nil
}
