package crypto

import (
	"crypto/rand"

	"golang.org/x/crypto/nacl/box"

	kerrors "github.com/vaultenv/vaultenv/internal/errors"
)

// sealOverhead is the ephemeral public key plus the box nonce plus the
// Poly1305 tag: 32 + 24 + 16.
const sealOverhead = 32 + 24 + 16

// Seal performs anonymous public-key encryption to recipientPublic: it
// generates a fresh ephemeral Curve25519 keypair, authenticates the
// message to the recipient with that ephemeral key, and attaches the
// ephemeral public key so the recipient can open the box without knowing
// who sent it. Layout: ephemeral-public (32) ∥ nonce (24) ∥ ciphertext+tag.
//
// A fresh ephemeral pair is generated on every call; compromising one
// wrap's ephemeral private key does not compromise any other wrap.
func Seal(message []byte, recipientPublic [32]byte) ([]byte, error) {
	ephemeralPub, ephemeralPriv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}

	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}

	out := make([]byte, 0, 32+24+len(message)+box.Overhead)
	out = append(out, ephemeralPub[:]...)
	out = append(out, nonce[:]...)
	out = box.Seal(out, message, &nonce, &recipientPublic, ephemeralPriv)
	return out, nil
}

// Open reverses Seal using the recipient's private key. It returns
// errors.ErrIntegrity on truncated input or any authentication failure —
// including the case where recipientPrivate does not match the public key
// the sender sealed to.
func Open(sealed []byte, recipientPrivate [32]byte) ([]byte, error) {
	if len(sealed) < sealOverhead {
		return nil, kerrors.ErrIntegrity
	}

	var ephemeralPub [32]byte
	copy(ephemeralPub[:], sealed[:32])
	var nonce [24]byte
	copy(nonce[:], sealed[32:56])
	ciphertext := sealed[56:]

	message, ok := box.Open(nil, ciphertext, &nonce, &ephemeralPub, &recipientPrivate)
	if !ok {
		return nil, kerrors.ErrIntegrity
	}
	return message, nil
}
