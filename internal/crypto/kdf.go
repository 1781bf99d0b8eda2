package crypto

import "golang.org/x/crypto/scrypt"

// KDFParams names one scrypt parameter set. KeyLength is always 32: the
// vault only ever derives symmetric keys wide enough to seal a Curve25519
// private key.
type KDFParams struct {
	Name string
	N    int
	R    int
	P    int
}

var (
	// CurrentParams is used for every new identity and tried first on
	// unlock.
	CurrentParams = KDFParams{Name: "current", N: 1 << 17, R: 8, P: 1}

	// LegacyParams is read-only: unlock falls back to it only to migrate
	// identities created before CurrentParams was raised.
	LegacyParams = KDFParams{Name: "legacy", N: 1 << 14, R: 8, P: 1}
)

// DeriveKey runs scrypt(password, salt, params) and returns a 32-byte key.
// It is deterministic: identical inputs always yield identical output, and
// distinct salts yield distinct output for the same password.
func DeriveKey(password []byte, salt [16]byte, params KDFParams) ([32]byte, error) {
	var key [32]byte

	derived, err := scrypt.Key(password, salt[:], params.N, params.R, params.P, 32)
	if err != nil {
		return key, err
	}
	copy(key[:], derived)
	return key, nil
}
