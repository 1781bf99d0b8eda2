// Package errors defines the sentinel error kinds the vault core returns.
// Callers compare against these with errors.Is; the core never returns a
// richer type that would let a caller distinguish causes the propagation
// policy requires to collapse (see ErrBadCredentials and ErrIntegrity).
package errors

import "errors"

// Identity and vault existence errors.
var (
	// ErrNoIdentity indicates the identity files are missing.
	ErrNoIdentity = errors.New("identity has not been initialized")

	// ErrAlreadyInitialized indicates the identity already exists.
	ErrAlreadyInitialized = errors.New("identity is already initialized")

	// ErrBadPassword indicates a supplied password is shorter than the
	// minimum length. Distinct from ErrBadCredentials, which is reserved
	// for a password that fails to unseal existing identity material.
	ErrBadPassword = errors.New("password must be at least 8 characters")

	// ErrAlreadyExists indicates init-vault was called on a backend that
	// already has a secrets.enc, without explicit overwrite consent.
	ErrAlreadyExists = errors.New("vault already exists")

	// ErrVaultNotFound indicates an operation was attempted on a backend
	// with no secrets.enc.
	ErrVaultNotFound = errors.New("vault does not exist")
)

// Cryptographic errors. All AEAD and sealed-box verification failures, at
// any layer, collapse to one of these two so no oracle distinguishes
// wrong-password from tampered-data by error message.
var (
	// ErrBadCredentials indicates the password failed against both the
	// current and legacy KDF parameter sets.
	ErrBadCredentials = errors.New("incorrect password")

	// ErrIntegrity indicates an authenticated decryption failed: truncated
	// input, mismatched key, or tampered ciphertext.
	ErrIntegrity = errors.New("integrity check failed")
)

// Recipient lifecycle errors.
var (
	// ErrNoAccess indicates the caller's fingerprint is absent from the
	// vault's recipients document.
	ErrNoAccess = errors.New("no access to this vault")

	// ErrAlreadyShared indicates the target fingerprint is already a
	// recipient. Not a failure; callers may report it as a no-op.
	ErrAlreadyShared = errors.New("recipient already has access")

	// ErrNotARecipient indicates a revoke target is absent from the
	// recipients document.
	ErrNotARecipient = errors.New("fingerprint is not a recipient")

	// ErrSelfRevoke indicates a revoke target equals the caller's own
	// fingerprint.
	ErrSelfRevoke = errors.New("cannot revoke your own access")
)

// Input validation errors.
var (
	// ErrInvalidName indicates a vault name fails the backend naming rule.
	ErrInvalidName = errors.New("invalid vault name")

	// ErrInvalidPublicKey indicates a supplied public key failed to
	// decode, or did not decode to exactly 32 bytes.
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// Editor invocation errors.
var (
	// ErrNoEditor indicates neither $VISUAL nor $EDITOR is set.
	ErrNoEditor = errors.New("no editor configured: set $VISUAL or $EDITOR")

	// ErrUnsafeEditor indicates $VISUAL/$EDITOR contains a shell
	// metacharacter, which would change meaning when passed to exec.Command
	// as a bare executable name.
	ErrUnsafeEditor = errors.New("$VISUAL/$EDITOR contains unsafe characters")
)
