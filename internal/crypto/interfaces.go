// Package crypto seals the terminal client's bearer token before it is
// written to the local SQLite file, so a copied database does not hand out
// a working session.
package crypto

// TokenSealer encrypts short secrets at rest.
//
// Blob layout, Base64 (standard encoding):
//
//	salt (16) ‖ nonce (12) ‖ AES-256-GCM ciphertext
//
// The AES key is derived from the configured secret and the salt with
// Argon2id, so every sealed value has its own key.
type TokenSealer interface {
	// Seal encrypts plaintext with a fresh salt and nonce.
	Seal(plaintext string) (string, error)

	// Open reverses Seal. It returns [ErrMalformedBlob] when sealed is not a
	// blob produced by Seal and [ErrSealBroken] when the secret differs or the
	// ciphertext was modified.
	Open(sealed string) (string, error)
}
