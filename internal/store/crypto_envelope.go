package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"rad/internal/domain"
	"rad/internal/util/memzero"
)

const (
	// The current supported version of the encrypted key format stored on disk.
	keystoreFormatVersion = 1
)

var (
	// ErrCorruptKeyFile is returned when the key file cannot be parsed or its
	// contents do not match the recorded public key.
	ErrCorruptKeyFile = errors.New("corrupt key file")
)

// blob is the on‑disk JSON structure holding the ciphertext, KDF parameters and
// the plaintext public key (needed to query the agent without a passphrase).
type blob struct {
	V      int    `json:"v"`
	Public []byte `json:"public"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

func (b blob) kdf() domain.KDFParams { return domain.KDFParams{N: b.N, R: b.R, P: b.P} }

// encrypt derives a key from passphrase and seals raw into a JSON blob.
func encrypt(passphrase *domain.Passphrase, raw, public []byte, kdf domain.KDFParams) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:] /* #nosec G404 */); err != nil {
		return nil, err
	}
	key, err := scrypt.Key(passphrase.Bytes(), salt[:], kdf.N, kdf.R, kdf.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; salt‑bound key guarantees uniqueness
	ct := aead.Seal(nil, nonce[:], raw, salt[:])

	return json.Marshal(blob{
		V:      keystoreFormatVersion,
		Public: public,
		Salt:   salt[:],
		N:      kdf.N,
		R:      kdf.R,
		P:      kdf.P,
		Cipher: ct,
	})
}

// parseBlob decodes the on-disk envelope without decrypting it.
func parseBlob(b []byte) (blob, error) {
	var bl blob
	if err := json.Unmarshal(b, &bl); err != nil {
		return blob{}, fmt.Errorf("%w: %v", ErrCorruptKeyFile, err)
	}
	if bl.V > keystoreFormatVersion {
		return blob{}, fmt.Errorf("unsupported keystore version %d", bl.V)
	}
	if len(bl.Salt) == 0 || len(bl.Cipher) == 0 {
		return blob{}, fmt.Errorf("%w: missing salt or ciphertext", ErrCorruptKeyFile)
	}
	return bl, nil
}

// decrypt opens the blob using a key derived from passphrase.
func decrypt(passphrase *domain.Passphrase, bl blob) ([]byte, error) {
	kdf := bl.kdf()
	key, err := scrypt.Key(passphrase.Bytes(), bl.Salt, kdf.N, kdf.R, kdf.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptKeyFile, err)
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], bl.Cipher, bl.Salt)
	if err != nil {
		return nil, domain.ErrInvalidPassphrase
	}
	return pt, nil
}
