package store

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"os"
	"sync"

	"rad/internal/crypto"
	"rad/internal/domain"
	"rad/internal/util/memzero"
)

// KeyFileStore persists passphrase-encrypted Ed25519 keys to disk.
//
// Only the 32-byte seed is encrypted; the public key is stored in the clear so
// that agent readiness can be checked without a passphrase.
type KeyFileStore struct {
	kdf domain.KDFParams
	mu  sync.Mutex
}

// NewKeyFileStore returns a KeyFileStore that encrypts new keys with kdf.
func NewKeyFileStore(kdf domain.KDFParams) *KeyFileStore {
	return &KeyFileStore{kdf: kdf}
}

// SaveKey encrypts priv under passphrase and writes it to path. An existing
// key file is never overwritten.
func (s *KeyFileStore) SaveKey(
	path string,
	passphrase *domain.Passphrase,
	priv *domain.Ed25519Private,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("key file %s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	seed := append([]byte(nil), priv[:ed25519.SeedSize]...)
	defer memzero.Zero(seed)

	pub := priv.Public()
	ct, err := encrypt(passphrase, seed, pub.Slice(), s.kdf)
	if err != nil {
		return err
	}
	return writeFile(path, ct, 0o600)
}

// LoadKey reads and decrypts the key at path.
//
// It returns domain.ErrInvalidPassphrase when decryption fails, ErrCorruptKeyFile
// when the file cannot be parsed, and the underlying I/O error otherwise.
func (s *KeyFileStore) LoadKey(path string, passphrase *domain.Passphrase) (domain.Ed25519Private, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var priv domain.Ed25519Private
	bl, err := s.readBlob(path)
	if err != nil {
		return priv, err
	}
	seed, err := decrypt(passphrase, bl)
	if err != nil {
		return priv, err
	}
	defer memzero.Zero(seed)

	priv, err = crypto.Ed25519FromSeed(seed)
	if err != nil {
		return priv, fmt.Errorf("%w: %v", ErrCorruptKeyFile, err)
	}
	if pub := priv.Public(); string(pub.Slice()) != string(bl.Public) {
		priv.Wipe()
		return priv, fmt.Errorf("%w: public key mismatch", ErrCorruptKeyFile)
	}
	return priv, nil
}

// PublicKey returns the public key recorded in the key file at path.
func (s *KeyFileStore) PublicKey(path string) (domain.Ed25519Public, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pub domain.Ed25519Public
	bl, err := s.readBlob(path)
	if err != nil {
		return pub, err
	}
	if len(bl.Public) != len(pub) {
		return pub, fmt.Errorf("%w: bad public key length %d", ErrCorruptKeyFile, len(bl.Public))
	}
	copy(pub[:], bl.Public)
	return pub, nil
}

func (s *KeyFileStore) readBlob(path string) (blob, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return blob{}, fmt.Errorf("read key file: %w", err)
	}
	return parseBlob(b)
}

// Compile-time assertion that KeyFileStore implements domain.KeyStore.
var _ domain.KeyStore = (*KeyFileStore)(nil)
