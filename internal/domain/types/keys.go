package types

import (
	"crypto/ed25519"

	"rad/internal/util/memzero"
)

// Ed25519Public is an Ed25519 signing public key.
type Ed25519Public [32]byte

// Slice returns the key as a []byte.
func (p Ed25519Public) Slice() []byte { return p[:] }

// Key returns the key in crypto/ed25519 form.
func (p Ed25519Public) Key() ed25519.PublicKey { return ed25519.PublicKey(p[:]) }

// Ed25519Private is an Ed25519 signing private key (seed followed by public key).
type Ed25519Private [64]byte

// Public returns the public half of the key.
func (k *Ed25519Private) Public() Ed25519Public {
	var pub Ed25519Public
	copy(pub[:], k[32:])
	return pub
}

// Wipe zeroes the key in place.
func (k *Ed25519Private) Wipe() { memzero.Zero(k[:]) }

// KDFParams are the scrypt cost parameters used to derive the key-encryption key.
type KDFParams struct {
	N int `json:"scrypt_N" yaml:"n"`
	R int `json:"scrypt_r" yaml:"r"`
	P int `json:"scrypt_p" yaml:"p"`
}

// RecommendedKDF returns the recommended scrypt cost parameters.
func RecommendedKDF() KDFParams { return KDFParams{N: 1 << 15, R: 8, P: 1} }
