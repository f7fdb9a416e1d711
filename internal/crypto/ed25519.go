package crypto

import (
	"crypto/ed25519"
	"crypto/rand"

	"rad/internal/domain"
	"rad/internal/util/memzero"
)

// GenerateEd25519 returns a new Ed25519 signing key pair.
func GenerateEd25519() (priv domain.Ed25519Private, pub domain.Ed25519Public, err error) {
	pk, sk, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return priv, pub, err
	}
	copy(priv[:], sk)
	copy(pub[:], pk)
	memzero.Zero(sk)
	return priv, pub, nil
}

// Ed25519FromSeed expands a 32-byte seed into a private key.
func Ed25519FromSeed(seed []byte) (domain.Ed25519Private, error) {
	var priv domain.Ed25519Private
	if len(seed) != ed25519.SeedSize {
		return priv, errInvalidSeed
	}
	sk := ed25519.NewKeyFromSeed(seed)
	copy(priv[:], sk)
	memzero.Zero(sk)
	return priv, nil
}

// SignEd25519 signs msg with priv and returns the signature.
func SignEd25519(priv *domain.Ed25519Private, msg []byte) []byte {
	return ed25519.Sign(ed25519.PrivateKey(priv[:]), msg)
}

// VerifyEd25519 verifies sig over msg with pub.
func VerifyEd25519(pub domain.Ed25519Public, msg, sig []byte) bool {
	return len(sig) == ed25519.SignatureSize && ed25519.Verify(pub.Key(), msg, sig)
}
