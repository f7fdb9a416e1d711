package crypto

import (
	"errors"
	"fmt"

	libp2pcrypto "github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"

	"rad/internal/domain"
)

var (
	errInvalidSeed   = errors.New("ed25519 seed must be 32 bytes")
	errNotEd25519    = errors.New("peer id does not embed an ed25519 key")
	errInvalidPeerID = errors.New("invalid peer id")
)

// PeerIDFromPublicKey derives the Peer ID for an Ed25519 public key.
func PeerIDFromPublicKey(pub domain.Ed25519Public) (domain.PeerID, error) {
	pk, err := libp2pcrypto.UnmarshalEd25519PublicKey(pub.Slice())
	if err != nil {
		return "", fmt.Errorf("unmarshal ed25519 key: %w", err)
	}
	id, err := peer.IDFromPublicKey(pk)
	if err != nil {
		return "", fmt.Errorf("derive peer id: %w", err)
	}
	return domain.PeerID(id.String()), nil
}

// ParsePeerID validates s and returns it as a Peer ID.
func ParsePeerID(s string) (domain.PeerID, error) {
	id, err := peer.Decode(s)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", errInvalidPeerID, s, err)
	}
	return domain.PeerID(id.String()), nil
}

// PublicKeyFromPeerID recovers the Ed25519 public key embedded in a Peer ID.
func PublicKeyFromPeerID(p domain.PeerID) (domain.Ed25519Public, error) {
	var pub domain.Ed25519Public
	id, err := peer.Decode(p.String())
	if err != nil {
		return pub, fmt.Errorf("%w %q: %v", errInvalidPeerID, p, err)
	}
	pk, err := id.ExtractPublicKey()
	if err != nil {
		return pub, fmt.Errorf("extract public key: %w", err)
	}
	if pk.Type() != libp2pcrypto.Ed25519 {
		return pub, errNotEd25519
	}
	raw, err := pk.Raw()
	if err != nil {
		return pub, err
	}
	copy(pub[:], raw)
	return pub, nil
}
