package interfaces

import (
	"context"

	domaintypes "rad/internal/domain/types"
)

// SigningAgent is the external process holding decrypted keys (ssh-agent).
// Every call is a blocking round-trip; implementations report transport
// failures as ErrAgentUnreachable.
type SigningAgent interface {
	IsLoaded(ctx context.Context, pub domaintypes.Ed25519Public) (bool, error)
	Load(ctx context.Context, priv *domaintypes.Ed25519Private, comment string) error
	Sign(ctx context.Context, pub domaintypes.Ed25519Public, msg []byte) ([]byte, error)
	Unload(ctx context.Context, pub domaintypes.Ed25519Public) error
}

// Signer signs on behalf of one profile key.
type Signer interface {
	PeerID() domaintypes.PeerID
	PublicKey() domaintypes.Ed25519Public
	Sign(ctx context.Context, msg []byte) ([]byte, error)
}
