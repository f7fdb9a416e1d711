package interfaces

import (
	"context"

	domaintypes "rad/internal/domain/types"
)

// KeyCustody manages a profile's encrypted key and its presence in the agent.
type KeyCustody interface {
	Generate(profile domaintypes.Profile, passphrase *domaintypes.Passphrase) (domaintypes.PeerID, error)
	IsReady(ctx context.Context, profile domaintypes.Profile) (bool, error)
	Add(
		ctx context.Context,
		profile domaintypes.Profile,
		passphrase *domaintypes.Passphrase,
	) (domaintypes.ProfileID, error)
	Remove(ctx context.Context, profile domaintypes.Profile) error
	Storage(ctx context.Context, profile domaintypes.Profile) (Signer, Storage, error)
}

// ProfileRegistry enumerates local profiles and tracks which one is active.
type ProfileRegistry interface {
	List() ([]domaintypes.Profile, error)
	Default() (domaintypes.Profile, error)
	Select(profiles []domaintypes.Profile, current domaintypes.Profile) (domaintypes.Profile, error)
	SetActive(id domaintypes.ProfileID) error
	Create() (domaintypes.Profile, error)
	Remove(id domaintypes.ProfileID) error
}
