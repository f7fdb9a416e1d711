package interfaces

import domaintypes "rad/internal/domain/types"

// KeyStore persists a passphrase-encrypted Ed25519 keypair at a path.
type KeyStore interface {
	SaveKey(path string, passphrase *domaintypes.Passphrase, priv *domaintypes.Ed25519Private) error
	LoadKey(path string, passphrase *domaintypes.Passphrase) (domaintypes.Ed25519Private, error)
	PublicKey(path string) (domaintypes.Ed25519Public, error)
}

// ProfileStore persists profile roots and the active profile marker.
type ProfileStore interface {
	ListProfiles() ([]domaintypes.Profile, error)
	LoadProfile(id domaintypes.ProfileID) (domaintypes.Profile, error)
	CreateProfile(id domaintypes.ProfileID) (domaintypes.Profile, error)
	RemoveProfile(id domaintypes.ProfileID) error
	ActiveProfile() (domaintypes.ProfileID, bool, error)
	SetActiveProfile(id domaintypes.ProfileID) error
}

// Storage is a profile's git-backed storage: signing configuration, identity
// records and tracking relationships.
type Storage interface {
	ConfigureSigningKey(pub domaintypes.Ed25519Public) error
	SigningKey() (string, bool, error)

	PutPerson(person domaintypes.Person) error
	Person(urn domaintypes.URN) (domaintypes.Person, bool, error)
	SetLocal(urn domaintypes.URN) error
	Local() (domaintypes.URN, bool, error)

	Track(urn domaintypes.URN, peer domaintypes.PeerID) (bool, error)
	Tracked(urn domaintypes.URN) ([]domaintypes.PeerID, error)
	Untrack(
		urn domaintypes.URN,
		peer domaintypes.PeerID,
		policy domaintypes.UntrackPolicy,
	) (bool, error)
	UntrackAll(urn domaintypes.URN, policy domaintypes.UntrackPolicy) ([]domaintypes.PeerID, error)
}
