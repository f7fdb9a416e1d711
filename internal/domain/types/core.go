package types

// ProfileID identifies a local profile. It is a random UUID assigned at creation.
type ProfileID string

// String returns the string form of the profile id.
func (id ProfileID) String() string { return string(id) }

// PeerID identifies a device on the network. It is derived from the profile's
// Ed25519 public key.
type PeerID string

// String returns the string form of the peer id.
func (p PeerID) String() string { return string(p) }

// URN is the globally stable handle of an identity, e.g. "rad:git:b...".
type URN string

// String returns the string form of the URN.
func (u URN) String() string { return string(u) }

// Username is the human readable name bound into a person identity.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }
