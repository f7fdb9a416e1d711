package types

import "path/filepath"

const (
	gitDirName  = "git"
	keysDirName = "keys"
	keyFileName = "ed25519.key.enc"
)

// Profile is a local identity profile rooted at a directory on disk.
//
// The root holds a bare git monorepo and the encrypted keypair:
//
//	<root>/git/                     git-backed storage
//	<root>/keys/ed25519.key.enc     passphrase-encrypted Ed25519 key
type Profile struct {
	ID   ProfileID `json:"id" yaml:"id"`
	Root string    `json:"root" yaml:"root"`
}

// GitDir returns the path of the profile's git monorepo.
func (p Profile) GitDir() string { return filepath.Join(p.Root, gitDirName) }

// KeysDir returns the directory holding the profile's key material.
func (p Profile) KeysDir() string { return filepath.Join(p.Root, keysDirName) }

// KeyFile returns the path of the encrypted key file.
func (p Profile) KeyFile() string { return filepath.Join(p.KeysDir(), keyFileName) }
