// Package gitstore is the git-backed storage of a profile.
//
// Each profile owns one bare monorepo. The repository config carries the
// signing key reference (user.signingkey, gpg.format), the local identity
// (rad.self) and the tracking graph:
//
//	[tracking "rad:git:<id>"]
//		peer = 12D3KooW...
//		peer = *
//
// where "*" marks an edge that is not scoped to a single peer. Person records
// are stored as blobs under refs/namespaces/<urn-id>/refs/rad/id.
package gitstore
