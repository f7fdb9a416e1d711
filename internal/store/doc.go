// Package store provides file-based persistence for rad's local state.
//
// It contains concrete implementations of the domain storage interfaces. All
// methods are concurrency-safe via internal locking, and every write goes
// through a temp file followed by a rename so readers never see partial data.
//
// The package includes stores for:
//   - Encrypted Ed25519 keys (KeyFileStore): scrypt-derived key,
//     ChaCha20-Poly1305 sealed seed, plaintext public key
//   - Profile roots and the active profile marker (ProfileFileStore)
package store
