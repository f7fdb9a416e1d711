// Package crypto exposes the minimal primitives used by rad.
//
// Contents
//
//   - Ed25519 key generation, signing and verification (GenerateEd25519,
//     SignEd25519, VerifyEd25519)
//   - Peer IDs derived from Ed25519 public keys (PeerIDFromPublicKey,
//     ParsePeerID)
//   - Identity URNs: multihash of a canonical document, multibase encoded
//     (URNFromDoc, ParseURN)
//
// # Notes
//
// Returned private keys are fixed-size arrays defined in internal/domain.
// Callers treat them as sensitive and Wipe them once the key has been handed to
// the signing agent or written encrypted to disk.
package crypto
