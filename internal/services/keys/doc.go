// Package keys is the key custody store.
//
// It owns a profile's encrypted Ed25519 key file and decides whether the
// decrypted key is available in the signing agent. Decrypted key material only
// lives long enough to be handed to the agent.
package keys
