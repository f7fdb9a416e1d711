// Package identity bootstraps a new profile: username, passphrase, keypair,
// git signing configuration, agent key and a signed person identity.
//
// Every step registers a compensation. If a later step fails the
// compensations run in reverse so no half-built profile stays on disk, in the
// agent or marked active.
package identity
