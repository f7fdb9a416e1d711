package domain

import "errors"

var (
	// ErrAgentUnreachable is returned when the signing agent socket cannot be
	// dialled or does not answer before the call deadline.
	ErrAgentUnreachable = errors.New("signing agent unreachable")

	// ErrInvalidPassphrase is returned when the key file cannot be opened with the
	// supplied passphrase.
	ErrInvalidPassphrase = errors.New("invalid passphrase")

	// ErrNoActiveProfile is returned when no profile is marked active.
	ErrNoActiveProfile = errors.New("no active profile")

	// ErrSigningKeyNotReady is returned when signing is attempted while the
	// profile key is not loaded in the agent.
	ErrSigningKeyNotReady = errors.New("signing key not loaded in agent")

	// ErrTrackingEdgeMissing is returned by a MustExist untrack on an absent edge.
	ErrTrackingEdgeMissing = errors.New("tracking relationship does not exist")

	// ErrProfileNotFound is returned when a profile id does not resolve to a
	// profile root.
	ErrProfileNotFound = errors.New("profile not found")
)
