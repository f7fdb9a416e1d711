package domain

import (
	interfaces "rad/internal/domain/interfaces"
	types "rad/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	ProfileID      = types.ProfileID
	PeerID         = types.PeerID
	URN            = types.URN
	Username       = types.Username
	Profile        = types.Profile
	Passphrase     = types.Passphrase
	KDFParams      = types.KDFParams
	Ed25519Public  = types.Ed25519Public
	Ed25519Private = types.Ed25519Private
	PersonDoc      = types.PersonDoc
	Person         = types.Person
	UntrackPolicy  = types.UntrackPolicy
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	SigningAgent    = interfaces.SigningAgent
	Signer          = interfaces.Signer
	Storage         = interfaces.Storage
	KeyStore        = interfaces.KeyStore
	ProfileStore    = interfaces.ProfileStore
	KeyCustody      = interfaces.KeyCustody
	ProfileRegistry = interfaces.ProfileRegistry
	Prompter        = interfaces.Prompter
	Reporter        = interfaces.Reporter
	Spinner         = interfaces.Spinner
)

// Re-exported constructors and constants.
var (
	NewPassphrase  = types.NewPassphrase
	RecommendedKDF = types.RecommendedKDF
)

const (
	UntrackMustExist = types.UntrackMustExist
	UntrackAny       = types.UntrackAny
)
