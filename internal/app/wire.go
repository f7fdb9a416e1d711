package app

import (
	"go.uber.org/zap"

	"rad/internal/agent"
	"rad/internal/domain"
	"rad/internal/services/auth"
	"rad/internal/services/identity"
	"rad/internal/services/keys"
	"rad/internal/services/profile"
	"rad/internal/services/tracking"
	"rad/internal/store"
)

// Terminal is the interactive surface the services talk to.
type Terminal interface {
	domain.Prompter
	domain.Reporter
}

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Config   *Config
	Log      *zap.Logger
	Agent    *agent.Client
	Profiles *profile.Service
	Keys     *keys.Service
	Identity *identity.Service
	Auth     *auth.Service
	Tracking *tracking.Service
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg *Config, log *zap.Logger, tty Terminal) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	// File-based stores
	profileStore := store.NewProfileFileStore(cfg.Home)
	keyStore := store.NewKeyFileStore(cfg.KDFParams())

	// Signing agent, dialled per call
	agentClient := agent.New(cfg.AgentSocket, cfg.Timeout(), log.Named("agent"))

	// High-level services
	profiles := profile.New(profileStore, tty, log.Named("profile"))
	keySvc := keys.New(keyStore, agentClient, log.Named("keys"))
	ids := identity.New(profiles, keySvc, tty, tty, log.Named("identity"))
	authSvc := auth.New(profiles, keySvc, ids, tty, tty, log.Named("auth"))
	trackSvc := tracking.New(profiles, keySvc, log.Named("tracking"))

	return &Wire{
		Config:   cfg,
		Log:      log,
		Agent:    agentClient,
		Profiles: profiles,
		Keys:     keySvc,
		Identity: ids,
		Auth:     authSvc,
		Tracking: trackSvc,
	}, nil
}
