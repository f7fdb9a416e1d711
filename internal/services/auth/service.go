package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"rad/internal/domain"
	"rad/internal/services/identity"
)

// Bootstrapper creates a brand new profile.
type Bootstrapper interface {
	Init(ctx context.Context) (identity.Result, error)
}

// Options controls a single auth run.
type Options struct {
	// Init forces a new profile even when profiles exist.
	Init bool
}

// Result describes the profile left active by Run.
type Result struct {
	Profile      domain.Profile
	Peer         domain.PeerID
	Bootstrapped bool
	Activated    bool
}

// Service orchestrates profile unlocking.
type Service struct {
	registry  domain.ProfileRegistry
	keys      domain.KeyCustody
	bootstrap Bootstrapper
	prompt    domain.Prompter
	out       domain.Reporter
	log       *zap.Logger
}

// New returns an auth orchestrator.
func New(
	registry domain.ProfileRegistry,
	keys domain.KeyCustody,
	bootstrap Bootstrapper,
	prompt domain.Prompter,
	out domain.Reporter,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		registry:  registry,
		keys:      keys,
		bootstrap: bootstrap,
		prompt:    prompt,
		out:       out,
		log:       log,
	}
}

// Run unlocks a profile, bootstrapping one first when none exist or opts.Init
// is set.
func (s *Service) Run(ctx context.Context, opts Options) (Result, error) {
	profiles, err := s.registry.List()
	if err != nil {
		return Result{}, err
	}
	if opts.Init || len(profiles) == 0 {
		return s.initialize(ctx)
	}

	current, hasCurrent, err := s.current(profiles)
	if err != nil {
		return Result{}, err
	}
	if hasCurrent {
		s.out.Info("Your active profile is " + s.out.Highlight(current.ID.String()))
	}

	selected, err := s.registry.Select(profiles, current)
	if err != nil {
		return Result{}, err
	}
	s.log.Debug("profile selected", zap.String("profile", selected.ID.String()))

	if err := s.unlock(ctx, selected); err != nil {
		return Result{}, err
	}

	res := Result{Profile: selected}
	if !hasCurrent || selected.ID != current.ID {
		if err := s.registry.SetActive(selected.ID); err != nil {
			return Result{}, err
		}
		s.out.Success("Profile " + s.out.Highlight(selected.ID.String()) + " activated")
		res.Activated = true
	}

	signer, storage, err := s.keys.Storage(ctx, selected)
	if err != nil {
		return Result{}, err
	}
	if err := storage.ConfigureSigningKey(signer.PublicKey()); err != nil {
		return Result{}, err
	}
	res.Peer = signer.PeerID()
	return res, nil
}

func (s *Service) initialize(ctx context.Context) (Result, error) {
	boot, err := s.bootstrap.Init(ctx)
	if err != nil {
		return Result{}, err
	}
	s.out.Success("Profile " + s.out.Highlight(boot.Profile.ID.String()) + " created")
	s.out.Info("Your radicle Peer ID is " + s.out.Highlight(boot.Peer.String()))
	s.out.Info("Your personal URN is " + s.out.Highlight(boot.URN.String()))
	return Result{Profile: boot.Profile, Peer: boot.Peer, Bootstrapped: true, Activated: true}, nil
}

// current resolves the active profile. When the marker is missing the first
// listed profile stands in for it.
func (s *Service) current(profiles []domain.Profile) (domain.Profile, bool, error) {
	p, err := s.registry.Default()
	if errors.Is(err, domain.ErrNoActiveProfile) {
		s.out.Warning("No active profile is set")
		return profiles[0], false, nil
	}
	if err != nil {
		return domain.Profile{}, false, err
	}
	return p, true, nil
}

func (s *Service) unlock(ctx context.Context, profile domain.Profile) error {
	ready, err := s.keys.IsReady(ctx, profile)
	if err != nil {
		return err
	}
	if ready {
		s.out.Success("Signing key already in ssh-agent")
		return nil
	}

	s.out.Warning("Adding your radicle key to ssh-agent")
	passphrase, err := s.prompt.Secret("Passphrase")
	if err != nil {
		return err
	}
	spin := s.out.Spinner("Unlocking...")
	if _, err := s.keys.Add(ctx, profile, passphrase); err != nil {
		spin.Fail()
		if errors.Is(err, domain.ErrInvalidPassphrase) {
			return fmt.Errorf("%w supplied", domain.ErrInvalidPassphrase)
		}
		return err
	}
	spin.Finish()
	s.out.Success("Radicle key added to ssh-agent")
	return nil
}
