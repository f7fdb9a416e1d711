package profile

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rad/internal/domain"
	"rad/internal/gitstore"
)

// Service resolves and selects profiles over a ProfileStore.
type Service struct {
	store  domain.ProfileStore
	prompt domain.Prompter
	log    *zap.Logger
}

// New returns a registry over store. prompt is only used by Select.
func New(store domain.ProfileStore, prompt domain.Prompter, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, prompt: prompt, log: log}
}

// List returns the profiles holding a key, sorted by id.
func (s *Service) List() ([]domain.Profile, error) { return s.store.ListProfiles() }

// Default returns the active profile. It fails with domain.ErrNoActiveProfile
// when none is recorded or the recorded profile is gone.
func (s *Service) Default() (domain.Profile, error) {
	id, ok, err := s.store.ActiveProfile()
	if err != nil {
		return domain.Profile{}, err
	}
	if !ok {
		return domain.Profile{}, domain.ErrNoActiveProfile
	}
	p, err := s.store.LoadProfile(id)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return domain.Profile{}, fmt.Errorf("%w: %s no longer exists", domain.ErrNoActiveProfile, id)
	}
	return p, err
}

// Select asks the user to pick one of profiles, marking current. With a single
// profile it returns current without prompting.
func (s *Service) Select(profiles []domain.Profile, current domain.Profile) (domain.Profile, error) {
	if len(profiles) < 2 {
		return current, nil
	}
	options := make([]string, len(profiles))
	marked := -1
	for i, p := range profiles {
		options[i] = p.ID.String()
		if p.ID == current.ID {
			marked = i
		}
	}
	i, err := s.prompt.Choose("Select a profile", options, marked)
	if err != nil {
		return domain.Profile{}, err
	}
	if i < 0 || i >= len(profiles) {
		return domain.Profile{}, fmt.Errorf("profile choice %d out of range", i)
	}
	return profiles[i], nil
}

// SetActive records id as the active profile.
func (s *Service) SetActive(id domain.ProfileID) error {
	if err := s.store.SetActiveProfile(id); err != nil {
		return err
	}
	s.log.Debug("active profile set", zap.String("profile", id.String()))
	return nil
}

// Create makes a fresh profile with a random id and an empty monorepo.
func (s *Service) Create() (domain.Profile, error) {
	p, err := s.store.CreateProfile(domain.ProfileID(uuid.NewString()))
	if err != nil {
		return domain.Profile{}, err
	}
	if _, err := gitstore.Init(p.GitDir()); err != nil {
		_ = s.store.RemoveProfile(p.ID)
		return domain.Profile{}, err
	}
	s.log.Debug("profile created", zap.String("profile", p.ID.String()), zap.String("root", p.Root))
	return p, nil
}

// Remove deletes the profile and clears the active marker if it named it.
func (s *Service) Remove(id domain.ProfileID) error { return s.store.RemoveProfile(id) }

// Compile-time assertion that Service implements domain.ProfileRegistry.
var _ domain.ProfileRegistry = (*Service)(nil)
