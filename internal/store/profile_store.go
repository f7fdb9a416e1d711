package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"rad/internal/domain"
)

const (
	profilesDir = "profiles"
	activeFile  = "active.yaml"
)

// ErrInvalidProfileID is returned for ids that do not name a single directory
// entry under the profiles directory.
var ErrInvalidProfileID = errors.New("invalid profile id")

// activeRecord is the on-disk form of the active profile marker.
type activeRecord struct {
	Active domain.ProfileID `yaml:"active"`
}

// ProfileFileStore lays out profiles under <home>/profiles/<id> and keeps the
// active profile marker in <home>/active.yaml.
type ProfileFileStore struct {
	home string
	mu   sync.Mutex
}

// NewProfileFileStore returns a ProfileFileStore rooted at home.
func NewProfileFileStore(home string) *ProfileFileStore {
	return &ProfileFileStore{home: home}
}

func validID(id domain.ProfileID) error {
	name := id.String()
	if name == "" || name == "." || name == ".." ||
		filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidProfileID, name)
	}
	return nil
}

func (s *ProfileFileStore) profile(id domain.ProfileID) domain.Profile {
	return domain.Profile{ID: id, Root: filepath.Join(s.home, profilesDir, id.String())}
}

// ListProfiles returns every profile whose root holds a key file, sorted by id.
// A missing profiles directory yields an empty list.
func (s *ProfileFileStore) ListProfiles() ([]domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(filepath.Join(s.home, profilesDir))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []domain.Profile
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p := s.profile(domain.ProfileID(e.Name()))
		if _, err := os.Stat(p.KeyFile()); err != nil {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// LoadProfile resolves id to its profile root. A root without a key file is
// not a profile, the same rule ListProfiles applies.
func (s *ProfileFileStore) LoadProfile(id domain.ProfileID) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validID(id); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %w", domain.ErrProfileNotFound, err)
	}
	p := s.profile(id)
	info, err := os.Stat(p.Root)
	if errors.Is(err, os.ErrNotExist) || (err == nil && !info.IsDir()) {
		return domain.Profile{}, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, id)
	}
	if err != nil {
		return domain.Profile{}, err
	}
	if _, err := os.Stat(p.KeyFile()); errors.Is(err, os.ErrNotExist) {
		return domain.Profile{}, fmt.Errorf("%w: %s has no key", domain.ErrProfileNotFound, id)
	} else if err != nil {
		return domain.Profile{}, err
	}
	return p, nil
}

// CreateProfile creates a fresh, empty profile root for id. It fails if the
// root already exists.
func (s *ProfileFileStore) CreateProfile(id domain.ProfileID) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validID(id); err != nil {
		return domain.Profile{}, err
	}
	p := s.profile(id)
	if err := os.MkdirAll(filepath.Dir(p.Root), 0o700); err != nil {
		return domain.Profile{}, err
	}
	if err := os.Mkdir(p.Root, 0o700); err != nil {
		return domain.Profile{}, fmt.Errorf("create profile root: %w", err)
	}
	if err := os.Mkdir(p.KeysDir(), 0o700); err != nil {
		return domain.Profile{}, fmt.Errorf("create keys dir: %w", err)
	}
	return p, nil
}

// RemoveProfile deletes the profile root and clears the active marker if it
// pointed at id.
func (s *ProfileFileStore) RemoveProfile(id domain.ProfileID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validID(id); err != nil {
		return err
	}
	if err := os.RemoveAll(s.profile(id).Root); err != nil {
		return err
	}
	var rec activeRecord
	if err := readYAML(filepath.Join(s.home, activeFile), &rec); err != nil {
		return err
	}
	if rec.Active == id {
		return os.Remove(filepath.Join(s.home, activeFile))
	}
	return nil
}

// ActiveProfile returns the id recorded as active and whether one is set.
func (s *ProfileFileStore) ActiveProfile() (domain.ProfileID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec activeRecord
	if err := readYAML(filepath.Join(s.home, activeFile), &rec); err != nil {
		return "", false, err
	}
	if rec.Active == "" {
		return "", false, nil
	}
	return rec.Active, true, nil
}

// SetActiveProfile records id as active using write-temp-then-rename.
func (s *ProfileFileStore) SetActiveProfile(id domain.ProfileID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validID(id); err != nil {
		return err
	}
	return writeYAML(filepath.Join(s.home, activeFile), activeRecord{Active: id}, 0o600)
}

// Compile-time assertion that ProfileFileStore implements domain.ProfileStore.
var _ domain.ProfileStore = (*ProfileFileStore)(nil)
