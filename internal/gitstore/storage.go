package gitstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	"rad/internal/crypto"
	"rad/internal/domain"
)

const (
	userSection       = "user"
	signingKeyOption  = "signingkey"
	gpgSection        = "gpg"
	gpgFormatOption   = "format"
	radSection        = "rad"
	selfOption        = "self"
	trackingSection   = "tracking"
	peerOption        = "peer"
	anyPeer           = "*"
	signingKeyLiteral = "key::"
)

// Storage wraps a profile's bare git monorepo.
type Storage struct {
	path string
	repo *git.Repository
	mu   sync.Mutex
}

// Init creates a bare repository at path.
func Init(path string) (*Storage, error) {
	repo, err := git.PlainInit(path, true)
	if err != nil {
		return nil, fmt.Errorf("init monorepo %s: %w", path, err)
	}
	return &Storage{path: path, repo: repo}, nil
}

// Open opens the repository at path.
func Open(path string) (*Storage, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("open monorepo %s: %w", path, err)
	}
	return &Storage{path: path, repo: repo}, nil
}

// Path returns the repository location.
func (s *Storage) Path() string { return s.path }

// ConfigureSigningKey points git's ssh signing at pub.
func (s *Storage) ConfigureSigningKey(pub domain.Ed25519Public) error {
	key, err := crypto.AuthorizedKey(pub)
	if err != nil {
		return err
	}
	return s.updateConfig(func(cfg *config.Config) (bool, error) {
		cfg.Raw.Section(userSection).SetOption(signingKeyOption, signingKeyLiteral+key)
		cfg.Raw.Section(gpgSection).SetOption(gpgFormatOption, "ssh")
		return true, nil
	})
}

// SigningKey returns the configured signing key reference.
func (s *Storage) SigningKey() (string, bool, error) {
	return s.option(userSection, signingKeyOption)
}

// SetLocal records urn as the local identity.
func (s *Storage) SetLocal(urn domain.URN) error {
	return s.updateConfig(func(cfg *config.Config) (bool, error) {
		cfg.Raw.Section(radSection).SetOption(selfOption, urn.String())
		return true, nil
	})
}

// Local returns the local identity URN.
func (s *Storage) Local() (domain.URN, bool, error) {
	v, ok, err := s.option(radSection, selfOption)
	return domain.URN(v), ok, err
}

// PutPerson stores person as a blob referenced by its identity ref.
func (s *Storage) PutPerson(person domain.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.Marshal(person)
	if err != nil {
		return err
	}
	obj := s.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	w, err := obj.Writer()
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	h, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return fmt.Errorf("write identity blob: %w", err)
	}
	return s.repo.Storer.SetReference(plumbing.NewHashReference(identityRef(person.URN), h))
}

// Person loads the person stored under urn.
func (s *Storage) Person(urn domain.URN) (domain.Person, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref, err := s.repo.Reference(identityRef(urn), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return domain.Person{}, false, nil
	}
	if err != nil {
		return domain.Person{}, false, err
	}
	blob, err := s.repo.BlobObject(ref.Hash())
	if err != nil {
		return domain.Person{}, false, fmt.Errorf("read identity blob: %w", err)
	}
	r, err := blob.Reader()
	if err != nil {
		return domain.Person{}, false, err
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return domain.Person{}, false, err
	}
	var p domain.Person
	if err := json.Unmarshal(b, &p); err != nil {
		return domain.Person{}, false, fmt.Errorf("decode identity %s: %w", urn, err)
	}
	return p, true, nil
}

func identityRef(urn domain.URN) plumbing.ReferenceName {
	return plumbing.ReferenceName("refs/namespaces/" + crypto.URNID(urn) + "/refs/rad/id")
}

func (s *Storage) option(section, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.repo.Config()
	if err != nil {
		return "", false, err
	}
	if !cfg.Raw.HasSection(section) {
		return "", false, nil
	}
	sec := cfg.Raw.Section(section)
	if !sec.HasOption(key) {
		return "", false, nil
	}
	return sec.Option(key), true, nil
}

// updateConfig applies fn to the repository config and saves it when fn
// reports a change.
func (s *Storage) updateConfig(fn func(cfg *config.Config) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.repo.Config()
	if err != nil {
		return err
	}
	changed, err := fn(cfg)
	if err != nil || !changed {
		return err
	}
	if err := s.repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("write monorepo config: %w", err)
	}
	return nil
}

// Compile-time assertion that Storage implements domain.Storage.
var _ domain.Storage = (*Storage)(nil)
