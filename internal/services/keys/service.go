package keys

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"rad/internal/crypto"
	"rad/internal/domain"
	"rad/internal/gitstore"
)

// ErrInvalidSignature is returned when the agent hands back a signature that
// does not verify under the profile key.
var ErrInvalidSignature = errors.New("agent produced an invalid signature")

// Service manages a profile's key file and its presence in the signing agent.
type Service struct {
	keys  domain.KeyStore
	agent domain.SigningAgent
	log   *zap.Logger
}

// New returns a key custody service over the given key store and agent.
func New(keys domain.KeyStore, agent domain.SigningAgent, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{keys: keys, agent: agent, log: log}
}

// Generate creates a fresh keypair for profile and persists it encrypted under
// passphrase. The passphrase is left intact for the caller.
func (s *Service) Generate(profile domain.Profile, passphrase *domain.Passphrase) (domain.PeerID, error) {
	priv, pub, err := crypto.GenerateEd25519()
	if err != nil {
		return "", err
	}
	defer priv.Wipe()

	if err := s.keys.SaveKey(profile.KeyFile(), passphrase, &priv); err != nil {
		return "", err
	}
	id, err := crypto.PeerIDFromPublicKey(pub)
	if err != nil {
		return "", err
	}
	s.log.Debug("generated profile key", zap.String("profile", profile.ID.String()), zap.String("peer", id.String()))
	return id, nil
}

// IsReady reports whether the profile key is loaded in the agent.
func (s *Service) IsReady(ctx context.Context, profile domain.Profile) (bool, error) {
	pub, err := s.keys.PublicKey(profile.KeyFile())
	if err != nil {
		return false, err
	}
	return s.agent.IsLoaded(ctx, pub)
}

// Add decrypts the profile key and loads it into the agent. It consumes
// passphrase: the secret is zeroed before Add returns, whatever the outcome.
// Loading an already loaded key succeeds.
func (s *Service) Add(
	ctx context.Context,
	profile domain.Profile,
	passphrase *domain.Passphrase,
) (domain.ProfileID, error) {
	defer passphrase.Zero()

	priv, err := s.keys.LoadKey(profile.KeyFile(), passphrase)
	if err != nil {
		return "", err
	}
	defer priv.Wipe()

	if err := s.agent.Load(ctx, &priv, comment(profile.ID)); err != nil {
		return "", err
	}
	s.log.Debug("loaded profile key into agent", zap.String("profile", profile.ID.String()))
	return profile.ID, nil
}

// Remove unloads the profile key from the agent. A key that is not loaded is
// not an error.
func (s *Service) Remove(ctx context.Context, profile domain.Profile) error {
	pub, err := s.keys.PublicKey(profile.KeyFile())
	if err != nil {
		return err
	}
	return s.agent.Unload(ctx, pub)
}

// Storage returns a signer bound to the profile key and the profile's opened
// monorepo. The signer goes through the agent, so signing before Add fails
// with domain.ErrSigningKeyNotReady.
func (s *Service) Storage(ctx context.Context, profile domain.Profile) (domain.Signer, domain.Storage, error) {
	pub, err := s.keys.PublicKey(profile.KeyFile())
	if err != nil {
		return nil, nil, err
	}
	id, err := crypto.PeerIDFromPublicKey(pub)
	if err != nil {
		return nil, nil, err
	}
	st, err := gitstore.Open(profile.GitDir())
	if err != nil {
		return nil, nil, err
	}
	return &signer{agent: s.agent, pub: pub, id: id}, st, nil
}

func comment(id domain.ProfileID) string { return "rad:" + id.String() }

// signer signs through the agent and checks every signature before returning it.
type signer struct {
	agent domain.SigningAgent
	pub   domain.Ed25519Public
	id    domain.PeerID
}

func (s *signer) PeerID() domain.PeerID { return s.id }

func (s *signer) PublicKey() domain.Ed25519Public { return s.pub }

func (s *signer) Sign(ctx context.Context, msg []byte) ([]byte, error) {
	sig, err := s.agent.Sign(ctx, s.pub, msg)
	if err != nil {
		return nil, err
	}
	if !crypto.VerifyEd25519(s.pub, msg, sig) {
		return nil, fmt.Errorf("%w for %s", ErrInvalidSignature, s.id)
	}
	return sig, nil
}

// Compile-time assertions.
var (
	_ domain.KeyCustody = (*Service)(nil)
	_ domain.Signer     = (*signer)(nil)
)
