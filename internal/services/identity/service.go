package identity

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"rad/internal/crypto"
	"rad/internal/domain"
)

// Result describes a freshly bootstrapped profile.
type Result struct {
	Profile domain.Profile
	Name    domain.Username
	Peer    domain.PeerID
	URN     domain.URN
}

// Service runs the interactive profile bootstrap.
type Service struct {
	registry domain.ProfileRegistry
	keys     domain.KeyCustody
	prompt   domain.Prompter
	out      domain.Reporter
	log      *zap.Logger
}

// New returns a bootstrap service.
func New(
	registry domain.ProfileRegistry,
	keys domain.KeyCustody,
	prompt domain.Prompter,
	out domain.Reporter,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{registry: registry, keys: keys, prompt: prompt, out: out, log: log}
}

// Init creates a profile, loads its key into the agent, signs and stores the
// person identity and finally marks the profile active.
//
// Steps:
//  1. Ask for a username until a non-empty one is given.
//  2. Ask for a passphrase and its confirmation until they match.
//  3. Create the profile and persist a fresh encrypted keypair.
//  4. Point git signing at the new key.
//  5. Load the key into the agent.
//  6. Sign and store the person record and make it the local identity.
//  7. Mark the profile active.
func (s *Service) Init(ctx context.Context) (res Result, err error) {
	s.out.Headline("Initializing your radicle identity")

	name, err := s.username()
	if err != nil {
		return Result{}, err
	}
	passphrase, err := s.passphrase()
	if err != nil {
		return Result{}, err
	}
	defer passphrase.Zero()

	tx := newTxn(s.log)
	spin := s.out.Spinner("Creating your identity...")
	defer func() {
		if err != nil {
			spin.Fail()
			tx.rollback()
			return
		}
		spin.Finish()
	}()

	// 3. Profile and keypair.
	profile, err := s.registry.Create()
	if err != nil {
		return Result{}, err
	}
	tx.onRollback("remove profile "+profile.ID.String(), func() error {
		return s.registry.Remove(profile.ID)
	})
	peer, err := s.keys.Generate(profile, passphrase)
	if err != nil {
		return Result{}, err
	}

	// 4. Git signing.
	signer, storage, err := s.keys.Storage(ctx, profile)
	if err != nil {
		return Result{}, err
	}
	if err := storage.ConfigureSigningKey(signer.PublicKey()); err != nil {
		return Result{}, err
	}

	// 5. Agent. Add consumes the passphrase.
	if _, err := s.keys.Add(ctx, profile, passphrase); err != nil {
		return Result{}, err
	}
	tx.onRollback("unload agent key", func() error {
		return s.keys.Remove(context.WithoutCancel(ctx), profile)
	})

	// 6. Person identity.
	person, err := s.person(ctx, name, signer)
	if err != nil {
		return Result{}, err
	}
	if err := storage.PutPerson(person); err != nil {
		return Result{}, err
	}
	if err := storage.SetLocal(person.URN); err != nil {
		return Result{}, err
	}

	// 7. Active marker, only once everything else is in place.
	if err := s.registry.SetActive(profile.ID); err != nil {
		return Result{}, err
	}

	s.log.Info("profile bootstrapped",
		zap.String("profile", profile.ID.String()),
		zap.String("peer", peer.String()),
		zap.String("urn", person.URN.String()),
	)
	return Result{Profile: profile, Name: name, Peer: peer, URN: person.URN}, nil
}

func (s *Service) username() (domain.Username, error) {
	for {
		v, err := s.prompt.Input("Username", "")
		if err != nil {
			return "", err
		}
		if v = strings.TrimSpace(v); v != "" {
			return domain.Username(v), nil
		}
		s.out.Warning("Username cannot be empty")
	}
}

func (s *Service) passphrase() (*domain.Passphrase, error) {
	for {
		first, err := s.prompt.Secret("Passphrase")
		if err != nil {
			return nil, err
		}
		again, err := s.prompt.Secret("Repeat passphrase")
		if err != nil {
			first.Zero()
			return nil, err
		}
		match := first.Equal(again)
		again.Zero()
		if match {
			return first, nil
		}
		first.Zero()
		s.out.Warning("Passphrases do not match. Please try again.")
	}
}

func (s *Service) person(ctx context.Context, name domain.Username, signer domain.Signer) (domain.Person, error) {
	doc := domain.PersonDoc{
		Name:        name,
		Peer:        signer.PeerID(),
		Delegations: []string{crypto.DelegationKey(signer.PublicKey())},
	}
	urn, err := crypto.URNFromDoc(doc)
	if err != nil {
		return domain.Person{}, err
	}
	raw, err := crypto.CanonicalDoc(doc)
	if err != nil {
		return domain.Person{}, err
	}
	sig, err := signer.Sign(ctx, raw)
	if err != nil {
		return domain.Person{}, err
	}
	return domain.Person{URN: urn, Doc: doc, Signer: signer.PeerID(), Signature: sig}, nil
}
