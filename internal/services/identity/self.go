package identity

import (
	"context"
	"errors"
	"fmt"

	"rad/internal/crypto"
	"rad/internal/domain"
)

// ErrNoLocalIdentity is returned when the active profile has no person
// identity recorded.
var ErrNoLocalIdentity = errors.New("no local identity")

// Self describes the active profile's identity.
type Self struct {
	Profile    domain.Profile
	Person     domain.Person
	SigningKey string
	Ready      bool
}

// Self loads and verifies the local identity of the active profile.
func (s *Service) Self(ctx context.Context) (Self, error) {
	profile, err := s.registry.Default()
	if err != nil {
		return Self{}, err
	}
	_, storage, err := s.keys.Storage(ctx, profile)
	if err != nil {
		return Self{}, err
	}
	urn, ok, err := storage.Local()
	if err != nil {
		return Self{}, err
	}
	if !ok {
		return Self{}, fmt.Errorf("%w in profile %s", ErrNoLocalIdentity, profile.ID)
	}
	person, ok, err := storage.Person(urn)
	if err != nil {
		return Self{}, err
	}
	if !ok {
		return Self{}, fmt.Errorf("%w: %s is not stored", ErrNoLocalIdentity, urn)
	}
	if err := crypto.VerifyPerson(person); err != nil {
		return Self{}, err
	}
	key, _, err := storage.SigningKey()
	if err != nil {
		return Self{}, err
	}
	ready, err := s.keys.IsReady(ctx, profile)
	if err != nil {
		return Self{}, err
	}
	return Self{Profile: profile, Person: person, SigningKey: key, Ready: ready}, nil
}
