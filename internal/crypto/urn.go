package crypto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"

	"rad/internal/domain"
)

// URNPrefix is the method prefix of every git identity URN.
const URNPrefix = "rad:git:"

var errInvalidURN = errors.New("invalid urn")

// CanonicalDoc returns the byte form of doc that is hashed and signed.
func CanonicalDoc(doc domain.PersonDoc) ([]byte, error) {
	if doc.Delegations == nil {
		doc.Delegations = []string{}
	}
	return json.Marshal(doc)
}

// URNFromDoc derives the URN of a person document: a sha2-256 multihash of the
// canonical document, base32 multibase encoded.
func URNFromDoc(doc domain.PersonDoc) (domain.URN, error) {
	raw, err := CanonicalDoc(doc)
	if err != nil {
		return "", err
	}
	mh, err := multihash.Sum(raw, multihash.SHA2_256, -1)
	if err != nil {
		return "", err
	}
	id, err := multibase.Encode(multibase.Base32, mh)
	if err != nil {
		return "", err
	}
	return domain.URN(URNPrefix + id), nil
}

// ParseURN validates s as a git identity URN.
func ParseURN(s string) (domain.URN, error) {
	id, ok := strings.CutPrefix(s, URNPrefix)
	if !ok || id == "" {
		return "", fmt.Errorf("%w %q: expected %s<id>", errInvalidURN, s, URNPrefix)
	}
	_, raw, err := multibase.Decode(id)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", errInvalidURN, s, err)
	}
	if _, err := multihash.Cast(raw); err != nil {
		return "", fmt.Errorf("%w %q: %v", errInvalidURN, s, err)
	}
	return domain.URN(s), nil
}

// URNID returns the id part of urn (without the method prefix).
func URNID(urn domain.URN) string {
	return strings.TrimPrefix(urn.String(), URNPrefix)
}

// DelegationKey encodes pub as a delegation entry of a person document.
func DelegationKey(pub domain.Ed25519Public) string {
	s, _ := multibase.Encode(multibase.Base58BTC, pub.Slice())
	return s
}

// VerifyPerson checks that p's signature covers its document, that the signer
// is the document's peer and that the URN matches the document.
func VerifyPerson(p domain.Person) error {
	if p.Signer != p.Doc.Peer {
		return fmt.Errorf("person %s: signer %s is not the document peer", p.URN, p.Signer)
	}
	urn, err := URNFromDoc(p.Doc)
	if err != nil {
		return err
	}
	if urn != p.URN {
		return fmt.Errorf("person %s: urn does not match document", p.URN)
	}
	pub, err := PublicKeyFromPeerID(p.Signer)
	if err != nil {
		return err
	}
	raw, err := CanonicalDoc(p.Doc)
	if err != nil {
		return err
	}
	if !VerifyEd25519(pub, raw, p.Signature) {
		return fmt.Errorf("person %s: bad signature", p.URN)
	}
	return nil
}
