package crypto_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rad/internal/crypto"
	"rad/internal/domain"
)

func TestEd25519_SignVerify(t *testing.T) {
	priv, pub, err := crypto.GenerateEd25519()
	require.NoError(t, err)
	assert.Equal(t, pub, priv.Public())

	msg := []byte("hello")
	sig := crypto.SignEd25519(&priv, msg)
	assert.True(t, crypto.VerifyEd25519(pub, msg, sig))
	assert.False(t, crypto.VerifyEd25519(pub, []byte("other"), sig))
	assert.False(t, crypto.VerifyEd25519(pub, msg, sig[:10]))
}

func TestEd25519FromSeed_Deterministic(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}
	a, err := crypto.Ed25519FromSeed(seed)
	require.NoError(t, err)
	b, err := crypto.Ed25519FromSeed(seed)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = crypto.Ed25519FromSeed(seed[:31])
	assert.Error(t, err)
}

func TestPeerID_RoundTrip(t *testing.T) {
	_, pub, err := crypto.GenerateEd25519()
	require.NoError(t, err)

	id, err := crypto.PeerIDFromPublicKey(pub)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	parsed, err := crypto.ParsePeerID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	got, err := crypto.PublicKeyFromPeerID(id)
	require.NoError(t, err)
	assert.Equal(t, pub, got)
}

func TestParsePeerID_Invalid(t *testing.T) {
	_, err := crypto.ParsePeerID("not-a-peer")
	assert.Error(t, err)
}

func TestURN_DerivedFromDoc(t *testing.T) {
	_, pub, err := crypto.GenerateEd25519()
	require.NoError(t, err)
	peer, err := crypto.PeerIDFromPublicKey(pub)
	require.NoError(t, err)

	doc := domain.PersonDoc{Name: "alice", Peer: peer}
	a, err := crypto.URNFromDoc(doc)
	require.NoError(t, err)
	b, err := crypto.URNFromDoc(doc)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a.String(), crypto.URNPrefix))

	doc.Name = "bob"
	c, err := crypto.URNFromDoc(doc)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	parsed, err := crypto.ParseURN(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)
}

func TestParseURN_Invalid(t *testing.T) {
	for _, s := range []string{"", "rad:git:", "urn:foo", "rad:git:!!!", "rad:git:bafoo"} {
		_, err := crypto.ParseURN(s)
		assert.Error(t, err, s)
	}
}

func TestAuthorizedKey(t *testing.T) {
	_, pub, err := crypto.GenerateEd25519()
	require.NoError(t, err)

	s, err := crypto.AuthorizedKey(pub)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s, "ssh-ed25519 "))
	assert.NotContains(t, s, "\n")
}

func TestVerifyPerson(t *testing.T) {
	priv, pub, err := crypto.GenerateEd25519()
	require.NoError(t, err)
	peer, err := crypto.PeerIDFromPublicKey(pub)
	require.NoError(t, err)

	doc := domain.PersonDoc{Name: "alice", Peer: peer, Delegations: []string{crypto.DelegationKey(pub)}}
	assert.True(t, strings.HasPrefix(doc.Delegations[0], "z"))
	urn, err := crypto.URNFromDoc(doc)
	require.NoError(t, err)
	raw, err := crypto.CanonicalDoc(doc)
	require.NoError(t, err)

	p := domain.Person{URN: urn, Doc: doc, Signer: peer, Signature: crypto.SignEd25519(&priv, raw)}
	require.NoError(t, crypto.VerifyPerson(p))

	tampered := p
	tampered.Doc.Name = "mallory"
	assert.Error(t, crypto.VerifyPerson(tampered))

	forged := p
	forged.Signature = append([]byte(nil), p.Signature...)
	forged.Signature[0] ^= 0xff
	assert.Error(t, crypto.VerifyPerson(forged))
}
