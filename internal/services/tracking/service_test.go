package tracking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"rad/internal/agent"
	"rad/internal/crypto"
	"rad/internal/domain"
	"rad/internal/services/keys"
	"rad/internal/services/profile"
	"rad/internal/services/tracking"
	"rad/internal/store"
)

func newPeer(t *testing.T) domain.PeerID {
	t.Helper()
	_, pub, err := crypto.GenerateEd25519()
	require.NoError(t, err)
	id, err := crypto.PeerIDFromPublicKey(pub)
	require.NoError(t, err)
	return id
}

func newURN(t *testing.T) domain.URN {
	t.Helper()
	urn, err := crypto.URNFromDoc(domain.PersonDoc{Name: "remote", Peer: newPeer(t)})
	require.NoError(t, err)
	return urn
}

// setup returns a tracking service over an active profile. Tracking never
// talks to the agent, so the socket is left unserved.
func setup(t *testing.T, activate bool) *tracking.Service {
	t.Helper()
	log := zaptest.NewLogger(t)
	reg := profile.New(store.NewProfileFileStore(t.TempDir()), nil, log)
	ks := keys.New(
		store.NewKeyFileStore(domain.KDFParams{N: 1 << 4, R: 8, P: 1}),
		agent.New(t.TempDir()+"/none.sock", time.Second, log),
		log,
	)
	p, err := reg.Create()
	require.NoError(t, err)
	_, err = ks.Generate(p, domain.NewPassphrase([]byte("pw")))
	require.NoError(t, err)
	if activate {
		require.NoError(t, reg.SetActive(p.ID))
	}
	return tracking.New(reg, ks, log)
}

func TestUntrack_NoActiveProfile(t *testing.T) {
	svc := setup(t, false)
	err := svc.Untrack(context.Background(), newURN(t), newPeer(t))
	require.ErrorIs(t, err, domain.ErrNoActiveProfile)
}

func TestUntrack_EdgeMissing(t *testing.T) {
	svc := setup(t, true)
	err := svc.Untrack(context.Background(), newURN(t), newPeer(t))
	require.ErrorIs(t, err, domain.ErrTrackingEdgeMissing)
}

func TestUntrack_RemovesOnlyThatEdge(t *testing.T) {
	svc := setup(t, true)
	ctx := context.Background()
	urn := newURN(t)
	p1, p2 := newPeer(t), newPeer(t)

	for _, p := range []domain.PeerID{p1, p2} {
		added, err := svc.Track(ctx, urn, p)
		require.NoError(t, err)
		assert.True(t, added)
	}
	added, err := svc.Track(ctx, urn, p1)
	require.NoError(t, err)
	assert.False(t, added)

	require.NoError(t, svc.Untrack(ctx, urn, p1))
	peers, err := svc.Tracked(ctx, urn)
	require.NoError(t, err)
	assert.Equal(t, []domain.PeerID{p2}, peers)
}

func TestUntrackAll(t *testing.T) {
	svc := setup(t, true)
	ctx := context.Background()
	urn := newURN(t)

	removed, err := svc.UntrackAll(ctx, urn)
	require.NoError(t, err)
	assert.Empty(t, removed)

	want := []domain.PeerID{newPeer(t), newPeer(t), newPeer(t)}
	for _, p := range want {
		_, err := svc.Track(ctx, urn, p)
		require.NoError(t, err)
	}
	removed, err = svc.UntrackAll(ctx, urn)
	require.NoError(t, err)
	assert.ElementsMatch(t, want, removed)

	peers, err := svc.Tracked(ctx, urn)
	require.NoError(t, err)
	assert.Empty(t, peers)
}
