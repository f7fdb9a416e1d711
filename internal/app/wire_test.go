package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"rad/internal/agent/agenttest"
	"rad/internal/app"
	"rad/internal/domain"
	"rad/internal/services/auth"
	"rad/internal/term/termtest"
)

func TestWire_AuthThenTrack(t *testing.T) {
	srv := agenttest.Serve(t)
	cfg := app.DefaultConfig(t.TempDir())
	cfg.AgentSocket = srv.Socket
	cfg.KDF = app.KDFConfig{N: 1 << 4, R: 8, P: 1}

	tty := &termtest.Prompter{Inputs: []string{"alice"}, Secrets: []string{"correct-pw", "correct-pw"}}
	out := &termtest.Reporter{}
	w, err := app.NewWire(cfg, zaptest.NewLogger(t), struct {
		*termtest.Prompter
		*termtest.Reporter
	}{tty, out})
	require.NoError(t, err)
	ctx := context.Background()

	res, err := w.Auth.Run(ctx, auth.Options{})
	require.NoError(t, err)
	assert.True(t, res.Bootstrapped)
	assert.True(t, out.Contains("info", "Peer ID"))

	// A second run finds the key already loaded and asks nothing.
	res2, err := w.Auth.Run(ctx, auth.Options{})
	require.NoError(t, err)
	assert.Equal(t, res.Profile, res2.Profile)
	assert.Empty(t, tty.Secrets)

	self, err := w.Identity.Self(ctx)
	require.NoError(t, err)
	urn, peer := self.Person.URN, self.Person.Signer

	err = w.Tracking.Untrack(ctx, urn, peer)
	require.ErrorIs(t, err, domain.ErrTrackingEdgeMissing)

	added, err := w.Tracking.Track(ctx, urn, peer)
	require.NoError(t, err)
	assert.True(t, added)
	require.NoError(t, w.Tracking.Untrack(ctx, urn, peer))
}

func TestWire_InvalidConfig(t *testing.T) {
	cfg := app.DefaultConfig(t.TempDir())
	cfg.KDF.N = 3
	_, err := app.NewWire(cfg, nil, nil)
	require.Error(t, err)
}
