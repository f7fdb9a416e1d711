package app_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rad/internal/agent"
	"rad/internal/app"
	"rad/internal/domain"
)

func clearEnv(t *testing.T) {
	t.Setenv(agent.SocketEnv, "")
	t.Setenv(app.AgentTimeoutEnv, "")
	t.Setenv(app.HomeEnv, "")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()

	cfg, err := app.Load(home, "", nil)
	require.NoError(t, err)
	assert.Equal(t, home, cfg.Home)
	assert.Equal(t, agent.DefaultTimeout, cfg.Timeout())
	assert.Equal(t, domain.RecommendedKDF(), cfg.KDFParams())
	assert.Empty(t, cfg.AgentSocket)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, app.ConfigFile), []byte(
		"agent_socket: /tmp/file.sock\nagent_timeout: 3s\nkdf:\n  n: 16\n  r: 8\n  p: 1\n",
	), 0o600))

	cfg, err := app.Load(home, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/file.sock", cfg.AgentSocket)
	assert.Equal(t, 3*time.Second, cfg.Timeout())
	assert.Equal(t, domain.KDFParams{N: 16, R: 8, P: 1}, cfg.KDFParams())

	t.Setenv(agent.SocketEnv, "/tmp/env.sock")
	t.Setenv(app.AgentTimeoutEnv, "250ms")
	cfg, err = app.Load(home, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.sock", cfg.AgentSocket)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout())
}

func TestLoad_FlagsWinWhenSet(t *testing.T) {
	clearEnv(t)
	t.Setenv(agent.SocketEnv, "/tmp/env.sock")

	flags := pflag.NewFlagSet("rad", pflag.ContinueOnError)
	flags.String("agent-socket", "", "")
	flags.String("agent-timeout", "", "")
	flags.Bool("verbose", false, "")

	cfg, err := app.Load(t.TempDir(), "", flags)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.sock", cfg.AgentSocket, "unset flags do not override")
	assert.Equal(t, agent.DefaultTimeout, cfg.Timeout())

	require.NoError(t, flags.Parse([]string{"--agent-socket", "/tmp/flag.sock", "--verbose"}))
	cfg, err = app.Load(t.TempDir(), "", flags)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/flag.sock", cfg.AgentSocket)
	assert.True(t, cfg.Verbose)
}

func TestLoad_ExplicitPath(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("verbose: true\n"), 0o600))

	cfg, err := app.Load(t.TempDir(), path, nil)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
}

func TestLoad_Malformed(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, app.ConfigFile), []byte("kdf: [oops"), 0o600))
	_, err := app.Load(home, "", nil)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := app.DefaultConfig(t.TempDir())
	cfg.KDF.N = 1000
	assert.Error(t, cfg.Validate())

	cfg = app.DefaultConfig(t.TempDir())
	cfg.AgentTimeout = "soon"
	assert.Error(t, cfg.Validate())

	cfg = app.DefaultConfig("")
	assert.Error(t, cfg.Validate())
}

func TestResolveHome(t *testing.T) {
	t.Setenv(app.HomeEnv, "/env/home")
	got, err := app.ResolveHome("/flag/home")
	require.NoError(t, err)
	assert.Equal(t, "/flag/home", got)

	got, err = app.ResolveHome("")
	require.NoError(t, err)
	assert.Equal(t, "/env/home", got)

	t.Setenv(app.HomeEnv, "")
	t.Setenv("HOME", "/users/alice")
	got, err = app.ResolveHome("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/users/alice", ".radicle"), got)
}
