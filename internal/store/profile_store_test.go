package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rad/internal/crypto"
	"rad/internal/domain"
	"rad/internal/store"
)

func writeKey(t *testing.T, p domain.Profile) {
	t.Helper()
	priv, _, err := crypto.GenerateEd25519()
	require.NoError(t, err)
	require.NoError(t, store.NewKeyFileStore(testKDF).SaveKey(p.KeyFile(), pass("pw"), &priv))
}

func TestProfiles_MissingHome_IsEmpty(t *testing.T) {
	ps := store.NewProfileFileStore(filepath.Join(t.TempDir(), "nope"))

	profiles, err := ps.ListProfiles()
	require.NoError(t, err)
	assert.Empty(t, profiles)

	_, ok, err := ps.ActiveProfile()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProfiles_ListOnlyProfilesWithKeys(t *testing.T) {
	ps := store.NewProfileFileStore(t.TempDir())

	b, err := ps.CreateProfile("bbb")
	require.NoError(t, err)
	writeKey(t, b)
	a, err := ps.CreateProfile("aaa")
	require.NoError(t, err)
	writeKey(t, a)
	_, err = ps.CreateProfile("half-written")
	require.NoError(t, err)

	profiles, err := ps.ListProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, domain.ProfileID("aaa"), profiles[0].ID)
	assert.Equal(t, domain.ProfileID("bbb"), profiles[1].ID)
}

func TestProfiles_CreateTwice_Fails(t *testing.T) {
	ps := store.NewProfileFileStore(t.TempDir())
	_, err := ps.CreateProfile("p1")
	require.NoError(t, err)
	_, err = ps.CreateProfile("p1")
	assert.Error(t, err)
}

func TestProfiles_LoadProfile(t *testing.T) {
	ps := store.NewProfileFileStore(t.TempDir())
	created, err := ps.CreateProfile("p1")
	require.NoError(t, err)

	// A root without a key file is not a profile yet.
	_, err = ps.LoadProfile("p1")
	require.ErrorIs(t, err, domain.ErrProfileNotFound)

	writeKey(t, created)
	got, err := ps.LoadProfile("p1")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = ps.LoadProfile("p2")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestProfiles_RejectsIDsOutsideProfilesDir(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	ps := store.NewProfileFileStore(home)

	// A keyed directory next to home that a traversing id would reach.
	outside := filepath.Join(filepath.Dir(home), "victim")
	require.NoError(t, os.MkdirAll(filepath.Join(outside, "keys"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(outside, "keys", "ed25519.key.enc"), []byte("{}"), 0o600))

	for _, id := range []domain.ProfileID{"", ".", "..", "../../victim", "a/b", `a\b`} {
		_, err := ps.LoadProfile(id)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound, "load %q", id)
		assert.ErrorIs(t, err, store.ErrInvalidProfileID, "load %q", id)

		_, err = ps.CreateProfile(id)
		assert.ErrorIs(t, err, store.ErrInvalidProfileID, "create %q", id)

		assert.ErrorIs(t, ps.RemoveProfile(id), store.ErrInvalidProfileID, "remove %q", id)
		assert.ErrorIs(t, ps.SetActiveProfile(id), store.ErrInvalidProfileID, "set active %q", id)
	}
	assert.DirExists(t, outside)
}

func TestProfiles_SetActive_Atomic(t *testing.T) {
	home := t.TempDir()
	ps := store.NewProfileFileStore(home)

	require.NoError(t, ps.SetActiveProfile("p1"))
	require.NoError(t, ps.SetActiveProfile("p2"))

	id, ok, err := ps.ActiveProfile()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.ProfileID("p2"), id)

	entries, err := os.ReadDir(home)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-", "temp file left behind")
	}
}

func TestProfiles_Remove_ClearsActive(t *testing.T) {
	ps := store.NewProfileFileStore(t.TempDir())
	p, err := ps.CreateProfile("p1")
	require.NoError(t, err)
	writeKey(t, p)
	require.NoError(t, ps.SetActiveProfile("p1"))

	require.NoError(t, ps.RemoveProfile("p1"))

	_, err = os.Stat(p.Root)
	assert.True(t, os.IsNotExist(err))
	_, ok, err := ps.ActiveProfile()
	require.NoError(t, err)
	assert.False(t, ok)
}
