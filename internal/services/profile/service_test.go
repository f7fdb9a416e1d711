package profile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"rad/internal/domain"
	"rad/internal/gitstore"
	"rad/internal/services/profile"
	"rad/internal/store"
	"rad/internal/term/termtest"
)

func newRegistry(t *testing.T, prompt domain.Prompter) (*profile.Service, *store.ProfileFileStore) {
	t.Helper()
	ps := store.NewProfileFileStore(t.TempDir())
	return profile.New(ps, prompt, zaptest.NewLogger(t)), ps
}

// withKey marks p as holding a key so it is listed.
func withKey(t *testing.T, p domain.Profile) domain.Profile {
	t.Helper()
	require.NoError(t, os.WriteFile(p.KeyFile(), []byte("{}"), 0o600))
	return p
}

func TestDefault_NoneSet(t *testing.T) {
	reg, _ := newRegistry(t, nil)
	_, err := reg.Default()
	require.ErrorIs(t, err, domain.ErrNoActiveProfile)
}

func TestDefault_StaleRecord(t *testing.T) {
	reg, ps := newRegistry(t, nil)
	require.NoError(t, ps.SetActiveProfile("gone"))
	_, err := reg.Default()
	require.ErrorIs(t, err, domain.ErrNoActiveProfile)
}

func TestDefault_ActiveWithoutKey(t *testing.T) {
	reg, ps := newRegistry(t, nil)
	p, err := ps.CreateProfile("half-written")
	require.NoError(t, err)
	require.NoError(t, ps.SetActiveProfile(p.ID))

	_, err = reg.Default()
	require.ErrorIs(t, err, domain.ErrNoActiveProfile)

	withKey(t, p)
	got, err := reg.Default()
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestDefault_ActiveOutsideHome(t *testing.T) {
	reg, ps := newRegistry(t, nil)
	p, err := ps.CreateProfile("real")
	require.NoError(t, err)
	withKey(t, p)

	// Hand-edited marker pointing back into the profiles dir.
	home := filepath.Dir(filepath.Dir(p.Root))
	marker := []byte("active: ../profiles/real\n")
	require.NoError(t, os.WriteFile(filepath.Join(home, "active.yaml"), marker, 0o600))

	_, err = reg.Default()
	require.ErrorIs(t, err, domain.ErrNoActiveProfile)
}

func TestCreate_SetActive_Default(t *testing.T) {
	reg, _ := newRegistry(t, nil)

	p, err := reg.Create()
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.DirExists(t, p.KeysDir())

	_, err = gitstore.Open(p.GitDir())
	require.NoError(t, err, "profile gets a monorepo")

	// Not listed until it holds a key.
	list, err := reg.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	withKey(t, p)
	require.NoError(t, reg.SetActive(p.ID))

	got, err := reg.Default()
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestCreate_DistinctIDs(t *testing.T) {
	reg, _ := newRegistry(t, nil)
	a, err := reg.Create()
	require.NoError(t, err)
	b, err := reg.Create()
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSelect_SingleProfileNoPrompt(t *testing.T) {
	prompt := &termtest.Prompter{}
	reg, ps := newRegistry(t, prompt)
	p, err := ps.CreateProfile("only")
	require.NoError(t, err)

	got, err := reg.Select([]domain.Profile{p}, p)
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.Empty(t, prompt.Labels())
}

func TestSelect_MarksCurrent(t *testing.T) {
	prompt := &termtest.Prompter{Choices: []int{0}}
	reg, ps := newRegistry(t, prompt)

	var profiles []domain.Profile
	for _, id := range []domain.ProfileID{"a", "b", "c"} {
		p, err := ps.CreateProfile(id)
		require.NoError(t, err)
		profiles = append(profiles, withKey(t, p))
	}
	list, err := reg.List()
	require.NoError(t, err)
	require.Equal(t, profiles, list)

	got, err := reg.Select(list, list[1])
	require.NoError(t, err)
	assert.Equal(t, profiles[0], got)

	chosen := prompt.Chosen()
	require.Len(t, chosen, 1)
	assert.Equal(t, []string{"a", "b", "c"}, chosen[0].Options)
	assert.Equal(t, 1, chosen[0].Current)

	// Selection does not touch the active marker.
	_, err = reg.Default()
	require.ErrorIs(t, err, domain.ErrNoActiveProfile)
}

func TestSelect_OutOfRange(t *testing.T) {
	prompt := &termtest.Prompter{Choices: []int{5}}
	reg, ps := newRegistry(t, prompt)
	a, err := ps.CreateProfile("a")
	require.NoError(t, err)
	b, err := ps.CreateProfile("b")
	require.NoError(t, err)

	_, err = reg.Select([]domain.Profile{a, b}, a)
	require.Error(t, err)
}

func TestRemove_ClearsActive(t *testing.T) {
	reg, _ := newRegistry(t, nil)
	p, err := reg.Create()
	require.NoError(t, err)
	require.NoError(t, reg.SetActive(p.ID))

	require.NoError(t, reg.Remove(p.ID))
	assert.NoDirExists(t, p.Root)
	_, err = reg.Default()
	require.ErrorIs(t, err, domain.ErrNoActiveProfile)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(filepath.Dir(p.Root)), "active.yaml"))
}
