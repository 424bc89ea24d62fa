package localstate_test

import (
	"path/filepath"
	"testing"

	"restaurant/internal/adapters/out/localstate"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path string) *localstate.Store {
	t.Helper()
	s, err := localstate.Open(path)
	require.NoError(t, err)
	return s
}

func TestStore_ActiveTenant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s := openStore(t, path)

	_, ok, err := s.ActiveTenant()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetActiveTenant("empresa_02"))
	require.NoError(t, s.Close())

	s = openStore(t, path)
	defer s.Close()

	id, ok, err := s.ActiveTenant()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "empresa_02", id, "the tenant survives a restart")

	require.NoError(t, s.ClearActiveTenant())
	_, ok, err = s.ActiveTenant()
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, s.SetActiveTenant(""), errs.ErrValueIsRequired)
}

func TestStore_MaintenanceMarkers(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "state.db"))
	defer s.Close()

	_, ok, err := s.LastRun("t1")
	require.NoError(t, err)
	assert.False(t, ok)

	day, err := kernel.ParseDate("2024-05-01")
	require.NoError(t, err)
	require.NoError(t, s.SetLastRun("t1", day))

	got, ok, err := s.LastRun("t1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, day.IsEqual(got))

	_, ok, err = s.LastRun("t2")
	require.NoError(t, err)
	assert.False(t, ok, "markers are per tenant")
}

func TestOpen_LockedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s := openStore(t, path)
	defer s.Close()

	_, err := localstate.Open(path)
	assert.Error(t, err)
}
