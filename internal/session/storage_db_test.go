package session

import (
	"testing"
	"time"

	"github.com/SundayYogurt/claim_service/internal/repository"
	"github.com/SundayYogurt/claim_service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBStorageExpiresLazily(t *testing.T) {
	repo := repository.NewSessionRepository(testutil.NewDB(t))
	s := NewDBStorage(repo)

	clock := time.Unix(1700000000, 0)
	s.now = func() time.Time { return clock }

	require.NoError(t, s.Set("abc", []byte("payload"), 8*time.Hour))

	got, err := s.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))

	clock = clock.Add(8*time.Hour + time.Second)
	got, err = s.Get("abc")
	require.NoError(t, err)
	assert.Nil(t, got, "expired session reads as absent")

	row, err := repo.Find(t.Context(), "abc")
	require.NoError(t, err)
	assert.Nil(t, row, "expired row removed on access")
}

func TestDBStorageNoExpiry(t *testing.T) {
	s := NewDBStorage(repository.NewSessionRepository(testutil.NewDB(t)))

	require.NoError(t, s.Set("k", []byte("v"), 0))
	s.now = func() time.Time { return time.Now().Add(24 * 365 * time.Hour) }

	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestDBStorageDeleteAndReset(t *testing.T) {
	s := NewDBStorage(repository.NewSessionRepository(testutil.NewDB(t)))

	require.NoError(t, s.Set("a", []byte("1"), time.Hour))
	require.NoError(t, s.Set("b", []byte("2"), time.Hour))

	require.NoError(t, s.Delete("a"))
	got, err := s.Get("a")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Reset())
	got, err = s.Get("b")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.Get("")
	require.NoError(t, err)
	assert.Nil(t, got)
}
