package task

import (
	"context"
	"testing"
	"time"

	"github.com/SundayYogurt/claim_service/internal/domain"
	"github.com/SundayYogurt/claim_service/internal/repository"
	"github.com/SundayYogurt/claim_service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSweepRemovesOnlyExpired(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSessionRepository(testutil.NewDB(t))
	now := time.Unix(1_700_000_000, 0)

	require.NoError(t, repo.Upsert(ctx, &domain.Session{ID: "old", Data: []byte("a"), ExpiresAt: now.Unix() - 1}))
	require.NoError(t, repo.Upsert(ctx, &domain.Session{ID: "edge", Data: []byte("b"), ExpiresAt: now.Unix()}))
	require.NoError(t, repo.Upsert(ctx, &domain.Session{ID: "live", Data: []byte("c"), ExpiresAt: now.Unix() + 60}))
	require.NoError(t, repo.Upsert(ctx, &domain.Session{ID: "forever", Data: []byte("d")}))

	job := NewSessionSweepJob(repo, time.Minute)
	job.now = func() time.Time { return now }
	job.Execute()

	for id, alive := range map[string]bool{"old": false, "edge": false, "live": true, "forever": true} {
		row, err := repo.Find(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, alive, row != nil, id)
	}
}

func TestManagerRegistersJob(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	job := NewSessionSweepJob(repository.NewSessionRepository(testutil.NewDB(t)), 0)
	assert.Equal(t, 15*time.Minute, job.interval)
	require.NoError(t, m.Register(job))

	m.Start()
	assert.NoError(t, m.Stop())
}
