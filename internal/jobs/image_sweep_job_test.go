package jobs_test

import (
	"context"
	"strings"
	"testing"

	"github.com/scribeflow/scribeflow-api/internal/domain"
	"github.com/scribeflow/scribeflow-api/internal/jobs"
	"github.com/scribeflow/scribeflow-api/internal/repository"
	"github.com/scribeflow/scribeflow-api/internal/storage"
	"github.com/scribeflow/scribeflow-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func uploadTestImage(t *testing.T, store storage.Storage, name string) string {
	t.Helper()
	path, _, err := store.Upload(context.Background(), name, "image/png", strings.NewReader("png bytes"))
	require.NoError(t, err)
	return path
}

func TestImageSweepJob_Run(t *testing.T) {
	db := testutil.NewTestDB(t)
	userRepo := repository.NewUserRepository(db)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	referenced := uploadTestImage(t, store, "kept.png")
	orphanA := uploadTestImage(t, store, "orphan-a.png")
	orphanB := uploadTestImage(t, store, "orphan-b.png")

	user := &domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "irrelevant",
		ProfileImage: referenced,
		Theme:        domain.ThemeSystem,
	}
	require.NoError(t, userRepo.Create(context.Background(), user))

	// A user without an image must not affect the sweep
	require.NoError(t, userRepo.Create(context.Background(), &domain.User{
		Username:     "bob",
		Email:        "bob@example.com",
		PasswordHash: "irrelevant",
		Theme:        domain.ThemeSystem,
	}))

	job := jobs.NewImageSweepJob(userRepo, store, zap.NewNop())
	job.Run()

	remaining, err := store.List(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{referenced}, remaining)

	for _, orphan := range []string{orphanA, orphanB} {
		_, err := store.Download(context.Background(), orphan)
		assert.Error(t, err, "expected %s to be removed", orphan)
	}

	t.Run("second run is a no-op", func(t *testing.T) {
		job.Run()

		remaining, err := store.List(context.Background())
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{referenced}, remaining)
	})
}
