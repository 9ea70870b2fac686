package importjob_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/mohammadpnp/asset-import/internal/application/importjob"
	domain "github.com/mohammadpnp/asset-import/internal/domain/importjob"
)

func TestRunnerProcessesQueuedJobs(t *testing.T) {
	t.Parallel()

	store := newRecordingStore()
	processor := newTestProcessor(store, app.Targets{Assets: &fakeAssetWriter{}})
	runner := app.NewRunner(processor, app.RunnerConfig{Workers: 2, QueueSize: 4}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	runner.Start(ctx)

	submit := app.NewSubmitImport(processor, store, runner)
	jobIDs := []string{"job-a", "job-b", "job-c"}
	for i, id := range jobIDs {
		out, err := submit.Execute(ctx, assetSpec(id, 120+i))
		require.NoError(t, err)
		assert.Equal(t, "pending", out.Status)
	}

	for _, id := range jobIDs {
		require.Eventually(t, func() bool {
			job, err := store.Get(context.Background(), id)
			return err == nil && job.Status.IsTerminal()
		}, 5*time.Second, 10*time.Millisecond)

		job, err := store.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, job.Status)
		assert.Equal(t, job.TotalRows, job.SuccessfulRows)
	}

	cancel()
	require.NoError(t, runner.Wait())

	err := runner.Enqueue(context.Background(), app.PreparedJob{})
	assert.ErrorIs(t, err, app.ErrRunnerStopped)
}

func TestRunnerEnqueueRespectsContext(t *testing.T) {
	t.Parallel()

	processor := newTestProcessor(newRecordingStore(), app.Targets{Assets: &fakeAssetWriter{}})
	runner := app.NewRunner(processor, app.RunnerConfig{Workers: 1, QueueSize: 1}, nil)

	require.NoError(t, runner.Enqueue(context.Background(), app.PreparedJob{}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := runner.Enqueue(ctx, app.PreparedJob{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunnerLogsJobsDroppedOnShutdown(t *testing.T) {
	t.Parallel()

	store := newRecordingStore()
	processor := newTestProcessor(store, app.Targets{Assets: &fakeAssetWriter{}})

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	runner := app.NewRunner(processor, app.RunnerConfig{Workers: 2, QueueSize: 4}, logger)
	submit := app.NewSubmitImport(processor, store, runner)

	for _, id := range []string{"job-a", "job-b"} {
		_, err := submit.Execute(context.Background(), assetSpec(id, 5))
		require.NoError(t, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner.Start(ctx)
	require.NoError(t, runner.Wait())

	out := logs.String()
	assert.Contains(t, out, "import job dropped on shutdown")
	assert.Contains(t, out, "job_id=job-a")
	assert.Contains(t, out, "job_id=job-b")

	for _, id := range []string{"job-a", "job-b"} {
		job, err := store.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, job.Status)
	}
}
