package file_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammadpnp/asset-import/internal/infrastructure/file"
)

func TestLocalSourceOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "job.json"), []byte(`{"jobId":"job-1"}`), 0o600))

	source := file.NewLocalSource(dir)
	rc, err := source.Open(context.Background(), "job.json")
	require.NoError(t, err)
	defer rc.Close()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jobId":"job-1"}`, string(body))
}

func TestLocalSourceOpenErrors(t *testing.T) {
	t.Parallel()

	source := file.NewLocalSource(t.TempDir())

	_, err := source.Open(context.Background(), "job.csv")
	assert.ErrorIs(t, err, file.ErrUnsupportedSource)

	_, err = source.Open(context.Background(), "missing.json")
	assert.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = source.Open(ctx, "job.json")
	assert.ErrorIs(t, err, context.Canceled)
}
