package s3

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/hupe1980/kmeans/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_S3Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET not set")
	}

	ctx := context.Background()

	// Create a unique prefix for this test run
	prefix := fmt.Sprintf("test-kmeans-%d/", time.Now().UnixNano())
	store, err := New(ctx, bucket, WithPrefix(prefix))
	require.NoError(t, err)

	data := []byte("archive bytes")
	require.NoError(t, store.Put(ctx, "run.kmr", data))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "run.kmr")

	got, err := store.Get(ctx, "run.kmr")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, store.Delete(ctx, "run.kmr"))
	_, err = store.Get(ctx, "run.kmr")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
