package bootstrap_test

import (
	"context"
	"testing"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/bootstrap"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/config"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/pipeline"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bucketStep(t *testing.T, b *bootstrap.Bootstrapper) pipeline.Step {
	t.Helper()
	for _, step := range b.Steps() {
		if step.Name == "storage-bucket" {
			return step
		}
	}
	t.Fatal("storage-bucket step not found")
	return pipeline.Step{}
}

func TestBucketStep_CreateThenIdempotent(t *testing.T) {
	cfg := &config.Config{StorageBucketName: "aac-assets", VertexAILocation: "us-central1"}
	store := storage.NewService(t.TempDir())
	b := bootstrap.New(nil, store, cfg, "")

	step := bucketStep(t, b)

	detail, err := step.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, detail, "created")
	assert.Contains(t, detail, "marker round-trip ok")

	// Second run: reports existence and attributes, attempts no creation.
	detail, err = step.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, detail, `bucket "aac-assets" exists`)
	assert.Contains(t, detail, "class=STANDARD")
	assert.Contains(t, detail, "created=")
}

func TestBucketStep_MissingNameIsPreconditionFailure(t *testing.T) {
	cfg := &config.Config{}
	store := storage.NewService(t.TempDir())
	b := bootstrap.New(nil, store, cfg, "")

	_, err := bucketStep(t, b).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_BUCKET_NAME")
}

func TestBucketConfigDefaults(t *testing.T) {
	cfg := &config.Config{StorageBucketName: "aac-assets", VertexAILocation: "europe-west1"}
	b := bootstrap.New(nil, storage.NewService(t.TempDir()), cfg, "")

	bc := b.BucketConfig()
	assert.Equal(t, "STANDARD", bc.StorageClass)
	assert.Equal(t, "europe-west1", bc.Location)
	assert.Equal(t, 30, bc.Lifecycle.DeleteAfterDays)
	assert.Equal(t, 3600, bc.CORS.MaxAgeSeconds)
}
