package storage_test

import (
	"testing"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() storage.BucketConfig {
	return storage.BucketConfig{
		Name:         "aac-assets",
		Location:     "us-central1",
		StorageClass: "STANDARD",
		CORS: storage.CORSRule{
			Origins:       []string{"*"},
			Methods:       []string{"GET", "PUT", "POST"},
			MaxAgeSeconds: 3600,
		},
		Lifecycle: storage.LifecycleRule{DeleteAfterDays: 30},
	}
}

func TestEnsure_CreatesThenNoOp(t *testing.T) {
	svc := storage.NewService(t.TempDir())

	info, created, err := svc.Ensure(testConfig())
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "STANDARD", info.StorageClass)
	assert.False(t, info.Created.IsZero())

	// Second run must report pre-existing state and create nothing.
	again, created, err := svc.Ensure(testConfig())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, info.Created.Unix(), again.Created.Unix())
}

func TestDescribe_MissingBucket(t *testing.T) {
	svc := storage.NewService(t.TempDir())

	info, err := svc.Describe("never-created")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestVerifyReadWrite(t *testing.T) {
	svc := storage.NewService(t.TempDir())

	_, _, err := svc.Ensure(testConfig())
	require.NoError(t, err)

	assert.NoError(t, svc.VerifyReadWrite("aac-assets"))
}

func TestPutGetDelete(t *testing.T) {
	svc := storage.NewService(t.TempDir())
	_, _, err := svc.Ensure(testConfig())
	require.NoError(t, err)

	object := storage.NewObjectName("icons", ".png")
	require.NoError(t, svc.Put("aac-assets", object, []byte{0x89, 'P', 'N', 'G'}))

	data, err := svc.Get("aac-assets", object)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)

	require.NoError(t, svc.Delete("aac-assets", object))
	_, err = svc.Get("aac-assets", object)
	assert.Error(t, err)
}

func TestObjectURL(t *testing.T) {
	assert.Equal(t, "storage://aac-assets/icons/a.png", storage.ObjectURL("aac-assets", "icons/a.png"))
}
