package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("upload url", func(t *testing.T) {
		stub := NewStubObjectStorage()

		url, expiresAt, err := stub.GenerateUploadURL(ctx, "attachments/t/p/a", "application/pdf", 15*time.Minute)
		require.NoError(t, err)
		assert.Contains(t, url, "/upload/attachments/t/p/a")
		assert.True(t, expiresAt.After(time.Now()))
	})

	t.Run("download url", func(t *testing.T) {
		stub := NewStubObjectStorage()

		url, _, err := stub.GenerateDownloadURL(ctx, "attachments/t/p/a", 15*time.Minute)
		require.NoError(t, err)
		assert.Contains(t, url, "/download/attachments/t/p/a")
	})

	t.Run("empty key rejected", func(t *testing.T) {
		stub := NewStubObjectStorage()

		_, _, err := stub.GenerateUploadURL(ctx, "", "application/pdf", time.Minute)
		assert.Error(t, err)
		_, _, err = stub.GenerateDownloadURL(ctx, "", time.Minute)
		assert.Error(t, err)
		assert.Error(t, stub.DeleteObject(ctx, ""))
	})

	t.Run("exists until deleted", func(t *testing.T) {
		stub := NewStubObjectStorage()

		exists, err := stub.ObjectExists(ctx, "some-key")
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, stub.DeleteObject(ctx, "some-key"))

		exists, err = stub.ObjectExists(ctx, "some-key")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestNewS3ObjectStorageValidation(t *testing.T) {
	// constructor validation only; network calls need a live endpoint
	t.Run("requires bucket", func(t *testing.T) {
		_, err := newS3ForTest(t, "", "key", "secret")
		assert.Error(t, err)
	})

	t.Run("requires credentials", func(t *testing.T) {
		_, err := newS3ForTest(t, "bucket", "", "")
		assert.Error(t, err)
	})

	t.Run("builds client with full config", func(t *testing.T) {
		s, err := newS3ForTest(t, "bucket", "key", "secret")
		require.NoError(t, err)
		assert.NotNil(t, s)
	})
}
