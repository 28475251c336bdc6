package assets

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func TestBlobStore_UploadImage(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	store := NewBlobStore(bucket, "https://assets.example.com/")

	url, err := store.UploadImage(ctx, "clinics", "front.png", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://assets.example.com/clinics/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	// The object is retrievable under the key embedded in the URL.
	key := strings.TrimPrefix(url, "https://assets.example.com/")
	data, err := bucket.ReadAll(ctx, key)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestBlobStore_UploadImage_DistinctKeys(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	store := NewBlobStore(bucket, "https://assets.example.com")

	first, err := store.UploadImage(ctx, "hospitals", "a.jpg", []byte("image-one"))
	require.NoError(t, err)
	second, err := store.UploadImage(ctx, "hospitals", "a.jpg", []byte("image-two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBlobStore_UploadImage_EmptyPayload(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	store := NewBlobStore(bucket, "https://assets.example.com")

	_, err := store.UploadImage(context.Background(), "clinics", "x.png", nil)
	assert.Error(t, err)
}
