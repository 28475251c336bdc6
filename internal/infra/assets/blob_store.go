// Package assets stores uploaded provider images in a blob bucket.
package assets

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"nirogya/config"
	"nirogya/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers registered by URL scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

// blobStore implements service.AssetStore on top of a gocloud.dev bucket.
type blobStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

// New opens the configured bucket and wires its shutdown into the fx lifecycle.
// Returns a nil AssetStore when no bucket is configured; registration then
// rejects image payloads instead of half-persisting them.
func New(ctx context.Context, params Params) (service.AssetStore, error) {
	if params.Config.Assets == nil || params.Config.Assets.BucketURL == "" {
		return nil, nil
	}

	bucket, err := blob.OpenBucket(ctx, params.Config.Assets.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open asset bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	return NewBlobStore(bucket, params.Config.Assets.PublicBaseURL), nil
}

// NewBlobStore builds an AssetStore over an already opened bucket.
func NewBlobStore(bucket *blob.Bucket, publicBaseURL string) service.AssetStore {
	return &blobStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

// UploadImage writes the image bytes under a collision-free key and returns
// the public URL to persist on the provider record.
func (s *blobStore) UploadImage(ctx context.Context, folder, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty image payload")
	}

	key := path.Join(folder, uuid.New().String()+path.Ext(filename))

	writeOpts := &blob.WriterOptions{
		ContentType: http.DetectContentType(data),
	}
	if err := s.bucket.WriteAll(ctx, key, data, writeOpts); err != nil {
		return "", errors.Wrap(err, "failed to write image to bucket")
	}

	return fmt.Sprintf("%s/%s", s.publicBaseURL, key), nil
}
