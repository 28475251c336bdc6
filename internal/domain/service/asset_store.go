package service

import "context"

// AssetStore defines the interface for storing uploaded provider images.
// The returned URL is persisted on the provider record; a failed upload
// aborts the whole registration, there is no partial-record fallback.
type AssetStore interface {
	// UploadImage stores the image bytes under the given folder and returns
	// a publicly resolvable URL for it.
	UploadImage(ctx context.Context, folder, filename string, data []byte) (string, error)
}
