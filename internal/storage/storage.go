package storage

import "context"

// ObjectStorage uploads generated report artifacts to a bucket.
type ObjectStorage interface {
	UploadObject(ctx context.Context, key, contentType string, payload []byte) error
}
