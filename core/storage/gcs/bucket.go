package gcs

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
)

// Bucket is the subset of bucket operations the driver needs.
type Bucket interface {
	// Write uploads content in a single request.
	Write(ctx context.Context, key string, content []byte, contentType string) error
	// Read downloads the whole object.
	Read(ctx context.Context, key string) ([]byte, error)
	// Attrs fetches object metadata only.
	Attrs(ctx context.Context, key string) (*storage.ObjectAttrs, error)
	// Delete removes the object.
	Delete(ctx context.Context, key string) error
}

type bucketHandle struct {
	handle *storage.BucketHandle
}

func (b *bucketHandle) Write(ctx context.Context, key string, content []byte, contentType string) error {
	w := b.handle.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	// Zero chunk size sends the object in one request instead of a resumable upload.
	w.ChunkSize = 0
	if _, err := w.Write(content); err != nil {
		_ = w.Close()
		return err
	}
	// The object only becomes visible once Close succeeds.
	return w.Close()
}

func (b *bucketHandle) Read(ctx context.Context, key string) ([]byte, error) {
	r, err := b.handle.Object(key).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (b *bucketHandle) Attrs(ctx context.Context, key string) (*storage.ObjectAttrs, error) {
	return b.handle.Object(key).Attrs(ctx)
}

func (b *bucketHandle) Delete(ctx context.Context, key string) error {
	return b.handle.Object(key).Delete(ctx)
}
