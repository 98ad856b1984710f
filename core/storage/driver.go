package storage

import (
	"context"

	"storage-gateway/core/storage/gcs"
	"storage-gateway/core/storage/local"
	"storage-gateway/core/storage/object"
	"storage-gateway/core/storage/s3"
)

// Driver is the contract every storage backend implements.
type Driver interface {
	// Name identifies the variant: local, s3 or gcs.
	Name() string
	// Put writes content at key, replacing any existing object.
	Put(ctx context.Context, key string, content []byte, contentType string) error
	// Get returns the whole object at key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes the object at key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Exists reports whether an object is stored at key.
	Exists(ctx context.Context, key string) (bool, error)
	// Stat returns object metadata without the content.
	Stat(ctx context.Context, key string) (*object.Info, error)
	// PublicURL composes the externally reachable URL for key without I/O.
	PublicURL(key string) string
}

var (
	_ Driver = (*local.Driver)(nil)
	_ Driver = (*s3.Driver)(nil)
	_ Driver = (*gcs.Driver)(nil)
)
