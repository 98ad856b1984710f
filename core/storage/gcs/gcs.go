// Package gcs implements the storage driver contract on Google Cloud
// Storage. It is the third driver variant next to local and s3 and follows
// the same rules: single-request uploads, whole-object reads, metadata-only
// existence checks and idempotent deletes.
//
// # Usage
//
//	d, err := gcs.New(ctx, gcs.Config{Bucket: "assets", KeyFile: "/etc/gcp/key.json"})
//	url := d.PublicURL("x.png") // https://storage.googleapis.com/assets/x.png
package gcs

import (
	"context"
	"io"

	"storage-gateway/core/errs"
	"storage-gateway/core/storage/object"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// Driver is a Google Cloud Storage implementation of the storage driver contract.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	bucket  Bucket
	name    string
	urlBase string
	closer  io.Closer
}

// New creates a GCS client for cfg and returns a Driver.
func New(ctx context.Context, cfg Config) (*Driver, error) {
	if cfg.Bucket == "" {
		return nil, errs.New(errs.KindInvalidConfig, "gcs: bucket is required")
	}

	var opts []option.ClientOption
	if cfg.KeyFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.KeyFile))
	}
	if cfg.APIEndpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.APIEndpoint))
		if cfg.KeyFile == "" {
			opts = append(opts, option.WithoutAuthentication())
		}
	}
	if cfg.ProjectID != "" {
		opts = append(opts, option.WithQuotaProject(cfg.ProjectID))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, errs.Wrap(errs.KindInvalidConfig, "gcs: failed to create client", err)
	}

	d := NewWithBucket(&bucketHandle{handle: client.Bucket(cfg.Bucket)}, cfg)
	d.closer = client
	return d, nil
}

// NewWithBucket returns a Driver using an existing bucket implementation.
func NewWithBucket(bucket Bucket, cfg Config) *Driver {
	base := cfg.PublicURL
	if base == "" {
		base = DefaultPublicHost + "/" + cfg.Bucket
	}
	return &Driver{bucket: bucket, name: cfg.Bucket, urlBase: base}
}

// Name returns the driver name.
func (d *Driver) Name() string {
	return "gcs"
}

// Bucket returns the configured bucket name.
func (d *Driver) Bucket() string {
	return d.name
}

// Close releases the underlying client.
func (d *Driver) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

// Put uploads content at key, replacing any existing object.
func (d *Driver) Put(ctx context.Context, key string, content []byte, contentType string) error {
	if err := object.ValidateKey(key); err != nil {
		return err
	}
	if err := d.bucket.Write(ctx, key, content, object.ContentType(key, contentType)); err != nil {
		return mapError("put", key, err)
	}
	return nil
}

// Get downloads the whole object at key.
func (d *Driver) Get(ctx context.Context, key string) ([]byte, error) {
	if err := object.ValidateKey(key); err != nil {
		return nil, err
	}
	data, err := d.bucket.Read(ctx, key)
	if err != nil {
		return nil, mapError("get", key, err)
	}
	return data, nil
}

// Delete removes the object at key. A missing key is not an error.
func (d *Driver) Delete(ctx context.Context, key string) error {
	if err := object.ValidateKey(key); err != nil {
		return err
	}
	if err := d.bucket.Delete(ctx, key); err != nil {
		mapped := mapError("delete", key, err)
		if mapped.Kind == errs.KindNotFound {
			return nil
		}
		return mapped
	}
	return nil
}

// Exists fetches object attributes only.
func (d *Driver) Exists(ctx context.Context, key string) (bool, error) {
	if err := object.ValidateKey(key); err != nil {
		return false, err
	}
	if _, err := d.bucket.Attrs(ctx, key); err != nil {
		mapped := mapError("exists", key, err)
		if mapped.Kind == errs.KindNotFound {
			return false, nil
		}
		return false, mapped
	}
	return true, nil
}

// Stat returns object metadata.
func (d *Driver) Stat(ctx context.Context, key string) (*object.Info, error) {
	if err := object.ValidateKey(key); err != nil {
		return nil, err
	}
	attrs, err := d.bucket.Attrs(ctx, key)
	if err != nil {
		return nil, mapError("stat", key, err)
	}
	return &object.Info{
		Key:          key,
		Size:         attrs.Size,
		ContentType:  attrs.ContentType,
		LastModified: attrs.Updated,
		ETag:         attrs.Etag,
	}, nil
}

// PublicURL appends key to the bucket's public URL.
func (d *Driver) PublicURL(key string) string {
	return object.JoinURL(d.urlBase, key)
}
