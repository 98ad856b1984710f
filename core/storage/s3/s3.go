// Package s3 implements the storage driver contract on any S3-compatible
// object store: AWS S3, MinIO, R2 and similar services.
//
// Uploads are single PutObject calls carrying the content type. Reads fetch
// the whole object. Exists and Stat only issue a HEAD-style StatObject.
// Deleting a missing key succeeds.
//
// # Public URLs
//
// The URL style is fixed when the driver is built:
//
//	path style (MinIO mode): https://{endpoint}/{bucket}/{key}
//	virtual-hosted style:    https://{bucket}.{endpoint}/{key}
//
// A configured PublicURL (for example a CDN) replaces both.
//
// # Usage
//
//	d, err := s3.New(s3.Config{Bucket: "mybucket", Endpoint: "minio.local:9000", PathStyle: true})
//	url := d.PublicURL("x.png") // https://minio.local:9000/mybucket/x.png
package s3

import (
	"bytes"
	"context"
	"io"

	"storage-gateway/core/errs"
	"storage-gateway/core/storage/object"

	"github.com/minio/minio-go/v7"
)

// Driver is an S3-compatible implementation of the storage driver contract.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	client  Client
	bucket  string
	urlBase string
}

// New builds a MinIO client from cfg and returns a Driver. No request is
// sent; the client connects lazily.
func New(cfg Config) (*Driver, error) {
	if cfg.Bucket == "" {
		return nil, errs.New(errs.KindInvalidConfig, "s3: bucket is required")
	}
	ep := resolveEndpoint(cfg)
	client, err := newClient(cfg, ep)
	if err != nil {
		return nil, errs.Wrap(errs.KindInvalidConfig, "s3: failed to create minio client", err)
	}
	return NewWithClient(client, cfg), nil
}

// NewWithClient returns a Driver using an existing client.
func NewWithClient(client Client, cfg Config) *Driver {
	return &Driver{
		client:  client,
		bucket:  cfg.Bucket,
		urlBase: publicBase(cfg, resolveEndpoint(cfg)),
	}
}

// Name returns the driver name.
func (d *Driver) Name() string {
	return "s3"
}

// Bucket returns the configured bucket.
func (d *Driver) Bucket() string {
	return d.bucket
}

// Put uploads content at key in a single request, replacing any existing object.
func (d *Driver) Put(ctx context.Context, key string, content []byte, contentType string) error {
	if err := object.ValidateKey(key); err != nil {
		return err
	}
	_, err := d.client.PutObject(ctx, d.bucket, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: object.ContentType(key, contentType),
	})
	if err != nil {
		return mapError("put", key, err)
	}
	return nil
}

// Get downloads the whole object at key.
func (d *Driver) Get(ctx context.Context, key string) ([]byte, error) {
	if err := object.ValidateKey(key); err != nil {
		return nil, err
	}
	body, err := d.client.GetObject(ctx, d.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapError("get", key, err)
	}
	defer body.Close()

	// MinIO reports a missing key on the first read, not on GetObject.
	data, err := io.ReadAll(body)
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
	err := d.client.RemoveObject(ctx, d.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		mapped := mapError("delete", key, err)
		if mapped.Kind == errs.KindNotFound {
			return nil
		}
		return mapped
	}
	return nil
}

// Exists probes object metadata without downloading the body.
func (d *Driver) Exists(ctx context.Context, key string) (bool, error) {
	if err := object.ValidateKey(key); err != nil {
		return false, err
	}
	_, err := d.client.StatObject(ctx, d.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		mapped := mapError("exists", key, err)
		if mapped.Kind == errs.KindNotFound {
			return false, nil
		}
		return false, mapped
	}
	return true, nil
}

// Stat returns object metadata without downloading the body.
func (d *Driver) Stat(ctx context.Context, key string) (*object.Info, error) {
	if err := object.ValidateKey(key); err != nil {
		return nil, err
	}
	info, err := d.client.StatObject(ctx, d.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, mapError("stat", key, err)
	}
	return &object.Info{
		Key:          key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
		ETag:         info.ETag,
	}, nil
}

// PublicURL appends key to the URL base chosen at construction.
func (d *Driver) PublicURL(key string) string {
	return object.JoinURL(d.urlBase, key)
}
