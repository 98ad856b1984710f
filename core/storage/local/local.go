// Package local implements the storage driver contract on a local directory
// tree.
//
// Writes go to a temporary file in the destination directory and are
// renamed into place only after the content is fully written and synced, so
// readers never observe a partial object and a cancelled write leaves
// nothing behind.
//
// # Usage
//
//	d, err := local.New(local.Config{Root: "./public/storage", PublicURL: "https://cdn.example/files"})
//	err = d.Put(ctx, "a/b.txt", []byte("hi"), "")
//	url := d.PublicURL("a/b.txt") // https://cdn.example/files/a/b.txt
package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"storage-gateway/core/errs"
	"storage-gateway/core/storage/object"
)

const (
	dirPerm     = 0o755
	filePerm    = 0o644
	tempPattern = ".put-*"
)

// Driver stores objects as files under a root directory.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	root      string
	publicURL string
}

// New resolves the root directory, creates it if needed and returns a Driver.
func New(cfg Config) (*Driver, error) {
	if cfg.Root == "" {
		return nil, errs.New(errs.KindInvalidConfig, "local: root is required")
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, errs.Wrap(errs.KindInvalidConfig, "local: resolve root", err)
	}
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, errs.Wrap(errs.KindIO, fmt.Sprintf("local: create root %s", root), err)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = DefaultPublicURL
	}
	return &Driver{root: root, publicURL: publicURL}, nil
}

// Name returns the driver name.
func (d *Driver) Name() string {
	return "local"
}

// Root returns the absolute root directory.
func (d *Driver) Root() string {
	return d.root
}

// Put writes content at key, replacing any existing file. The content type
// is kept in the user.mime_type extended attribute where supported.
func (d *Driver) Put(ctx context.Context, key string, content []byte, contentType string) error {
	target, err := d.resolve(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return mapPutError(key, err)
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return mapPutError(key, err)
	}

	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return mapPutError(key, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return mapPutError(key, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return mapPutError(key, err)
	}
	if err := tmp.Close(); err != nil {
		return mapPutError(key, err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		return mapPutError(key, err)
	}
	// Filesystems without user xattrs fall back to the key extension in Stat.
	_ = writeContentType(tmpName, object.ContentType(key, contentType))

	// Last point where cancellation can still abort without a visible object.
	if err := ctx.Err(); err != nil {
		return mapPutError(key, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return mapPutError(key, err)
	}
	committed = true
	return nil
}

// Get returns the full content of the file at key.
func (d *Driver) Get(ctx context.Context, key string) ([]byte, error) {
	target, err := d.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, mapError("get", key, err)
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil, mapError("get", key, err)
	}
	if info.IsDir() {
		return nil, errs.Op(errs.KindNotFound, "get", key, nil)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return nil, mapError("get", key, err)
	}
	return data, nil
}

// Delete removes the file at key. A missing key is not an error.
func (d *Driver) Delete(ctx context.Context, key string) error {
	target, err := d.resolve(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return mapError("delete", key, err)
	}

	info, err := os.Lstat(target)
	if err != nil {
		if isNotExist(err) {
			return nil
		}
		return mapError("delete", key, err)
	}
	if info.IsDir() {
		return nil
	}

	if err := os.Remove(target); err != nil && !isNotExist(err) {
		return mapError("delete", key, err)
	}
	return nil
}

// Exists reports whether a file exists at key.
func (d *Driver) Exists(ctx context.Context, key string) (bool, error) {
	target, err := d.resolve(key)
	if err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, mapError("exists", key, err)
	}

	info, err := os.Stat(target)
	if err != nil {
		if isNotExist(err) {
			return false, nil
		}
		return false, mapError("exists", key, err)
	}
	return !info.IsDir(), nil
}

// Stat returns metadata for the file at key.
func (d *Driver) Stat(ctx context.Context, key string) (*object.Info, error) {
	target, err := d.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, mapError("stat", key, err)
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil, mapError("stat", key, err)
	}
	if info.IsDir() {
		return nil, errs.Op(errs.KindNotFound, "stat", key, nil)
	}

	return &object.Info{
		Key:          key,
		Size:         info.Size(),
		ContentType:  d.contentType(target, key),
		LastModified: info.ModTime(),
	}, nil
}

func (d *Driver) contentType(path, key string) string {
	if ct := readContentType(path); ct != "" {
		return ct
	}
	return object.ContentType(key, "")
}

// PublicURL joins the configured public prefix and key. No filesystem access.
func (d *Driver) PublicURL(key string) string {
	return object.JoinURL(d.publicURL, key)
}

// resolve validates key and maps it to a path under root.
func (d *Driver) resolve(key string) (string, error) {
	if err := object.ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(d.root, filepath.FromSlash(key)), nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// mapPutError keeps NotFound for reads: a key whose parent is a file, or
// which names an existing directory, conflicts with stored objects.
func mapPutError(key string, err error) *errs.Error {
	switch {
	case errors.Is(err, syscall.ENOTDIR), errors.Is(err, syscall.EISDIR), errors.Is(err, syscall.EEXIST):
		return &errs.Error{
			Kind:    errs.KindInvalidKey,
			Op:      "put",
			Key:     key,
			Message: "key conflicts with an existing object",
			Cause:   err,
		}
	case errors.Is(err, fs.ErrNotExist):
		return errs.Op(errs.KindIO, "put", key, err)
	default:
		return mapError("put", key, err)
	}
}

// mapError translates filesystem and context errors into *errs.Error.
func mapError(op, key string, err error) *errs.Error {
	switch {
	case isNotExist(err):
		return errs.Op(errs.KindNotFound, op, key, err)
	case errors.Is(err, syscall.ENOSPC), errors.Is(err, syscall.EDQUOT), errors.Is(err, syscall.EFBIG):
		return errs.Op(errs.KindQuota, op, key, err)
	default:
		// Context cancellation, permissions and everything else.
		return errs.Op(errs.KindIO, op, key, err)
	}
}
