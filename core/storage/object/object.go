// Package object holds the driver-independent view of a stored object:
// key validation, metadata and the values every driver derives the same
// way (public URLs and default content types).
package object

import (
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"storage-gateway/core/errs"
)

// Info describes a stored object without its content.
type Info struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	// ETag is the backend entity tag; empty for the local driver.
	ETag string
}

// DefaultContentType is used when neither the caller nor the key extension
// provides one.
const DefaultContentType = "application/octet-stream"

// ValidateKey checks that key is a forward-slash separated relative path with
// no empty, "." or ".." segments. It never touches a backend.
func ValidateKey(key string) error {
	if key == "" {
		return invalid(key, "key is empty")
	}
	if strings.HasPrefix(key, "/") {
		return invalid(key, "key must not start with a slash")
	}
	if strings.ContainsAny(key, "\\\x00") {
		return invalid(key, "key contains a backslash or NUL byte")
	}
	for _, segment := range strings.Split(key, "/") {
		switch segment {
		case "":
			return invalid(key, "key contains an empty segment")
		case ".":
			return invalid(key, "key contains a '.' segment")
		case "..":
			return invalid(key, "key contains a path traversal segment")
		}
	}
	return nil
}

// JoinURL appends the escaped key to base. It is pure: no I/O and no
// dependency on whether the object exists.
func JoinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + EscapePath(key)
}

// EscapePath escapes each segment of key while keeping the separators.
func EscapePath(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// ContentType returns contentType when set, otherwise the type registered
// for the key's extension, otherwise DefaultContentType.
func ContentType(key, contentType string) string {
	if contentType != "" {
		return contentType
	}
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return DefaultContentType
}

func invalid(key, msg string) error {
	return &errs.Error{Kind: errs.KindInvalidKey, Op: "validate", Key: key, Message: msg}
}
