package gcs

import (
	"context"
	"errors"
	"net/http"

	"storage-gateway/core/errs"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// mapError translates GCS client errors into a *errs.Error.
func mapError(op, key string, err error) *errs.Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return errs.Op(errs.KindIO, op, key, err)
	case errors.Is(err, storage.ErrObjectNotExist):
		return errs.Op(errs.KindNotFound, op, key, err)
	case errors.Is(err, storage.ErrBucketNotExist):
		return errs.Op(errs.KindIO, op, key, err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusNotFound:
			return errs.Op(errs.KindNotFound, op, key, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return errs.Op(errs.KindAuth, op, key, err)
		case http.StatusTooManyRequests, http.StatusRequestEntityTooLarge, http.StatusInsufficientStorage:
			return errs.Op(errs.KindQuota, op, key, err)
		}
	}

	return errs.Op(errs.KindIO, op, key, err)
}
