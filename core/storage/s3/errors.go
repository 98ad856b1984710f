package s3

import (
	"context"
	"errors"
	"net/http"

	"storage-gateway/core/errs"

	"github.com/minio/minio-go/v7"
)

// mapError translates a MinIO SDK error into a *errs.Error.
func mapError(op, key string, err error) *errs.Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Op(errs.KindIO, op, key, err)
	}

	var resp minio.ErrorResponse
	if !errors.As(err, &resp) {
		return errs.Op(errs.KindIO, op, key, err)
	}

	// A missing bucket is a deployment problem, never an absent object.
	switch resp.Code {
	case "NoSuchBucket":
		return errs.Op(errs.KindIO, op, key, err)
	case "NoSuchKey", "NotFound":
		return errs.Op(errs.KindNotFound, op, key, err)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken", "InvalidToken":
		return errs.Op(errs.KindAuth, op, key, err)
	case "QuotaExceeded", "EntityTooLarge", "XMinioStorageFull", "XMinioAdminBucketQuotaExceeded":
		return errs.Op(errs.KindQuota, op, key, err)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return errs.Op(errs.KindNotFound, op, key, err)
	case http.StatusUnauthorized, http.StatusForbidden:
		return errs.Op(errs.KindAuth, op, key, err)
	case http.StatusInsufficientStorage, http.StatusRequestEntityTooLarge:
		return errs.Op(errs.KindQuota, op, key, err)
	}

	return errs.Op(errs.KindIO, op, key, err)
}
