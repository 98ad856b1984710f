// Package errs defines the error taxonomy shared by every storage driver.
//
// Drivers translate backend-specific failures (filesystem errno values, S3
// error responses, GCS API errors) into a *Error carrying one Kind. Callers
// branch on the kind through the Is* predicates and never import a driver
// package to inspect an error.
//
// # Kinds
//
//   - NotConfigured: the storage facade was used before it was configured.
//   - AlreadyConfigured: a second configuration was attempted.
//   - InvalidConfig: configuration failed validation.
//   - InvalidKey: the key is malformed or escapes the storage namespace.
//   - NotFound: the object does not exist.
//   - Auth: the backend rejected the credentials or the permission.
//   - Quota: space or provider limits were exceeded.
//   - IO: any other transient or connectivity failure.
//
// # Usage
//
//	data, err := store.Get(ctx, "avatars/1.png")
//	if errs.IsNotFound(err) {
//	    return c.SendStatus(fiber.StatusNotFound)
//	}
package errs
