// Package files exposes the storage facade over HTTP.
//
// # Routes
//
// Relative to the API group:
//   - PUT /files/{key}: store the raw request body
//   - POST /files/{key}: store the multipart field "file"
//   - GET /files/{key}: download with the stored content type
//   - HEAD /files/{key}: metadata only
//   - DELETE /files/{key}: remove (idempotent)
//   - GET /urls/{key}: public URL, computed without I/O
//
// Mount registers GET and HEAD under the public storage path (/storage by
// default) so stored objects are served through the facade and the key rules
// of the active driver apply.
//
// # Errors
//
// Storage error kinds map to statuses: invalid key 400, not found 404,
// not configured 503, quota 507, auth and io 502, anything else 500.
package files
