// Package health reports liveness and storage health.
//
// GET /health answers as long as the process serves requests. GET
// /health/storage runs a put, get and delete of a probe object under
// ".health/" through the storage facade and returns the driver name with the
// latency of each step. Any failed step turns the response into a 503.
package health
