// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - auth: API key validation (X-API-Key header or api_key query) protecting
//     the API group. An empty key disables it.
//   - rayid: assigns every request a unique Request ID (RayID), storing it in
//     the Fiber locals read by logger.WithRayID and echoing it in the X-Ray-ID
//     response header.
package middleware
