// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// settings it reads: the listen port (4000 by default), the global API prefix,
// the optional API key, allowed CORS origins, the static site directory and the
// path stored objects are served under.
//
// # Usage
//
// This package is embedded by core/config and read by cmd/start.go:
//
//	api := app.Group(cfg.Server.Prefix())
//	app.Get(cfg.Server.Mount()+"/*", files.Serve)
package server
