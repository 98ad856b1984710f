// Package config provides configuration management for the storage gateway.
//
// It uses Viper to read environment variables, optionally seeded from a .env
// file through godotenv. Defaults come from the `default` struct tags of the
// partial configurations and are registered by walking the Config struct.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP port, API prefix, API key, CORS origins, site directory
//   - Storage: driver selector (local, s3, gcs) and its connection settings
//   - Log: logging level and format
//   - Metrics: prometheus endpoint toggle and path
//
// Nested keys map to environment variables by replacing dots with underscores,
// so storage.connection.bucket is read from STORAGE_CONNECTION_BUCKET.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.Driver)
package config
