package metrics

// Config holds configuration for the metrics endpoint.
type Config struct {
	// Enabled exposes the endpoint and instruments the storage driver.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Path is where the endpoint is mounted.
	Path string `mapstructure:"path" default:"/metrics"`
}
