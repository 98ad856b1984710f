package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"4000"`
	// APIPrefix is the global prefix of the API routes.
	APIPrefix string `mapstructure:"api_prefix" default:"api"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// CORSOrigins is a comma separated list of allowed origins.
	CORSOrigins string `mapstructure:"cors_origins" default:"*"`
	// SiteDir is served at / when it exists.
	SiteDir string `mapstructure:"site_dir" default:"public/site"`
	// BodyLimitMB caps request bodies, uploads included.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"64"`
	// StorageMount is the path the stored objects are served under.
	StorageMount string `mapstructure:"storage_mount" default:"/storage"`
}

// Prefix returns the API prefix as a route path ("/api").
func (c Config) Prefix() string {
	return normalize(c.APIPrefix)
}

// Mount returns the storage mount as a route path ("/storage").
func (c Config) Mount() string {
	return normalize(c.StorageMount)
}

func normalize(p string) string {
	for len(p) > 0 && p[len(p)-1] == '/' {
		p = p[:len(p)-1]
	}
	for len(p) > 0 && p[0] == '/' {
		p = p[1:]
	}
	return "/" + p
}
