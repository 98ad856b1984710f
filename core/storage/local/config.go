package local

// DefaultPublicURL is the URL prefix used when none is configured. The
// commands replace it with the configured server storage mount.
const DefaultPublicURL = "/storage"

// Config holds local filesystem driver settings.
type Config struct {
	// Root is the directory all keys resolve under.
	Root string `validate:"required"`
	// PublicURL is the externally reachable prefix for stored files.
	PublicURL string
}
