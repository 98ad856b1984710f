package gcs

// DefaultPublicHost serves public objects by path: https://storage.googleapis.com/{bucket}/{key}.
const DefaultPublicHost = "https://storage.googleapis.com"

// Config holds Google Cloud Storage driver settings.
type Config struct {
	// Bucket is the bucket all keys live in.
	Bucket string `validate:"required"`
	// ProjectID is billed for requests (quota project). Optional.
	ProjectID string
	// KeyFile is a service account JSON key. Empty means application
	// default credentials, or no authentication when APIEndpoint is set.
	KeyFile string
	// APIEndpoint overrides the JSON API endpoint, e.g. an emulator.
	APIEndpoint string
	// PublicURL replaces the default https://storage.googleapis.com/{bucket} prefix.
	PublicURL string
}
