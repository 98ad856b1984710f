package s3

// DefaultTimeoutSeconds bounds connection setup, TLS handshake and the wait
// for the first response byte.
const DefaultTimeoutSeconds = 30

// Config holds S3-compatible driver settings.
type Config struct {
	// Bucket is the bucket all keys live in.
	Bucket string `validate:"required"`
	// AccessKeyID and SecretAccessKey are static credentials. When both are
	// empty the environment / IAM credential chain is used.
	AccessKeyID     string `validate:"required_with=SecretAccessKey"`
	SecretAccessKey string `validate:"required_with=AccessKeyID"`
	// Region overrides region discovery.
	Region string
	// Endpoint is host[:port], optionally prefixed with http:// or https://.
	// Empty means AWS S3.
	Endpoint string
	// PathStyle places the bucket in the URL path (MinIO mode).
	PathStyle bool
	// UseSSL applies when Endpoint carries no scheme.
	UseSSL bool
	// PublicURL replaces the computed bucket URL, e.g. a CDN in front of it.
	PublicURL string
	// TimeoutSeconds is the transport timeout. Defaults to DefaultTimeoutSeconds.
	TimeoutSeconds int
}
