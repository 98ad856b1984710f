package storage

import (
	"storage-gateway/core/storage/gcs"
	"storage-gateway/core/storage/local"
	"storage-gateway/core/storage/s3"
)

// Driver names accepted in Config.Driver.
const (
	DriverLocal = "local"
	DriverS3    = "s3"
	DriverGCS   = "gcs"
)

// Config selects the driver and carries the connection settings of every
// driver. Only the fields of the selected driver are validated and used.
type Config struct {
	// Driver is local, s3 or gcs.
	Driver string `mapstructure:"driver" default:"local"`
	// Connection holds driver connection settings.
	Connection Connection `mapstructure:"connection"`
}

// Connection holds the connection settings for all drivers.
type Connection struct {
	// RootURL is the base directory of the local driver.
	RootURL string `mapstructure:"root_url" default:"public/storage"`
	// PublicURL is the externally reachable URL prefix for stored objects.
	PublicURL string `mapstructure:"public_url" default:""`

	// Bucket is the S3 / MinIO bucket.
	Bucket string `mapstructure:"bucket" default:""`
	// AccessKeyID is the S3 access key.
	AccessKeyID string `mapstructure:"access_key_id" default:""`
	// SecretAccessKey is the S3 secret key.
	SecretAccessKey string `mapstructure:"secret_access_key" default:""`
	// Region is the S3 region.
	Region string `mapstructure:"region" default:""`
	// Endpoint is the S3-compatible endpoint (host:port, optional scheme).
	Endpoint string `mapstructure:"endpoint" default:""`
	// PathStyle enables MinIO mode: bucket in the URL path.
	PathStyle bool `mapstructure:"path_style" default:"false"`
	// UseSSL enables TLS when the endpoint has no scheme.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// TimeoutSeconds bounds S3 connection setup and first response byte.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`

	// GCSProjectID is the quota project for GCS requests.
	GCSProjectID string `mapstructure:"gcs_project_id" default:""`
	// GCSKeyFile is a service account JSON key file.
	GCSKeyFile string `mapstructure:"gcs_key_file" default:""`
	// GCSAPIEndpoint overrides the GCS endpoint (emulators).
	GCSAPIEndpoint string `mapstructure:"gcs_api_endpoint" default:""`
	// GCSBucket is the GCS bucket. Falls back to Bucket.
	GCSBucket string `mapstructure:"gcs_bucket" default:""`
}

// Local returns the local driver settings.
func (c Config) Local() local.Config {
	return local.Config{
		Root:      c.Connection.RootURL,
		PublicURL: c.Connection.PublicURL,
	}
}

// S3 returns the S3 driver settings.
func (c Config) S3() s3.Config {
	return s3.Config{
		Bucket:          c.Connection.Bucket,
		AccessKeyID:     c.Connection.AccessKeyID,
		SecretAccessKey: c.Connection.SecretAccessKey,
		Region:          c.Connection.Region,
		Endpoint:        c.Connection.Endpoint,
		PathStyle:       c.Connection.PathStyle,
		UseSSL:          c.Connection.UseSSL,
		PublicURL:       c.Connection.PublicURL,
		TimeoutSeconds:  c.Connection.TimeoutSeconds,
	}
}

// GCS returns the GCS driver settings.
func (c Config) GCS() gcs.Config {
	bucket := c.Connection.GCSBucket
	if bucket == "" {
		bucket = c.Connection.Bucket
	}
	return gcs.Config{
		Bucket:      bucket,
		ProjectID:   c.Connection.GCSProjectID,
		KeyFile:     c.Connection.GCSKeyFile,
		APIEndpoint: c.Connection.GCSAPIEndpoint,
		PublicURL:   c.Connection.PublicURL,
	}
}
