package storage

import (
	"context"

	"storage-gateway/core/storage/gcs"
	"storage-gateway/core/storage/local"
	"storage-gateway/core/storage/s3"
)

// NewDriver validates cfg and builds the selected driver.
func NewDriver(ctx context.Context, cfg Config) (Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Driver {
	case DriverS3:
		d, err := s3.New(cfg.S3())
		if err != nil {
			return nil, err
		}
		return d, nil
	case DriverGCS:
		d, err := gcs.New(ctx, cfg.GCS())
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		d, err := local.New(cfg.Local())
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}
