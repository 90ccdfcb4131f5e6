package storage

import (
	"fmt"

	"socialfeed/internal/config"
	storagePort "socialfeed/internal/ports/storage"
)

// New انتخاب backend بر اساس STORAGE_DRIVER
func New(cfg *config.Config) (storagePort.Storage, error) {
	switch cfg.StorageDriver {
	case "local":
		return NewLocalStorage(cfg.MediaRoot, cfg.MediaURL), nil
	case "s3":
		s3, err := NewS3Storage(S3Options{
			Endpoint:       cfg.S3.Endpoint,
			PublicEndpoint: cfg.S3.PublicEndpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			DisableSSL:     cfg.S3.DisableSSL,
		})
		if err != nil {
			return nil, err
		}
		return s3, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
