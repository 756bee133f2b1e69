package storage

import (
	"context"
	"fmt"
	"time"
)

// Storage is the object store holding candidate CVs. The API never proxies
// file bytes; clients upload and download through presigned URLs.
type Storage interface {
	// PresignUpload returns a URL the client can PUT the object to.
	PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)

	// GetSignedURL returns a temporary download URL.
	GetSignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Exists checks whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes the object under key.
	Delete(ctx context.Context, key string) error
}

// Config holds storage configuration
type Config struct {
	Type      string // local, s3, cloudflare_r2
	BasePath  string // For local storage
	BaseURL   string // Public URL base
	Bucket    string // For S3/R2
	Region    string // For S3
	AccessKey string // For S3/R2
	SecretKey string // For S3/R2
	Endpoint  string // For R2 or custom S3
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
