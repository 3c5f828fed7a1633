package storage

import (
	"context"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/novinbook/bookstore-backend/pkg/config"
	apperrors "github.com/novinbook/bookstore-backend/pkg/errors"
)

// ObjectStore exposes the storage operations book cover handling needs.
type ObjectStore interface {
	PresignPut(ctx context.Context, key string) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// Client implements ObjectStore against MinIO/S3 compatible storage.
type Client struct {
	minio          *minio.Client
	bucket         string
	uploadExpiry   time.Duration
	downloadExpiry time.Duration
}

// New builds a storage client from the configured endpoint and credentials.
// The bucket must already exist; provisioning is out of scope here.
func New(cfg config.StorageConfig) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "init object storage client")
	}
	return &Client{
		minio:          mc,
		bucket:         cfg.Bucket,
		uploadExpiry:   cfg.UploadURLExpiry,
		downloadExpiry: cfg.DownloadURLExpiry,
	}, nil
}

// PresignPut returns a URL the caller can PUT an object to under key.
func (c *Client) PresignPut(ctx context.Context, key string) (string, error) {
	u, err := c.minio.PresignedPutObject(ctx, c.bucket, key, c.uploadExpiry)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeDependency, err, "presign upload url")
	}
	return u.String(), nil
}

// PresignGet returns a temporary download URL for key.
func (c *Client) PresignGet(ctx context.Context, key string) (string, error) {
	u, err := c.minio.PresignedGetObject(ctx, c.bucket, key, c.downloadExpiry, url.Values{})
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeDependency, err, "presign download url")
	}
	return u.String(), nil
}

// Delete removes the object stored under key.
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.minio.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return apperrors.Wrap(apperrors.CodeDependency, err, "delete object")
	}
	return nil
}

// Ping verifies the bucket is reachable.
func (c *Client) Ping(ctx context.Context) error {
	exists, err := c.minio.BucketExists(ctx, c.bucket)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeDependency, err, "check storage bucket")
	}
	if !exists {
		return apperrors.New(apperrors.CodeDependency, "storage bucket does not exist")
	}
	return nil
}

var coverExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// NewCoverKey generates an object key for a book cover from an original
// filename. Only common image extensions are accepted.
func NewCoverKey(filename string) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !coverExtensions[ext] {
		return "", apperrors.New(apperrors.CodeValidation, "unsupported image extension")
	}
	return "books/" + uuid.NewString() + ext, nil
}
