// Package storage issues presigned upload URLs for user avatars on an
// S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/oggyb/reelread/internal/config"
)

// UploadTTL is how long a presigned avatar PUT stays valid.
const UploadTTL = 15 * time.Minute

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Upload is a presigned PUT plus the URL the object will be served from.
type Upload struct {
	UploadURL string
	PublicURL string
	ExpiresAt time.Time
}

// Avatars wraps the minio client for the avatar bucket.
type Avatars struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewAvatars connects to cfg.Storage. Region must be set so presigning
// never needs a bucket-location round trip.
func NewAvatars(cfg *config.Config) (*Avatars, error) {
	client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
		Region: cfg.Storage.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	public := strings.TrimRight(cfg.Storage.PublicURL, "/")
	if public == "" {
		scheme := "http"
		if cfg.Storage.UseSSL {
			scheme = "https"
		}
		public = fmt.Sprintf("%s://%s/%s", scheme, cfg.Storage.Endpoint, cfg.Storage.Bucket)
	}
	return &Avatars{client: client, bucket: cfg.Storage.Bucket, publicURL: public}, nil
}

// ObjectKey is avatars/<user>/<random>.<ext>.
func ObjectKey(userID, contentType string) (string, error) {
	ext, ok := extensions[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported avatar content type %q", contentType)
	}
	return fmt.Sprintf("avatars/%s/%s.%s", userID, uuid.NewString(), ext), nil
}

// PresignUpload returns a PUT URL for a fresh avatar object of userID.
func (a *Avatars) PresignUpload(ctx context.Context, userID, contentType string) (*Upload, error) {
	key, err := ObjectKey(userID, contentType)
	if err != nil {
		return nil, err
	}
	u, err := a.client.PresignedPutObject(ctx, a.bucket, key, UploadTTL)
	if err != nil {
		return nil, fmt.Errorf("presign avatar upload: %w", err)
	}
	return &Upload{
		UploadURL: u.String(),
		PublicURL: a.publicURL + "/" + key,
		ExpiresAt: time.Now().Add(UploadTTL),
	}, nil
}
