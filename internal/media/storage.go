// Package media stores uploaded poster images in S3-compatible object
// storage.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	appconfig "cinelog/internal/config"
	"cinelog/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// MaxPosterSize caps uploads at 5 MiB.
const MaxPosterSize = 5 << 20

var allowedPosterTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Storage uploads posters and hands back public URLs.
type Storage interface {
	UploadPoster(ctx context.Context, contentType string, size int64, body io.Reader) (string, error)
}

type s3Storage struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewStorage builds an S3-backed storage from the application config.
// Returns nil when no endpoint is configured; callers treat a nil
// Storage as "poster uploads disabled".
func NewStorage(ctx context.Context, cfg *appconfig.Config) (Storage, error) {
	if cfg.S3Endpoint == "" {
		return nil, nil
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load object storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		// MinIO and most self-hosted backends need path-style addressing.
		o.UsePathStyle = true
	})

	publicBase := cfg.S3PublicBaseURL
	if publicBase == "" {
		publicBase = strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	}

	return &s3Storage{
		client:        client,
		bucket:        cfg.S3Bucket,
		publicBaseURL: strings.TrimRight(publicBase, "/"),
	}, nil
}

func (s *s3Storage) UploadPoster(ctx context.Context, contentType string, size int64, body io.Reader) (string, error) {
	ext, ok := allowedPosterTypes[contentType]
	if !ok {
		return "", models.NewValidationError("poster must be a JPEG, PNG or WebP image")
	}
	if size <= 0 || size > MaxPosterSize {
		return "", models.NewValidationError("poster must be between 1 byte and 5 MiB")
	}

	key := path.Join("posters", uuid.NewString()+ext)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", models.NewInternalError(fmt.Errorf("poster upload failed: %w", err))
	}

	return s.publicBaseURL + "/" + key, nil
}
