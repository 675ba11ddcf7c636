// Package objectstore stores cover images in S3-compatible object
// storage (AWS S3, MinIO) and serves them by public URL.
package objectstore

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/bookden/bookden/pkg/api"
	"github.com/bookden/bookden/pkg/transport"
)

// Config holds the S3 connection settings. Endpoint is optional and
// only needed for S3-compatible services like MinIO.
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string

	// PublicBaseURL is the prefix of the URLs handed back to clients,
	// e.g. "https://images.example.com". Objects must be readable
	// through it.
	PublicBaseURL string
}

// s3API is the subset of the S3 client the store uses.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Store uploads cover images to an S3 bucket.
type Store struct {
	client s3API
	bucket string
	base   string
}

var _ transport.ImageStore = (*Store)(nil)

// New creates an S3-backed image store.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket is not configured")
	}
	if cfg.PublicBaseURL == "" {
		return nil, fmt.Errorf("public base URL is not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// MinIO and most self-hosted S3 services need path-style addressing.
			o.UsePathStyle = true
		}
	})

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		base:   strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload decodes a base64 data URI, stores the bytes under a
// date-partitioned key, and returns the public URL of the object.
func (s *Store) Upload(ctx context.Context, dataURI string) (string, error) {
	contentType, data, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	key := objectKey(contentType)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading object: %w", err)
	}

	return s.base + "/" + key, nil
}

// Delete removes the object behind a previously returned URL.
func (s *Store) Delete(ctx context.Context, url string) error {
	if !s.Owns(url) {
		return fmt.Errorf("url %q is not in this store", url)
	}
	key := strings.TrimPrefix(url, s.base+"/")

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting object: %w", err)
	}
	return nil
}

// Owns reports whether the URL points into this store.
func (s *Store) Owns(url string) bool {
	return strings.HasPrefix(url, s.base+"/")
}

// objectKey builds a date-partitioned key with a random suffix, e.g.
// "covers/2026/08/31/book_x3f...png".
func objectKey(contentType string) string {
	now := time.Now().UTC()
	return fmt.Sprintf("covers/%04d/%02d/%02d/%s%s",
		now.Year(), now.Month(), now.Day(), api.NewImageKey(), extensionFor(contentType))
}

// decodeDataURI splits a "data:<mediatype>;base64,<payload>" URI into
// its content type and decoded bytes. Malformed input yields a
// validation error so the handler reports 400, not 500.
func decodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, api.NewValidationError("image", "image must be a base64 data URI")
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, api.NewValidationError("image", "image must be a base64 data URI")
	}

	contentType, encoding, hasEncoding := strings.Cut(meta, ";")
	if !hasEncoding || encoding != "base64" {
		return "", nil, api.NewValidationError("image", "image data URI must be base64 encoded")
	}
	if contentType == "" || !strings.HasPrefix(contentType, "image/") {
		return "", nil, api.NewValidationError("image", "image data URI must carry an image media type")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, api.NewValidationError("image", "invalid base64 image payload")
	}
	if len(data) == 0 {
		return "", nil, api.NewValidationError("image", "image payload is empty")
	}

	return contentType, data, nil
}

// extensionFor maps common image media types to file extensions.
func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
