package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/HestiaEstates/listing-api/internal/config"
)

// FileStore is the storage contract the core sees: it hands in bytes, it gets
// back an opaque fileRef. How and where bytes live is infrastructure.
type FileStore interface {
	Put(ctx context.Context, key string, contentType string, data []byte) (fileRef string, err error)
}

// S3Store stores files in an S3-compatible bucket.
type S3Store struct {
	client *s3.Client
	bucket string
}

func NewS3Store(cfg *config.Config) *S3Store {
	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return &S3Store{
		client: s3.New(opts),
		bucket: cfg.S3Bucket,
	}
}

func (s *S3Store) Put(
	ctx context.Context,
	key string,
	contentType string,
	data []byte,
) (string, error) {

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return key, nil
}

// ObjectKey builds a collision-free object key under a property's prefix.
func ObjectKey(propertyID uint, kind string, ext string) string {
	return fmt.Sprintf("properties/%d/%s/%s%s", propertyID, kind, uuid.NewString(), ext)
}
