package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"student-portal.backend/internal/config"
	domainerrors "student-portal.backend/internal/domain/errors"
)

// s3PutAPI is the slice of the S3 client the storage needs
type s3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage persists files in an S3-compatible bucket (AWS or MinIO).
// The locator it returns is the object key.
type S3Storage struct {
	client s3PutAPI
	bucket string
}

// NewS3Storage creates an S3 storage from config. A non-empty endpoint
// points the client at a MinIO-style deployment.
func NewS3Storage(ctx context.Context, cfg config.StorageConfig) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{client: client, bucket: cfg.S3Bucket}, nil
}

// Store uploads the stream and returns the object key as locator
func (s *S3Storage) Store(ctx context.Context, r io.Reader, directory, filename string) (string, error) {
	key := path.Join(directory, uuid.New().String()+"_"+path.Base(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domainerrors.ErrStorage, err)
	}

	return key, nil
}
