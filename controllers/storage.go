package controllers

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/true-social/api-go/config"
)

// MediaStorage is the object-storage collaborator post media goes through:
// hand it a payload, a content type and a key, get back a public URL.
type MediaStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

type S3Storage struct {
	Client *s3.Client
	Config *config.S3Config
}

func NewS3Storage() *S3Storage {
	cfg := config.GetS3Config()

	opts := s3.Options{
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region: cfg.Region,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	return &S3Storage{
		Client: s3.New(opts),
		Config: cfg,
	}
}

func (s *S3Storage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", s.Config.PublicURL, key), nil
}

func generateMediaKey(fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("uploads/%d_%s%s", time.Now().Unix(), uuid.New().String(), ext)
}
