package services

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ThumbnailStorage persists uploaded preview images and returns their public URL.
type ThumbnailStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// uploader is the part of manager.Uploader the S3 storage needs.
type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3ThumbnailStorage uploads thumbnails to a single bucket.
type S3ThumbnailStorage struct {
	uploader uploader
	bucket   string
	region   string
}

func NewS3ThumbnailStorage(client *s3.Client, bucket, region string) *S3ThumbnailStorage {
	return &S3ThumbnailStorage{uploader: manager.NewUploader(client), bucket: bucket, region: region}
}

func (s *S3ThumbnailStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("gagal mengunggah thumbnail ke S3: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
