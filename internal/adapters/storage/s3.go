package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	storagePort "socialfeed/internal/ports/storage"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3Options struct {
	Endpoint       string
	PublicEndpoint string
	Region         string
	Bucket         string
	AccessKey      string
	SecretKey      string
	DisableSSL     bool
}

type S3Storage struct {
	uploader *s3manager.Uploader
	opts     S3Options
}

func NewS3Storage(opts S3Options) (*S3Storage, error) {
	cfg := &aws.Config{
		Region:           aws.String(opts.Region),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(opts.DisableSSL),
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = aws.String(opts.Endpoint)
	}
	if opts.AccessKey != "" {
		cfg.Credentials = credentials.NewStaticCredentials(opts.AccessKey, opts.SecretKey, "")
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("create s3 session: %w", err)
	}
	return &S3Storage{
		uploader: s3manager.NewUploader(sess),
		opts:     opts,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, object *storagePort.UploadObject) (*storagePort.UploadResponse, error) {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(object.Key),
		Body:        bytes.NewReader(object.Data),
		ACL:         aws.String("public-read"),
		ContentType: aws.String(object.Mime),
	})
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w, bucket %s, key %s", err, s.opts.Bucket, object.Key)
	}
	return &storagePort.UploadResponse{Url: s.URL(object.Key), Key: object.Key}, nil
}

func (s *S3Storage) URL(key string) string {
	endpoint := s.opts.PublicEndpoint
	if endpoint == "" {
		endpoint = s.opts.Endpoint
	}
	if endpoint == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.opts.Bucket, s.opts.Region, key)
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(endpoint, "/"), s.opts.Bucket, key)
}
