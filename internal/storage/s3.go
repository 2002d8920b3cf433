package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"companyhub/internal/config"
)

// Uploader stores an object under a key and returns its durable public URL.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// S3Uploader stores assets in an S3-compatible bucket. Keys are chosen by the
// caller; uploading to an existing key overwrites the object, so deterministic
// keys keep repeated uploads from accumulating.
type S3Uploader struct {
	client    *s3.Client
	bucket    string
	region    string
	publicURL string
}

// Ensure S3Uploader implements Uploader
var _ Uploader = (*S3Uploader)(nil)

// NewS3Uploader builds an uploader from application config. S3_BASE_ENDPOINT
// points it at MinIO-style deployments.
func NewS3Uploader(ctx context.Context, cfg *config.Config) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{
		client:    client,
		bucket:    cfg.S3Bucket,
		region:    cfg.S3Region,
		publicURL: strings.TrimRight(cfg.S3PublicURL, "/"),
	}, nil
}

// Upload puts the object and returns its public URL.
func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return u.objectURL(key), nil
}

func (u *S3Uploader) objectURL(key string) string {
	if u.publicURL != "" {
		return u.publicURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
}
