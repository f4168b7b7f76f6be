package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	appconfig "github.com/Aniket1026/yoto/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore is the subset of object storage the uploader needs.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	// PublicURL returns the URL clients use to fetch key.
	PublicURL(key string) string
}

// S3Store stores objects in an S3 compatible bucket (AWS, MinIO, R2).
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3Store builds the client from configuration. Static credentials are used
// when both keys are set, otherwise the default AWS credential chain applies.
func NewS3Store(ctx context.Context, c *appconfig.Configuration) (*S3Store, error) {
	if c.S3_Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is not configured")
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(c.S3_Region)}
	if c.S3_AccessKey != "" && c.S3_SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.S3_AccessKey, c.S3_SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := strings.TrimRight(c.S3_Endpoint, "/")
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = c.S3_UsePathStyle
	})

	return &S3Store{
		client:        client,
		bucket:        c.S3_Bucket,
		publicBaseURL: publicBaseURL(c, endpoint),
	}, nil
}

func publicBaseURL(c *appconfig.Configuration, endpoint string) string {
	if c.S3_PublicBaseURL != "" {
		return strings.TrimRight(c.S3_PublicBaseURL, "/")
	}
	if endpoint != "" {
		return endpoint + "/" + c.S3_Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.S3_Bucket, c.S3_Region)
}

func (s *S3Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) PublicURL(key string) string {
	return s.publicBaseURL + "/" + key
}

// KeyFromURL inverts PublicURL. ok is false for URLs outside the bucket.
func (s *S3Store) KeyFromURL(url string) (string, bool) {
	prefix := s.publicBaseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	return key, key != ""
}
