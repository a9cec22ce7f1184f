package media

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultPresignTTL покрывает урок целиком с запасом
const DefaultPresignTTL = 90 * time.Minute

// S3Presigner подписывает GET ссылки на объекты S3-совместимого бакета
type S3Presigner struct {
	client *s3.PresignClient
	bucket string
	ttl    time.Duration
}

var _ Presigner = (*S3Presigner)(nil)

// NewS3Presigner если endpoint задан, включается path-style адресация (MinIO и т.п.)
func NewS3Presigner(ctx context.Context, bucket, region, endpoint string) (*S3Presigner, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	return newS3Presigner(s3.NewFromConfig(cfg, s3opts...), bucket, DefaultPresignTTL), nil
}

func newS3Presigner(client *s3.Client, bucket string, ttl time.Duration) *S3Presigner {
	return &S3Presigner{
		client: s3.NewPresignClient(client),
		bucket: bucket,
		ttl:    ttl,
	}
}

func (p *S3Presigner) Presign(ctx context.Context, key string) (string, error) {
	req, err := p.client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.ttl))
	if err != nil {
		return "", fmt.Errorf("s3 presign get object: %w", err)
	}
	return req.URL, nil
}
