package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Uploader interface {
	Upload(ctx context.Context, body io.Reader, key, contentType string) (string, error)
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Options struct {
	Bucket   string
	Region   string
	Endpoint string
	KeyID    string
	Secret   string
}

type S3Uploader struct {
	client  putObjectAPI
	bucket  string
	baseURL string
}

func NewS3Uploader(ctx context.Context, o Options) (*S3Uploader, error) {
	loaders := []func(*config.LoadOptions) error{config.WithRegion(o.Region)}
	if o.KeyID != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.KeyID, o.Secret, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		}
	})
	return &S3Uploader{client: client, bucket: o.Bucket, baseURL: objectBaseURL(o)}, nil
}

func objectBaseURL(o Options) string {
	if o.Endpoint != "" {
		return fmt.Sprintf("%s/%s/", o.Endpoint, o.Bucket)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", o.Bucket, o.Region)
}

// Upload stores body under key and returns the object URL.
func (u *S3Uploader) Upload(ctx context.Context, body io.Reader, key, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return u.baseURL + key, nil
}
