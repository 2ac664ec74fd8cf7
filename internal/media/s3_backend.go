package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string
}

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Backend keeps blobs in an S3-compatible bucket, one object per stored
// filename under an optional key prefix.
type S3Backend struct {
	client s3API
	bucket string
	prefix string
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

func NewS3Backend(ctx context.Context, cfg S3Config) (*S3Backend, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("s3 bucket is required")
	}

	options := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		options = append(options, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsConfig, err := loadDefaultAWSConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3BackendWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

func newS3BackendWithClient(client s3API, bucket string, prefix string) *S3Backend {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &S3Backend{client: client, bucket: bucket, prefix: prefix}
}

func (backend *S3Backend) key(filename string) string {
	return backend.prefix + filename
}

func (backend *S3Backend) Write(ctx context.Context, filename string, data []byte) error {
	_, err := backend.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(backend.bucket),
		Key:           aws.String(backend.key(filename)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(ContentType(filename)),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", filename, err)
	}
	return nil
}

func (backend *S3Backend) Read(ctx context.Context, filename string) ([]byte, error) {
	output, err := backend.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(backend.bucket),
		Key:    aws.String(backend.key(filename)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get object %s: %w", filename, err)
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", filename, err)
	}
	return data, nil
}

func (backend *S3Backend) Exists(ctx context.Context, filename string) (bool, error) {
	_, err := backend.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(backend.bucket),
		Key:    aws.String(backend.key(filename)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("head object %s: %w", filename, err)
	}
	return true, nil
}

func isS3NotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
