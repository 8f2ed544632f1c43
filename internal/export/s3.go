package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// PutObjectAPI is the S3 call the sink needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures an S3 sink.
type S3Options struct {
	Bucket  string
	Prefix  string
	Region  string
	Profile string
}

// S3Sink uploads artifacts to an S3 bucket.
type S3Sink struct {
	api    PutObjectAPI
	bucket string
	prefix string
}

// NewS3Sink loads the AWS configuration and returns an S3 sink.
func NewS3Sink(ctx context.Context, opts S3Options) (*S3Sink, error) {
	if opts.Bucket == "" {
		return nil, errors.New("no S3 bucket configured")
	}

	var loaders []func(*config.LoadOptions) error
	if opts.Region != "" {
		loaders = append(loaders, config.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loaders = append(loaders, config.WithSharedConfigProfile(opts.Profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, wrapAWSError(err, "load AWS config")
	}

	return NewS3SinkWithAPI(s3.NewFromConfig(cfg), opts.Bucket, opts.Prefix), nil
}

// NewS3SinkWithAPI returns an S3 sink over an existing client.
func NewS3SinkWithAPI(api PutObjectAPI, bucket, prefix string) *S3Sink {
	return &S3Sink{api: api, bucket: bucket, prefix: prefix}
}

// Put uploads body under prefix/name and returns its s3:// location.
func (s *S3Sink) Put(ctx context.Context, name, contentType string, body []byte) (string, error) {
	key := path.Join(s.prefix, name)
	in := s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := s.api.PutObject(ctx, &in); err != nil {
		return "", wrapAWSError(err, "put object")
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

func wrapAWSError(err error, operation string) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "AccessDeniedException":
			return fmt.Errorf("access denied for %s: %w", operation, err)
		case "NoSuchBucket":
			return fmt.Errorf("bucket does not exist for %s: %w", operation, err)
		default:
			return fmt.Errorf("%s failed: %s (%s)", operation, apiErr.ErrorMessage(), apiErr.ErrorCode())
		}
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}
