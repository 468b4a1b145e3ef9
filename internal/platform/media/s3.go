package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"blog_backend/internal/common"
	"blog_backend/internal/platform/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const coverPrefix = "covers/"

// S3PutAPI is the part of *s3.Client the uploader needs.
type S3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader writes covers to a bucket served from PublicBaseURL.
type S3Uploader struct {
	client        S3PutAPI
	bucket        string
	publicBaseURL string
}

func NewS3Uploader(client S3PutAPI, bucket, publicBaseURL string) *S3Uploader {
	return &S3Uploader{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// NewS3UploaderFromEnv resolves AWS credentials and region through the SDK default chain.
func NewS3UploaderFromEnv(ctx context.Context, bucket, publicBaseURL string) (*S3Uploader, error) {
	if bucket == "" {
		return nil, errors.New("S3_BUCKET is required for the s3 media provider")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3Uploader(s3.NewFromConfig(cfg), bucket, publicBaseURL), nil
}

func (u *S3Uploader) Upload(ctx context.Context, file File, hint string) (string, error) {
	key := ObjectKey(hint, file)
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file.Data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Errorf("failed to put cover %s: %v", key, err)
		return "", fmt.Errorf("s3 put %s: %v: %w", key, err, common.ErrUpload)
	}

	logger.Infof("stored cover %s in bucket %s", key, u.bucket)
	return u.publicBaseURL + "/" + key, nil
}

// ObjectKey builds covers/<slug>-<uuid><ext>; the slug part is dropped when hint has none.
func ObjectKey(hint string, file File) string {
	name := uuid.NewString()
	if s := slug.Make(hint); s != "" {
		name = s + "-" + name
	}
	return coverPrefix + name + extensionFor(file)
}

func extensionFor(file File) string {
	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != "" {
		return ext
	}
	if file.ContentType != "" {
		if exts, err := mime.ExtensionsByType(file.ContentType); err == nil && len(exts) > 0 {
			return exts[0]
		}
	}
	return ""
}
