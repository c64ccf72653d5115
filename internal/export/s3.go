package export

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/escala-voluntarios/internal/config"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Archiver struct {
	client putObjectAPI
	bucket string
	prefix string
}

// NewS3Archiver aceita qualquer endpoint compatível com S3 (MinIO, R2...).
func NewS3Archiver(cfg config.ExportConfig) *S3Archiver {
	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &S3Archiver{
		client: s3.New(opts),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}
}

// Put grava o arquivo sob prefix/<uuid>-name e devolve a chave.
func (a *S3Archiver) Put(ctx context.Context, name string, body []byte, contentType string) (string, error) {
	key := path.Join(strings.TrimSuffix(a.prefix, "/"), fmt.Sprintf("%s-%s", uuid.NewString(), name))
	key = strings.TrimPrefix(key, "/")

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload export %s: %w", key, err)
	}
	return key, nil
}
