package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/logging"
)

// Uploader stores packaging photos in the blob bucket and hands back a
// public link. Built once at startup and injected into the handlers.
type Uploader struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

// NewUploader builds the uploader from the environment. When S3_BUCKET is
// unset it returns nil and the upload endpoint degrades to an error
// response; everything else keeps working.
func NewUploader(ctx context.Context) (*Uploader, error) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		logging.LogKV("warn", "file uploads disabled", map[string]interface{}{
			"reason": "S3_BUCKET not set",
		})
		return nil, nil
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = os.Getenv("AWS_DEFAULT_REGION")
	}
	if region == "" {
		region = "sa-east-1"
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS default config: %w", err)
	}

	publicBase := os.Getenv("S3_PUBLIC_BASE_URL")
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return &Uploader{
		client:     s3.NewFromConfig(cfg),
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

// Upload stores one file under a fresh key and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, originalName, contentType string, body io.Reader) (string, error) {
	objectKey := fmt.Sprintf("packaging/%s%s", uuid.NewString(), filepath.Ext(originalName))

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &u.bucket,
		Key:         &objectKey,
		Body:        body,
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", u.publicBase, objectKey), nil
}
