package schemasource

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/kinsman/brandsite/backend/go-services/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIO reads the definition from an object in a bucket.
type MinIO struct {
	client *minio.Client
	bucket string
	object string
}

// NewMinIO creates a client for cfg. It does not touch the network; a missing
// bucket or object is reported by Read.
func NewMinIO(cfg config.MinIOConfig, object string) (*MinIO, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	if object == "" {
		return nil, fmt.Errorf("minio schema object not set")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	return &MinIO{client: mc, bucket: cfg.Bucket, object: object}, nil
}

func (m *MinIO) Read(ctx context.Context) (string, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, m.object, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("get %s/%s: %w", m.bucket, m.object, err)
	}
	defer obj.Close()
	b, err := io.ReadAll(obj)
	if err != nil {
		return "", fmt.Errorf("read %s/%s: %w", m.bucket, m.object, err)
	}
	return string(b), nil
}

// Upload stores content as the schema object, creating the bucket if needed.
func (m *MinIO) Upload(ctx context.Context, content []byte) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("minio bucket create: %w", err)
		}
	}
	_, err = m.client.PutObject(ctx, m.bucket, m.object, bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: "text/plain; charset=utf-8"})
	return err
}

// New picks the MinIO source when an endpoint and object are configured and the
// local file otherwise.
func New(cfg *config.Config) (Source, error) {
	if cfg.MinIO.Endpoint != "" && cfg.Schema.Object != "" {
		return NewMinIO(cfg.MinIO, cfg.Schema.Object)
	}
	return File{Path: cfg.Schema.Path}, nil
}
