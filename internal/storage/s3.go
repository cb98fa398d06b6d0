// Package storage uploads proof-of-delivery files to an S3-compatible
// bucket (R2 in production) and hands back the public URL stored on the
// drop.
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"jrs-backend/internal/config"
)

type PodStore struct {
	client *s3.Client
	bucket string
}

// NewPodStore builds the POD store, or returns nil when object storage is
// not configured; drop completion then records no POD URL.
func NewPodStore(cfg *config.Config) *PodStore {
	if cfg.Storage.Endpoint == "" || cfg.Storage.Bucket == "" {
		log.Printf("[Storage] object storage not configured, POD uploads disabled")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Storage.Region),
	)
	if err != nil {
		log.Printf("[Storage] failed to configure client: %v", err)
		return nil
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
	})
	return &PodStore{client: client, bucket: cfg.Storage.Bucket}
}

// UploadPOD stores one proof-of-delivery file under the job id and returns
// its URL.
func (p *PodStore) UploadPOD(ctx context.Context, jobID string, dropIndex int, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("pod/%s/drop-%d-%d", jobID, dropIndex, time.Now().UnixNano())

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("pod upload failed: %w", err)
	}

	return fmt.Sprintf("s3://%s/%s", p.bucket, key), nil
}
