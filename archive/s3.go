// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/danielhkuo/classrep/models"
)

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // S3-compatible endpoint such as MinIO; empty means AWS
	AccessKey string
	SecretKey string
}

// S3 uploads result snapshots as JSON objects.
type S3 struct {
	client *s3.Client
	bucket string
}

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket required")
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3{client: client, bucket: cfg.Bucket}, nil
}

// ObjectKey is where a snapshot is stored inside the bucket
func ObjectKey(snap models.ResultSnapshot) string {
	d := snap.ComputedAt.UTC()
	return fmt.Sprintf("snapshots/%d/%02d/%02d/%s.json", d.Year(), d.Month(), d.Day(), snap.ID)
}

// ArchiveSnapshot uploads snap and returns its s3:// URI.
func (a *S3) ArchiveSnapshot(ctx context.Context, snap models.ResultSnapshot) (string, error) {
	body, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := ObjectKey(snap)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot %s: %w", snap.ID, err)
	}

	return "s3://" + a.bucket + "/" + key, nil
}
