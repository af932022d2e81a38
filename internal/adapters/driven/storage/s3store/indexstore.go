// Package s3store stores the index artifact as one object in an S3-compatible bucket.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/custodia-labs/docrag/internal/adapters/driven/storage/codec"
	"github.com/custodia-labs/docrag/internal/core/domain"
	"github.com/custodia-labs/docrag/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.IndexStore = (*IndexStore)(nil)

// DefaultKey is the object key used when none is configured.
const DefaultKey = "rag_index.json"

// Config holds configuration for the S3 index store.
type Config struct {
	Bucket string
	Key    string
	Region string

	// Endpoint overrides the AWS endpoint for S3-compatible services.
	Endpoint string

	// AccessKeyID and SecretAccessKey select static credentials. When
	// empty the default AWS credential chain is used.
	AccessKeyID     string
	SecretAccessKey string

	UsePathStyle bool
}

// objectAPI is the subset of the S3 client the store needs.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// IndexStore reads and writes the index artifact as a single object.
type IndexStore struct {
	client objectAPI
	bucket string
	key    string
}

// NewIndexStore builds an S3 client from cfg.
func NewIndexStore(ctx context.Context, cfg Config) (*IndexStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: s3 bucket is required", domain.ErrInvalidConfig)
	}

	opts := []func(*config.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newIndexStore(client, cfg.Bucket, cfg.Key), nil
}

func newIndexStore(client objectAPI, bucket, key string) *IndexStore {
	if key == "" {
		key = DefaultKey
	}
	return &IndexStore{client: client, bucket: bucket, key: key}
}

// Save uploads the artifact, replacing the previous object.
func (s *IndexStore) Save(ctx context.Context, idx *domain.Index) error {
	data, err := codec.Encode(idx)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to put object: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Load downloads and decodes the artifact.
func (s *IndexStore) Load(ctx context.Context) (*domain.Index, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrIndexNotFound
		}
		return nil, fmt.Errorf("%w: failed to get object: %w", domain.ErrStoreUnavailable, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading object: %w", domain.ErrStoreUnavailable, err)
	}

	idx, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Location(), err)
	}
	return idx, nil
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

// Location returns the s3:// URI of the artifact.
func (s *IndexStore) Location() string {
	return "s3://" + s.bucket + "/" + s.key
}

// Close is a no-op.
func (s *IndexStore) Close() error {
	return nil
}
