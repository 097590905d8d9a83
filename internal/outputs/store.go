package outputs

import (
	"context"
	"errors"
	"fmt"

	"github.com/imamik/fxstack/internal/config"
	"github.com/imamik/fxstack/internal/platform/s3"
	"github.com/imamik/fxstack/internal/util/naming"
)

// ObjectStore is the subset of the S3 client the store needs.
type ObjectStore interface {
	EnsureBucket(ctx context.Context, bucket string) error
	PutJSON(ctx context.Context, bucket, key string, v any) error
	GetJSON(ctx context.Context, bucket, key string, v any) error
	DeleteObject(ctx context.Context, bucket, key string) error
}

var _ ObjectStore = (*s3.Client)(nil)

// Store publishes outputs to s3://<bucket>/<stack>/outputs.json.
type Store struct {
	client ObjectStore
	bucket string
	key    string
}

// NewStore creates a store for stack in bucket.
func NewStore(client ObjectStore, bucket, stack string) *Store {
	return &Store{client: client, bucket: bucket, key: naming.OutputsObject(stack)}
}

// NewS3Store builds a Store backed by the bucket in cfg.State.
func NewS3Store(cfg *config.Config, secrets config.Secrets) (*Store, error) {
	if !cfg.State.Enabled() {
		return nil, errors.New("state bucket is not configured")
	}
	if err := secrets.RequireState(cfg.State); err != nil {
		return nil, err
	}

	client, err := s3.NewClient(cfg.State.Endpoint, cfg.State.Region, secrets.S3AccessKey, secrets.S3SecretKey,
		s3.WithPathStyle(cfg.State.PathStyle))
	if err != nil {
		return nil, err
	}
	return NewStore(client, cfg.State.Bucket, cfg.Name), nil
}

// Location returns the s3:// URI outputs are stored at.
func (s *Store) Location() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

// Publish uploads o, creating the bucket if needed.
func (s *Store) Publish(ctx context.Context, o Outputs) error {
	if err := s.client.EnsureBucket(ctx, s.bucket); err != nil {
		return err
	}
	if err := s.client.PutJSON(ctx, s.bucket, s.key, o); err != nil {
		return fmt.Errorf("failed to publish outputs: %w", err)
	}
	return nil
}

// Fetch downloads the published outputs.
func (s *Store) Fetch(ctx context.Context) (Outputs, error) {
	var o Outputs
	err := s.client.GetJSON(ctx, s.bucket, s.key, &o)
	if errors.Is(err, s3.ErrObjectNotFound) {
		return o, fmt.Errorf("%s: %w", s.Location(), ErrNoOutputs)
	}
	return o, err
}

// Remove deletes the published outputs.
func (s *Store) Remove(ctx context.Context) error {
	return s.client.DeleteObject(ctx, s.bucket, s.key)
}
