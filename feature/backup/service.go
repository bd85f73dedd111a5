package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"craftwarden/core/catalog"
	"craftwarden/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const objectPrefix = "catalog/"

// Filenames sort chronologically, so the newest backup is the largest
// key under the prefix.
const timeLayout = "2006-01-02T15-04-05Z"

// Service writes and reads catalog backups.
type Service struct {
	client storage.Client
	bucket string
	keep   int
	logger *zap.Logger

	now func() time.Time
}

// NewService creates a new backup service. keep is how many backups to
// retain; 0 disables pruning.
func NewService(client storage.Client, bucket string, keep int, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		keep:   keep,
		logger: logger,
		now:    time.Now,
	}
}

// Backup uploads the records as a timestamped JSON snapshot, then
// prunes backups beyond the retention count.
func (s *Service) Backup(ctx context.Context, records []catalog.RecipeRecord) error {
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode catalog backup: %w", err)
	}

	name := objectPrefix + s.now().UTC().Format(timeLayout) + ".json"
	_, err = s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload catalog backup: %w", err)
	}
	s.logger.Info("Catalog backup written",
		zap.String("object", name),
		zap.Int("recipes", len(records)))

	return s.prune(ctx)
}

// List returns the backup object names, newest first.
func (s *Service) List(ctx context.Context) ([]string, error) {
	names, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Restore reads the most recent backup. It returns an error when no
// backup exists.
func (s *Service) Restore(ctx context.Context) ([]catalog.RecipeRecord, error) {
	names, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no catalog backup found in bucket %s", s.bucket)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, names[0], minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog backup %s: %w", names[0], err)
	}
	defer obj.Close()

	var records []catalog.RecipeRecord
	if err := json.NewDecoder(obj).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode catalog backup %s: %w", names[0], err)
	}
	return records, nil
}

func (s *Service) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("Created backup bucket", zap.String("bucket", s.bucket))
	return nil
}

func (s *Service) list(ctx context.Context) ([]string, error) {
	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: objectPrefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list backups: %w", obj.Err)
		}
		names = append(names, obj.Key)
	}
	return names, nil
}

// prune removes the oldest backups beyond the retention count. Pruning
// failures are logged, not returned; the backup itself succeeded.
func (s *Service) prune(ctx context.Context) error {
	if s.keep <= 0 {
		return nil
	}
	names, err := s.list(ctx)
	if err != nil {
		s.logger.Warn("Backup pruning skipped", zap.Error(err))
		return nil
	}
	if len(names) <= s.keep {
		return nil
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-s.keep] {
		if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
			s.logger.Warn("Failed to prune backup",
				zap.String("object", name),
				zap.Error(err))
			continue
		}
		s.logger.Debug("Pruned backup", zap.String("object", name))
	}
	return nil
}
