package backup

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"craftwarden/core/catalog"
	"craftwarden/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func objectChannel(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		ch <- minio.ObjectInfo{Key: key}
	}
	close(ch)
	return ch
}

func testService(client *mocks.Client, keep int) *Service {
	svc := NewService(client, "test-bucket", keep, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2026, 8, 31, 12, 0, 5, 0, time.UTC)
	}
	return svc
}

func TestBackup(t *testing.T) {
	client := new(mocks.Client)
	svc := testService(client, 0)

	client.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	client.On("PutObject", mock.Anything, "test-bucket", "catalog/2026-08-31T12-00-05Z.json",
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	records := []catalog.RecipeRecord{{Name: "minecraft:glass", Wanted: 64}}
	require.NoError(t, svc.Backup(context.Background(), records))
	client.AssertExpectations(t)
}

func TestBackupCreatesBucket(t *testing.T) {
	client := new(mocks.Client)
	svc := testService(client, 0)

	client.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "test-bucket", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "test-bucket", mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	require.NoError(t, svc.Backup(context.Background(), nil))
	client.AssertExpectations(t)
}

func TestBackupPrunesOldest(t *testing.T) {
	client := new(mocks.Client)
	svc := testService(client, 2)

	client.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	client.On("PutObject", mock.Anything, "test-bucket", mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)
	client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(objectChannel(
		"catalog/2026-08-29T00-00-00Z.json",
		"catalog/2026-08-30T00-00-00Z.json",
		"catalog/2026-08-31T12-00-05Z.json",
	))
	client.On("RemoveObject", mock.Anything, "test-bucket",
		"catalog/2026-08-29T00-00-00Z.json", mock.Anything).Return(nil)

	require.NoError(t, svc.Backup(context.Background(), nil))
	client.AssertExpectations(t)
}

func TestRestoreReadsNewest(t *testing.T) {
	client := new(mocks.Client)
	svc := testService(client, 0)

	client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(objectChannel(
		"catalog/2026-08-30T00-00-00Z.json",
		"catalog/2026-08-31T12-00-05Z.json",
	))
	body := `[{"name":"minecraft:glass","damage":0,"label":"Glass","wanted":64}]`
	client.On("GetObject", mock.Anything, "test-bucket",
		"catalog/2026-08-31T12-00-05Z.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(body)), nil)

	records, err := svc.Restore(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "minecraft:glass", records[0].Name)
	assert.Equal(t, 64, records[0].Wanted)
}

func TestRestoreWithoutBackups(t *testing.T) {
	client := new(mocks.Client)
	svc := testService(client, 0)

	client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(objectChannel())

	_, err := svc.Restore(context.Background())
	assert.ErrorContains(t, err, "no catalog backup")
}
