package gcs

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"storage-gateway/core/errs"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

// MockBucket is a mock implementation of Bucket.
type MockBucket struct {
	mock.Mock
}

func (m *MockBucket) Write(ctx context.Context, key string, content []byte, contentType string) error {
	args := m.Called(ctx, key, content, contentType)
	return args.Error(0)
}

func (m *MockBucket) Read(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBucket) Attrs(ctx context.Context, key string) (*storage.ObjectAttrs, error) {
	args := m.Called(ctx, key)
	if attrs, ok := args.Get(0).(*storage.ObjectAttrs); ok {
		return attrs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBucket) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

var testCfg = Config{Bucket: "assets"}

func TestNew(t *testing.T) {
	t.Run("Emulator", func(t *testing.T) {
		d, err := New(context.Background(), Config{Bucket: "assets", APIEndpoint: "http://localhost:4443/storage/v1/"})
		require.NoError(t, err)
		assert.Equal(t, "gcs", d.Name())
		assert.Equal(t, "assets", d.Bucket())
		assert.NoError(t, d.Close())
	})

	t.Run("MissingBucket", func(t *testing.T) {
		_, err := New(context.Background(), Config{})
		assert.True(t, errs.IsInvalidConfig(err))
	})
}

func TestPublicURL(t *testing.T) {
	d := NewWithBucket(new(MockBucket), testCfg)
	assert.Equal(t, "https://storage.googleapis.com/assets/a/b.png", d.PublicURL("a/b.png"))

	d = NewWithBucket(new(MockBucket), Config{Bucket: "assets", PublicURL: "https://cdn.example"})
	assert.Equal(t, "https://cdn.example/a/b.png", d.PublicURL("a/b.png"))
}

func TestPut(t *testing.T) {
	bucket := new(MockBucket)
	bucket.On("Write", mock.Anything, "docs/readme.json", []byte("{}"), "application/json").Return(nil)
	bucket.On("Write", mock.Anything, "denied.txt", mock.Anything, mock.Anything).
		Return(&googleapi.Error{Code: http.StatusForbidden})

	d := NewWithBucket(bucket, testCfg)
	ctx := context.Background()

	require.NoError(t, d.Put(ctx, "docs/readme.json", []byte("{}"), ""))
	assert.True(t, errs.IsAuth(d.Put(ctx, "denied.txt", []byte("x"), "text/plain")))
	assert.True(t, errs.IsInvalidKey(d.Put(ctx, "a/../../b", []byte("x"), "")))
	bucket.AssertExpectations(t)
}

func TestGet(t *testing.T) {
	bucket := new(MockBucket)
	bucket.On("Read", mock.Anything, "present").Return([]byte("data"), nil)
	bucket.On("Read", mock.Anything, "absent").Return(nil, storage.ErrObjectNotExist)
	bucket.On("Read", mock.Anything, "throttled").Return(nil, &googleapi.Error{Code: http.StatusTooManyRequests})
	bucket.On("Read", mock.Anything, "nobucket").Return(nil, storage.ErrBucketNotExist)

	d := NewWithBucket(bucket, testCfg)
	ctx := context.Background()

	data, err := d.Get(ctx, "present")
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	_, err = d.Get(ctx, "absent")
	assert.True(t, errs.IsNotFound(err))

	_, err = d.Get(ctx, "throttled")
	assert.True(t, errs.IsQuota(err))

	_, err = d.Get(ctx, "nobucket")
	assert.True(t, errs.IsIO(err))
}

func TestDeleteIsIdempotent(t *testing.T) {
	bucket := new(MockBucket)
	bucket.On("Delete", mock.Anything, "gone").Return(storage.ErrObjectNotExist)
	bucket.On("Delete", mock.Anything, "broken").Return(errors.New("connection refused"))

	d := NewWithBucket(bucket, testCfg)
	ctx := context.Background()

	assert.NoError(t, d.Delete(ctx, "gone"))
	assert.NoError(t, d.Delete(ctx, "gone"))
	assert.True(t, errs.IsIO(d.Delete(ctx, "broken")))
}

func TestExistsAndStat(t *testing.T) {
	updated := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	bucket := new(MockBucket)
	bucket.On("Attrs", mock.Anything, "present").
		Return(&storage.ObjectAttrs{Name: "present", Size: 7, ContentType: "text/plain", Etag: "e1", Updated: updated}, nil)
	bucket.On("Attrs", mock.Anything, "absent").Return(nil, storage.ErrObjectNotExist)
	bucket.On("Attrs", mock.Anything, "slow").Return(nil, context.DeadlineExceeded)

	d := NewWithBucket(bucket, testCfg)
	ctx := context.Background()

	ok, err := d.Exists(ctx, "present")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = d.Exists(ctx, "absent")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = d.Exists(ctx, "slow")
	assert.True(t, errs.IsIO(err))

	info, err := d.Stat(ctx, "present")
	require.NoError(t, err)
	assert.Equal(t, int64(7), info.Size)
	assert.Equal(t, "e1", info.ETag)
	assert.Equal(t, updated, info.LastModified)

	for _, call := range bucket.Calls {
		assert.Equal(t, "Attrs", call.Method)
	}
}
