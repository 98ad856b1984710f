package health

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storage-gateway/core/errs"
	"storage-gateway/core/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Put(ctx context.Context, key string, content []byte, contentType string) error {
	return m.Called(ctx, key, content, contentType).Error(0)
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	var data []byte
	if v := args.Get(0); v != nil {
		data = v.([]byte)
	}
	return data, args.Error(1)
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockStore) DriverName() string {
	return m.Called().String(0)
}

func probeKey() any {
	return mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, ProbePrefix)
	})
}

func localStore(t *testing.T) (*storage.Storage, string) {
	t.Helper()
	root := t.TempDir()
	s := storage.New()
	require.NoError(t, s.Configure(context.Background(), storage.Config{
		Driver:     storage.DriverLocal,
		Connection: storage.Connection{RootURL: root},
	}))
	return s, root
}

func TestProbeStorage_Healthy(t *testing.T) {
	store, root := localStore(t)

	report := NewService(store, nil).ProbeStorage(context.Background())
	require.True(t, report.Healthy(), report.Steps)
	assert.Equal(t, storage.DriverLocal, report.Driver)
	assert.True(t, strings.HasPrefix(report.Key, ProbePrefix))
	assert.Len(t, report.Steps, 3)

	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(report.Key)))
	assert.True(t, os.IsNotExist(err), "probe object must be deleted")
}

func TestProbeStorage_PutFails(t *testing.T) {
	store := new(mockStore)
	store.On("DriverName").Return("s3")
	store.On("Put", mock.Anything, probeKey(), mock.Anything, "text/plain").
		Return(errs.New(errs.KindAuth, "access denied"))
	store.On("Delete", mock.Anything, probeKey()).Return(nil)

	report := NewService(store, nil).ProbeStorage(context.Background())
	assert.False(t, report.Healthy())
	assert.Equal(t, "error", report.Steps["put"].Status)
	assert.Contains(t, report.Steps["put"].Error, "access denied")
	assert.NotContains(t, report.Steps, "get")
	assert.Equal(t, "ok", report.Steps["delete"].Status)

	store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestProbeStorage_ReadMismatch(t *testing.T) {
	store := new(mockStore)
	store.On("DriverName").Return("gcs")
	store.On("Put", mock.Anything, probeKey(), mock.Anything, "text/plain").Return(nil)
	store.On("Get", mock.Anything, probeKey()).Return([]byte("stale"), nil)
	store.On("Delete", mock.Anything, probeKey()).Return(nil)

	report := NewService(store, nil).ProbeStorage(context.Background())
	assert.False(t, report.Healthy())
	assert.Equal(t, "error", report.Steps["get"].Status)
	store.AssertExpectations(t)
}

func TestHandleStorage(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		store, _ := localStore(t)
		app := fiber.New()
		require.NoError(t, NewFeature(store, nil).Load(app))

		resp, err := app.Test(httptest.NewRequest("GET", "/health/storage", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var report Report
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		assert.Equal(t, "ok", report.Status)
		assert.Equal(t, "local", report.Driver)
	})

	t.Run("NotConfigured", func(t *testing.T) {
		app := fiber.New()
		require.NoError(t, NewFeature(storage.New(), nil).Load(app))

		resp, err := app.Test(httptest.NewRequest("GET", "/health/storage", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("Liveness", func(t *testing.T) {
		app := fiber.New()
		require.NoError(t, NewFeature(storage.New(), nil).Load(app))

		resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
