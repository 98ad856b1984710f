package storage_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"storage-gateway/core/errs"
	"storage-gateway/core/metrics"
	"storage-gateway/core/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func localConfig(t *testing.T) storage.Config {
	t.Helper()
	return storage.Config{
		Driver: storage.DriverLocal,
		Connection: storage.Connection{
			RootURL:   t.TempDir(),
			PublicURL: "https://cdn.example/files",
		},
	}
}

func configured(t *testing.T) *storage.Storage {
	t.Helper()
	s := storage.New(storage.WithLogger(zap.NewNop()))
	require.NoError(t, s.Configure(context.Background(), localConfig(t)))
	return s
}

func TestUnconfigured(t *testing.T) {
	s := storage.New()
	ctx := context.Background()

	assert.False(t, s.Configured())
	assert.Empty(t, s.DriverName())

	assert.True(t, errs.IsNotConfigured(s.Put(ctx, "k", []byte("v"), "")))

	_, err := s.Get(ctx, "k")
	assert.True(t, errs.IsNotConfigured(err))

	assert.True(t, errs.IsNotConfigured(s.Delete(ctx, "k")))

	_, err = s.Exists(ctx, "k")
	assert.True(t, errs.IsNotConfigured(err))

	_, err = s.Stat(ctx, "k")
	assert.True(t, errs.IsNotConfigured(err))

	_, err = s.PublicURL("k")
	assert.True(t, errs.IsNotConfigured(err))

	assert.NoError(t, s.Close())
}

func TestConfigureOnce(t *testing.T) {
	s := configured(t)
	assert.True(t, s.Configured())
	assert.Equal(t, storage.DriverLocal, s.DriverName())

	err := s.Configure(context.Background(), localConfig(t))
	assert.True(t, errs.IsAlreadyConfigured(err))

	d, derr := storage.NewDriver(context.Background(), localConfig(t))
	require.NoError(t, derr)
	assert.True(t, errs.IsAlreadyConfigured(s.Install(d)))
}

func TestConfigureInvalidStaysUnconfigured(t *testing.T) {
	s := storage.New()
	err := s.Configure(context.Background(), storage.Config{Driver: storage.DriverS3})
	assert.True(t, errs.IsInvalidConfig(err))
	assert.False(t, s.Configured())

	require.NoError(t, s.Configure(context.Background(), localConfig(t)))
}

func TestConcurrentConfigure(t *testing.T) {
	s := storage.New()
	cfg := localConfig(t)
	const n = 16

	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.Configure(context.Background(), cfg)
		}()
	}
	wg.Wait()
	close(results)

	succeeded, rejected := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errs.IsAlreadyConfigured(err):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, n-1, rejected)
}

func TestReset(t *testing.T) {
	s := configured(t)
	s.Reset()
	assert.False(t, s.Configured())

	_, err := s.Get(context.Background(), "k")
	assert.True(t, errs.IsNotConfigured(err))

	require.NoError(t, s.Configure(context.Background(), localConfig(t)))
}

func TestInstallNil(t *testing.T) {
	s := storage.New()
	assert.True(t, errs.IsInvalidConfig(s.Install(nil)))
}

func TestLocalScenario(t *testing.T) {
	s := configured(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a/b.txt", []byte("hi"), ""))

	data, err := s.Get(ctx, "a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))

	url, err := s.PublicURL("a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/files/a/b.txt", url)
}

func TestS3Scenario(t *testing.T) {
	s := storage.New()
	require.NoError(t, s.Configure(context.Background(), storage.Config{
		Driver: storage.DriverS3,
		Connection: storage.Connection{
			Bucket:    "mybucket",
			Endpoint:  "minio.local:9000",
			PathStyle: true,
		},
	}))

	url, err := s.PublicURL("x.png")
	require.NoError(t, err)
	assert.Equal(t, "https://minio.local:9000/mybucket/x.png", url)
}

func TestFacadeProperties(t *testing.T) {
	s := configured(t)
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		payloads := map[string][]byte{
			"empty.bin":        {},
			"binary/zeros.bin": {0, 0, 0, 255},
			"deep/a/b/c/d.txt": []byte("nested"),
		}
		for key, payload := range payloads {
			require.NoError(t, s.Put(ctx, key, payload, ""))
			got, err := s.Get(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, payload, got, key)
		}
	})

	t.Run("NeverWritten", func(t *testing.T) {
		_, err := s.Get(ctx, "never/written.txt")
		assert.True(t, errs.IsNotFound(err))

		ok, err := s.Exists(ctx, "never/written.txt")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Deleted", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "tmp/gone.txt", []byte("x"), ""))
		require.NoError(t, s.Delete(ctx, "tmp/gone.txt"))
		require.NoError(t, s.Delete(ctx, "tmp/gone.txt"))

		_, err := s.Get(ctx, "tmp/gone.txt")
		assert.True(t, errs.IsNotFound(err))

		ok, err := s.Exists(ctx, "tmp/gone.txt")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("PublicURLIsPure", func(t *testing.T) {
		before, err := s.PublicURL("pure/k.txt")
		require.NoError(t, err)
		require.NoError(t, s.Put(ctx, "pure/k.txt", []byte("x"), ""))
		after, err := s.PublicURL("pure/k.txt")
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("Traversal", func(t *testing.T) {
		assert.True(t, errs.IsInvalidKey(s.Put(ctx, "../outside.txt", []byte("x"), "")))
	})

	t.Run("Stat", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "meta/x.json", []byte("{}"), ""))
		info, err := s.Stat(ctx, "meta/x.json")
		require.NoError(t, err)
		assert.Equal(t, int64(2), info.Size)
		assert.Equal(t, "application/json", info.ContentType)
	})

	t.Run("ConcurrentPuts", func(t *testing.T) {
		const n = 50
		var wg sync.WaitGroup
		errCh := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errCh <- s.Put(ctx, fmt.Sprintf("concurrent/%d", i), []byte(fmt.Sprint(i)), "")
			}(i)
		}
		wg.Wait()
		close(errCh)
		for err := range errCh {
			require.NoError(t, err)
		}
		for i := 0; i < n; i++ {
			got, err := s.Get(ctx, fmt.Sprintf("concurrent/%d", i))
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprint(i), string(got))
		}
	})
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewStorage(reg)
	s := storage.New(storage.WithMetrics(m))
	require.NoError(t, s.Configure(context.Background(), localConfig(t)))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "m.txt", []byte("x"), ""))
	_, err := s.Get(ctx, "m.txt")
	require.NoError(t, err)
	_, err = s.Get(ctx, "missing.txt")
	require.Error(t, err)
	_, err = s.PublicURL("m.txt")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("local", "put")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues("local", "get")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors.WithLabelValues("local", "get", "not_found")))
	assert.Equal(t, storage.DriverLocal, s.DriverName())
}
