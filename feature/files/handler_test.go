package files

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"storage-gateway/core/errs"
	"storage-gateway/core/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *storage.Storage) {
	t.Helper()
	store := storage.New()
	require.NoError(t, store.Configure(context.Background(), storage.Config{
		Driver: storage.DriverLocal,
		Connection: storage.Connection{
			RootURL:   t.TempDir(),
			PublicURL: "https://cdn.example/files",
		},
	}))

	app := fiber.New()
	feature := NewFeature(store, zap.NewNop())
	require.NoError(t, feature.Load(app.Group("/api")))
	feature.Mount(app, "/storage")
	return app, store
}

func decode(t *testing.T, r io.Reader) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r).Decode(&body))
	return body
}

func TestHandlePut(t *testing.T) {
	app, store := setupTestApp(t)

	req := httptest.NewRequest("PUT", "/api/files/a/b.txt", bytes.NewBufferString("hi"))
	req.Header.Set("Content-Type", "text/plain")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.Equal(t, "a/b.txt", body["key"])
	assert.Equal(t, "https://cdn.example/files/a/b.txt", body["url"])
	assert.Equal(t, float64(2), body["size"])

	data, err := store.Get(context.Background(), "a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
}

func TestHandlePut_BelowAFile(t *testing.T) {
	app, store := setupTestApp(t)
	require.NoError(t, store.Put(context.Background(), "a", []byte("x"), ""))

	resp, err := app.Test(httptest.NewRequest("PUT", "/api/files/a/b.txt", bytes.NewBufferString("y")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_key", decode(t, resp.Body)["kind"])
}

func TestHandleUpload(t *testing.T) {
	app, store := setupTestApp(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "logo.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/files/img/logo.png", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.Equal(t, "image/png", body["contentType"])

	data, err := store.Get(context.Background(), "img/logo.png")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
}

func TestHandleUpload_MissingFile(t *testing.T) {
	app, _ := setupTestApp(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("other", "x"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/files/x.bin", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleGet(t *testing.T) {
	app, store := setupTestApp(t)
	require.NoError(t, store.Put(context.Background(), "data/x.json", []byte(`{"a":1}`), ""))

	t.Run("Found", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/files/data/x.json", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, `{"a":1}`, string(body))
	})

	t.Run("Missing", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/files/data/none.json", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "not_found", decode(t, resp.Body)["kind"])
	})

	t.Run("Traversal", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/files/a/%2E%2E/%2E%2E/etc/passwd", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Mount", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/storage/data/x.json", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, `{"a":1}`, string(body))
	})
}

func TestHandleHead(t *testing.T) {
	app, store := setupTestApp(t)
	require.NoError(t, store.Put(context.Background(), "h.json", []byte("{}"), ""))

	resp, err := app.Test(httptest.NewRequest("HEAD", "/api/files/h.json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	resp, err = app.Test(httptest.NewRequest("HEAD", "/api/files/none.json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleDelete(t *testing.T) {
	app, store := setupTestApp(t)
	require.NoError(t, store.Put(context.Background(), "gone.txt", []byte("x"), ""))

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("DELETE", "/api/files/gone.txt", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	ok, err := store.Exists(context.Background(), "gone.txt")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHandleURL(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/urls/never/written.png", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://cdn.example/files/never/written.png", decode(t, resp.Body)["url"])
}

func TestHandler_NotConfigured(t *testing.T) {
	app := fiber.New()
	require.NoError(t, NewFeature(storage.New(), nil).Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/files/x.txt", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "not_configured", decode(t, resp.Body)["kind"])
}

func TestStatus(t *testing.T) {
	tests := []struct {
		kind errs.Kind
		want int
	}{
		{errs.KindInvalidKey, 400},
		{errs.KindNotFound, 404},
		{errs.KindNotConfigured, 503},
		{errs.KindQuota, 507},
		{errs.KindAuth, 502},
		{errs.KindIO, 502},
		{errs.KindAlreadyConfigured, 500},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Status(errs.New(tt.kind, "x")))
		})
	}
	assert.Equal(t, 500, Status(io.EOF))
}
