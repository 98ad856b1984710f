package files

import (
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"storage-gateway/core/errs"
	"storage-gateway/core/logger"
	"storage-gateway/core/storage/object"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for stored files.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the files routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/files")
	group.Put("/*", h.HandlePut)
	group.Post("/*", h.HandleUpload)
	// HEAD is registered before GET, which also answers HEAD in Fiber.
	group.Head("/*", h.HandleHead)
	group.Get("/*", h.HandleGet)
	group.Delete("/*", h.HandleDelete)

	app.Get("/urls/*", h.HandleURL)
}

// RegisterMount serves stored objects read-only under path.
func (h *Handler) RegisterMount(app fiber.Router, path string) {
	if path == "/" {
		path = ""
	}
	app.Head(path+"/*", h.HandleHead)
	app.Get(path+"/*", h.HandleGet)
}

// HandlePut stores the raw request body.
// @Summary Store File
// @Description Stores the raw request body at the given key, replacing any existing object.
// @Tags files
// @Accept octet-stream
// @Produce json
// @Param key path string true "Object key"
// @Success 201 {object} files.Upload "Stored object"
// @Failure 400 {object} map[string]string "Invalid key"
// @Failure 507 {object} map[string]string "Quota exceeded"
// @Router /files/{key} [put]
func (h *Handler) HandlePut(c *fiber.Ctx) error {
	key, err := keyParam(c)
	if err != nil {
		return errorResponse(c, err)
	}
	body := append([]byte(nil), c.Body()...)
	return h.store(c, key, body, c.Get(fiber.HeaderContentType))
}

// HandleUpload stores the multipart field "file".
// @Summary Upload File
// @Description Stores the uploaded multipart file at the given key.
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param key path string true "Object key"
// @Param file formData file true "File content"
// @Success 201 {object} files.Upload "Stored object"
// @Failure 400 {object} map[string]string "Invalid key or missing file"
// @Router /files/{key} [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	key, err := keyParam(c)
	if err != nil {
		return errorResponse(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing multipart field \"file\""})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer f.Close()

	content := make([]byte, fh.Size)
	if _, err := io.ReadFull(f, content); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	// Browsers and clients send octet-stream for unknown parts; prefer the key extension then.
	ct := fh.Header.Get(fiber.HeaderContentType)
	if ct == object.DefaultContentType {
		ct = ""
	}
	return h.store(c, key, content, ct)
}

func (h *Handler) store(c *fiber.Ctx, key string, content []byte, contentType string) error {
	l := logger.WithRayID(h.service.logger, c)
	start := time.Now()

	up, err := h.service.Upload(c.UserContext(), key, content, contentType)
	if err != nil {
		l.Error("Store failed", zap.String("key", key), zap.Error(err))
		return errorResponse(c, err)
	}

	l.Info("Stored file",
		zap.String("key", key),
		zap.Int("size", up.Size),
		zap.Duration("took", time.Since(start)))
	return c.Status(fiber.StatusCreated).JSON(up)
}

// HandleGet downloads a file.
// @Summary Download File
// @Description Returns the object content with its stored content type.
// @Tags files
// @Produce octet-stream
// @Param key path string true "Object key"
// @Success 200 {file} file "Object content"
// @Failure 404 {object} map[string]string "Not found"
// @Router /files/{key} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	key, err := keyParam(c)
	if err != nil {
		return errorResponse(c, err)
	}

	data, info, err := h.service.Download(c.UserContext(), key)
	if err != nil {
		if !errs.IsNotFound(err) {
			logger.WithRayID(h.service.logger, c).Error("Download failed", zap.String("key", key), zap.Error(err))
		}
		return errorResponse(c, err)
	}

	setHeaders(c, info)
	return c.Send(data)
}

// HandleHead returns file metadata as headers.
// @Summary File Metadata
// @Description Returns Content-Type and Content-Length of the object without its body.
// @Tags files
// @Param key path string true "Object key"
// @Success 200 "Object exists"
// @Failure 404 "Not found"
// @Router /files/{key} [head]
func (h *Handler) HandleHead(c *fiber.Ctx) error {
	key, err := keyParam(c)
	if err != nil {
		return errorResponse(c, err)
	}

	info, err := h.service.Stat(c.UserContext(), key)
	if err != nil {
		return errorResponse(c, err)
	}

	setHeaders(c, info)
	c.Response().Header.SetContentLength(int(info.Size))
	c.Status(fiber.StatusOK)
	return nil
}

// HandleDelete removes a file.
// @Summary Delete File
// @Description Removes the object. Deleting a missing object succeeds.
// @Tags files
// @Param key path string true "Object key"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Invalid key"
// @Router /files/{key} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	key, err := keyParam(c)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := h.service.Remove(c.UserContext(), key); err != nil {
		logger.WithRayID(h.service.logger, c).Error("Delete failed", zap.String("key", key), zap.Error(err))
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleURL returns the public URL of a key.
// @Summary Public URL
// @Description Computes the public URL of the key. The object does not need to exist.
// @Tags files
// @Produce json
// @Param key path string true "Object key"
// @Success 200 {object} map[string]string "URL"
// @Failure 400 {object} map[string]string "Invalid key"
// @Router /urls/{key} [get]
func (h *Handler) HandleURL(c *fiber.Ctx) error {
	key, err := keyParam(c)
	if err != nil {
		return errorResponse(c, err)
	}

	u, err := h.service.URL(key)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"key": key, "url": u})
}

func keyParam(c *fiber.Ctx) (string, error) {
	raw := c.Params("*")
	key, err := url.PathUnescape(raw)
	if err != nil {
		return "", &errs.Error{Kind: errs.KindInvalidKey, Op: "validate", Key: raw, Message: "malformed escape"}
	}
	if err := object.ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

func setHeaders(c *fiber.Ctx, info *object.Info) {
	c.Set(fiber.HeaderContentType, info.ContentType)
	if info.ETag != "" {
		c.Set(fiber.HeaderETag, strconv.Quote(info.ETag))
	}
	if !info.LastModified.IsZero() {
		c.Set(fiber.HeaderLastModified, info.LastModified.UTC().Format(http.TimeFormat))
	}
}
