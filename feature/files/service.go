package files

import (
	"context"

	"storage-gateway/core/storage/object"

	"go.uber.org/zap"
)

// Store is the part of the storage facade the files feature uses.
type Store interface {
	Put(ctx context.Context, key string, content []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Stat(ctx context.Context, key string) (*object.Info, error)
	PublicURL(key string) (string, error)
}

// Upload describes a stored object in API responses.
type Upload struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int    `json:"size"`
	ContentType string `json:"contentType"`
}

// Service implements the file operations behind the HTTP handlers.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a new files service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Upload stores content at key and returns its public location.
func (s *Service) Upload(ctx context.Context, key string, content []byte, contentType string) (*Upload, error) {
	ct := object.ContentType(key, contentType)
	if err := s.store.Put(ctx, key, content, ct); err != nil {
		return nil, err
	}
	url, err := s.store.PublicURL(key)
	if err != nil {
		return nil, err
	}
	return &Upload{Key: key, URL: url, Size: len(content), ContentType: ct}, nil
}

// Download returns the object content and its metadata.
func (s *Service) Download(ctx context.Context, key string) ([]byte, *object.Info, error) {
	info, err := s.store.Stat(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	return data, info, nil
}

// Stat returns the object metadata.
func (s *Service) Stat(ctx context.Context, key string) (*object.Info, error) {
	return s.store.Stat(ctx, key)
}

// Remove deletes the object. Missing objects are not an error.
func (s *Service) Remove(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}

// URL returns the public URL of key without touching the backend.
func (s *Service) URL(key string) (string, error) {
	if err := object.ValidateKey(key); err != nil {
		return "", err
	}
	return s.store.PublicURL(key)
}
