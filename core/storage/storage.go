package storage

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"storage-gateway/core/errs"
	"storage-gateway/core/metrics"
	"storage-gateway/core/storage/object"

	"go.uber.org/zap"
)

// Storage is the facade all application code uses for file storage.
// Data operations are safe for concurrent use; Configure is serialised.
type Storage struct {
	mu      sync.Mutex
	active  atomic.Pointer[installed]
	logger  *zap.Logger
	metrics *metrics.Storage
}

type installed struct {
	driver Driver
}

// Option configures a Storage.
type Option func(*Storage)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Storage) {
		s.logger = l
	}
}

// WithMetrics instruments the installed driver with m.
func WithMetrics(m *metrics.Storage) Option {
	return func(s *Storage) {
		s.metrics = m
	}
}

// New returns an Unconfigured facade.
func New(opts ...Option) *Storage {
	s := &Storage{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configure validates cfg, builds its driver and installs it. It succeeds at
// most once; later calls fail with errs.KindAlreadyConfigured. Concurrent
// callers block until the first one finishes.
func (s *Storage) Configure(ctx context.Context, cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUnconfigured(); err != nil {
		return err
	}

	d, err := NewDriver(ctx, cfg)
	if err != nil {
		s.logger.Error("Storage configuration failed", zap.String("driver", cfg.Driver), zap.Error(err))
		return err
	}
	s.install(d)
	return nil
}

// Install configures the facade with an already built driver, following the
// same once-only rule as Configure.
func (s *Storage) Install(d Driver) error {
	if d == nil {
		return errs.New(errs.KindInvalidConfig, "storage: nil driver")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUnconfigured(); err != nil {
		return err
	}
	s.install(d)
	return nil
}

// Reset returns the facade to Unconfigured and closes the previous driver
// if it holds resources. Tests only: production code configures once.
func (s *Storage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev := s.active.Swap(nil); prev != nil {
		_ = closeDriver(prev.driver)
	}
}

// Close releases resources held by the active driver. The facade stays
// configured.
func (s *Storage) Close() error {
	if cur := s.active.Load(); cur != nil {
		return closeDriver(cur.driver)
	}
	return nil
}

// Configured reports whether a driver is installed.
func (s *Storage) Configured() bool {
	return s.active.Load() != nil
}

// DriverName returns the active driver name, or "" when unconfigured.
func (s *Storage) DriverName() string {
	if cur := s.active.Load(); cur != nil {
		return cur.driver.Name()
	}
	return ""
}

// Put writes content at key.
func (s *Storage) Put(ctx context.Context, key string, content []byte, contentType string) error {
	d, err := s.driver("put")
	if err != nil {
		return err
	}
	return d.Put(ctx, key, content, contentType)
}

// Get reads the object at key.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	d, err := s.driver("get")
	if err != nil {
		return nil, err
	}
	return d.Get(ctx, key)
}

// Delete removes the object at key.
func (s *Storage) Delete(ctx context.Context, key string) error {
	d, err := s.driver("delete")
	if err != nil {
		return err
	}
	return d.Delete(ctx, key)
}

// Exists reports whether an object is stored at key.
func (s *Storage) Exists(ctx context.Context, key string) (bool, error) {
	d, err := s.driver("exists")
	if err != nil {
		return false, err
	}
	return d.Exists(ctx, key)
}

// Stat returns metadata of the object at key.
func (s *Storage) Stat(ctx context.Context, key string) (*object.Info, error) {
	d, err := s.driver("stat")
	if err != nil {
		return nil, err
	}
	return d.Stat(ctx, key)
}

// PublicURL returns the public URL for key. It performs no I/O.
func (s *Storage) PublicURL(key string) (string, error) {
	d, err := s.driver("public_url")
	if err != nil {
		return "", err
	}
	return d.PublicURL(key), nil
}

func (s *Storage) driver(op string) (Driver, error) {
	cur := s.active.Load()
	if cur == nil {
		return nil, &errs.Error{Kind: errs.KindNotConfigured, Op: op, Message: "storage is not configured"}
	}
	return cur.driver, nil
}

// checkUnconfigured must be called with mu held.
func (s *Storage) checkUnconfigured() error {
	cur := s.active.Load()
	if cur == nil {
		return nil
	}
	s.logger.Warn("Storage reconfiguration rejected", zap.String("driver", cur.driver.Name()))
	return &errs.Error{
		Kind:    errs.KindAlreadyConfigured,
		Op:      "config",
		Message: "storage is already configured with driver " + cur.driver.Name(),
	}
}

// install must be called with mu held.
func (s *Storage) install(d Driver) {
	if s.metrics != nil {
		d = Instrument(d, s.metrics)
	}
	s.active.Store(&installed{driver: d})
	s.logger.Info("Storage configured", zap.String("driver", d.Name()))
}

func closeDriver(d Driver) error {
	if c, ok := d.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
