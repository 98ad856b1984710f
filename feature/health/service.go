package health

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProbePrefix is the key prefix of probe objects.
const ProbePrefix = ".health/"

// Store is the part of the storage facade the probe uses.
type Store interface {
	Put(ctx context.Context, key string, content []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	DriverName() string
}

// StepReport is the outcome of one probe step.
type StepReport struct {
	Status    string  `json:"status"`
	LatencyMs float64 `json:"latencyMs"`
	Error     string  `json:"error,omitempty"`
}

// Report is the outcome of a storage probe.
type Report struct {
	Status    string                `json:"status"`
	Driver    string                `json:"driver"`
	Key       string                `json:"key"`
	LatencyMs float64               `json:"latencyMs"`
	Steps     map[string]StepReport `json:"steps"`
}

// Healthy reports whether every step succeeded.
func (r *Report) Healthy() bool {
	return r.Status == "ok"
}

// Service runs storage probes.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a new health service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// ProbeStorage writes, reads back and deletes a probe object. The delete runs
// even when an earlier step failed so probes do not accumulate.
func (s *Service) ProbeStorage(ctx context.Context) *Report {
	key := ProbePrefix + uuid.NewString()
	payload := []byte(key)
	report := &Report{
		Status: "ok",
		Driver: s.store.DriverName(),
		Key:    key,
		Steps:  make(map[string]StepReport, 3),
	}
	start := time.Now()

	report.step("put", func() error {
		return s.store.Put(ctx, key, payload, "text/plain")
	})
	if report.Steps["put"].Status == "ok" {
		report.step("get", func() error {
			got, err := s.store.Get(ctx, key)
			if err != nil {
				return err
			}
			if !bytes.Equal(got, payload) {
				return fmt.Errorf("read back %d bytes, want %d", len(got), len(payload))
			}
			return nil
		})
	}
	report.step("delete", func() error {
		return s.store.Delete(ctx, key)
	})

	report.LatencyMs = millis(time.Since(start))
	if !report.Healthy() {
		s.logger.Warn("Storage probe failed", zap.String("driver", report.Driver), zap.Any("steps", report.Steps))
	}
	return report
}

func (r *Report) step(name string, fn func() error) {
	start := time.Now()
	err := fn()
	step := StepReport{Status: "ok", LatencyMs: millis(time.Since(start))}
	if err != nil {
		step.Status = "error"
		step.Error = err.Error()
		r.Status = "error"
	}
	r.Steps[name] = step
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
