package storage

import (
	"context"
	"io"
	"time"

	"storage-gateway/core/errs"
	"storage-gateway/core/metrics"
	"storage-gateway/core/storage/object"
)

type instrumented struct {
	next Driver
	m    *metrics.Storage
}

// Instrument wraps d so every I/O operation is counted and timed on m.
// PublicURL is pure and is not recorded.
func Instrument(d Driver, m *metrics.Storage) Driver {
	return &instrumented{next: d, m: m}
}

func (i *instrumented) Name() string {
	return i.next.Name()
}

func (i *instrumented) Put(ctx context.Context, key string, content []byte, contentType string) error {
	start := time.Now()
	err := i.next.Put(ctx, key, content, contentType)
	i.record("put", start, err)
	return err
}

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	data, err := i.next.Get(ctx, key)
	i.record("get", start, err)
	return data, err
}

func (i *instrumented) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := i.next.Delete(ctx, key)
	i.record("delete", start, err)
	return err
}

func (i *instrumented) Exists(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	ok, err := i.next.Exists(ctx, key)
	i.record("exists", start, err)
	return ok, err
}

func (i *instrumented) Stat(ctx context.Context, key string) (*object.Info, error) {
	start := time.Now()
	info, err := i.next.Stat(ctx, key)
	i.record("stat", start, err)
	return info, err
}

func (i *instrumented) PublicURL(key string) string {
	return i.next.PublicURL(key)
}

func (i *instrumented) Close() error {
	return closeDriver(i.next)
}

var _ io.Closer = (*instrumented)(nil)

func (i *instrumented) record(op string, start time.Time, err error) {
	driver := i.next.Name()
	i.m.Operations.WithLabelValues(driver, op).Inc()
	i.m.Duration.WithLabelValues(driver, op).Observe(time.Since(start).Seconds())
	if err != nil {
		i.m.Errors.WithLabelValues(driver, op, errs.KindOf(err).String()).Inc()
	}
}
