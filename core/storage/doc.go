// Package storage provides the driver-agnostic file storage facade.
//
// Application code talks to a *Storage only. The facade holds exactly one
// active Driver, chosen once from Config and never swapped for the rest of
// the process.
//
// # Drivers
//
//   - local: a directory tree (core/storage/local).
//   - s3: any S3-compatible store, including MinIO in path-style mode (core/storage/s3).
//   - gcs: Google Cloud Storage (core/storage/gcs).
//
// # Lifecycle
//
// A new Storage is Unconfigured. Configure validates the configuration,
// builds the driver and moves the facade to Configured. Data operations on an
// Unconfigured facade fail with errs.KindNotConfigured, and a second Configure
// fails with errs.KindAlreadyConfigured. Reset exists for tests only.
//
// # Operations
//
//   - Put: writes an object, replacing any previous content.
//   - Get: reads the whole object (errs.KindNotFound when absent).
//   - Delete: removes an object; deleting a missing key succeeds.
//   - Exists: metadata probe, false when absent.
//   - Stat: size, content type and modification time.
//   - PublicURL: pure URL composition, no I/O.
//
// The facade adds no retries or caching; errors come straight from the
// driver, already translated into the core/errs taxonomy.
//
// # Usage
//
//	store := storage.New(storage.WithLogger(log))
//	if err := store.Configure(ctx, cfg.Storage); err != nil {
//	    log.Fatal("storage", zap.Error(err))
//	}
//	err = store.Put(ctx, "a/b.txt", []byte("hi"), "text/plain")
//	url, _ := store.PublicURL("a/b.txt")
package storage
