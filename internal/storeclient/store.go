// Package storeclient implements the collector fleet's single
// persistence seam: put/get/set_meta/ping/keys, backed by either
// a direct Redis connection or a remote HTTP-fronted store. The rest
// of the system depends only on the Store interface and must not
// branch on which backend is active.
package storeclient

import (
	"context"
	"time"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

// Store is the uniform persistence surface every collector and the
// scheduler depend on.
type Store interface {
	// Put writes the already-serialized value with a single command or
	// request that sets the key and its TTL together. Returns a
	// *agenterrors.CollectorError with KindStoreError on transport or
	// quota failure.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns the raw bytes for key, or ok=false if absent or
	// expired.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// SetMeta writes the three kaos:meta:<name>:* sibling keys with no
	// TTL. It is best-effort: implementations must never return an
	// error that the caller is expected to propagate to its run
	// result; failures are logged internally.
	SetMeta(ctx context.Context, name string, meta model.CollectorMeta)

	// Ping reports backend reachability, for the health endpoint.
	Ping(ctx context.Context) bool

	// Keys lists every key with the given prefix. Used only by
	// health/introspection, never by collectors.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close releases any connection the backend holds. A no-op for a
	// backend, like RemoteStore, that owns nothing beyond a shared
	// *fetch.Fetcher.
	Close() error
}

// metaKeys returns the three sibling key names for a collector's
// meta triple.
func metaKeys(name string) (status, lastRun, errorCount string) {
	base := "kaos:meta:" + name + ":"
	return base + "status", base + "last-run", base + "error-count"
}
