package storeclient

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kaos-collector/kaos-collector/internal/agenterrors"
	"github.com/kaos-collector/kaos-collector/pkg/model"
)

// DirectStore talks to Redis (or a Redis-compatible server) directly,
// for local development and single-node deployments.
type DirectStore struct {
	client *redis.Client
}

// NewDirectStore dials addr (host:port) with the given password and
// logical database index.
func NewDirectStore(addr, password string, db int) *DirectStore {
	return &DirectStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Put performs a single SET key value EX ttl, atomic on stock
// Redis/KeyDB.
func (s *DirectStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return &agenterrors.CollectorError{
			Kind:      agenterrors.KindStoreError,
			Message:   fmt.Sprintf("storeclient: redis SET %s: %v", key, err),
			Timestamp: time.Now().UnixMilli(),
			Err:       err,
		}
	}
	return nil
}

// Get returns the value for key, or ok=false if it is absent or
// expired.
func (s *DirectStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &agenterrors.CollectorError{
			Kind:      agenterrors.KindStoreError,
			Message:   fmt.Sprintf("storeclient: redis GET %s: %v", key, err),
			Timestamp: time.Now().UnixMilli(),
			Err:       err,
		}
	}
	return v, true, nil
}

// SetMeta writes the three meta keys with no TTL. Failures are logged
// and swallowed — a meta write failure never fails a collector's run.
func (s *DirectStore) SetMeta(ctx context.Context, name string, meta model.CollectorMeta) {
	statusKey, lastRunKey, errorCountKey := metaKeys(name)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, statusKey, string(meta.Status), 0)
	pipe.Set(ctx, lastRunKey, strconv.FormatInt(meta.LastRunMilli, 10), 0)
	pipe.Set(ctx, errorCountKey, strconv.Itoa(meta.ErrorCount), 0)

	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("storeclient: set_meta failed", "collector", name, "error", err)
	}
}

// Ping reports backend reachability.
func (s *DirectStore) Ping(ctx context.Context) bool {
	return s.client.Ping(ctx).Err() == nil
}

// Keys lists every key with the given prefix using a non-blocking
// SCAN, avoiding the single-threaded KEYS command.
func (s *DirectStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var (
		out    []string
		cursor uint64
	)
	for {
		batch, next, err := s.client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("storeclient: redis SCAN %s*: %w", prefix, err)
		}
		out = append(out, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return out, nil
}

// Close releases the underlying connection pool.
func (s *DirectStore) Close() error {
	return s.client.Close()
}
