package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/synaptica-ai/scribe/pkg/common/logger"
	"github.com/synaptica-ai/scribe/pkg/report"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is the cached view of a session for UI polling.
type Snapshot struct {
	Report           report.Report      `json:"report"`
	ConfidenceScores map[string]float64 `json:"confidence_scores"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// kv is the subset of the redis client the cache uses.
type kv interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// SnapshotCache stores the latest report per session with a TTL. It is a
// read-side cache; the live state stays in the service.
type SnapshotCache struct {
	client kv
	ttl    time.Duration
	prefix string
}

func NewSnapshotCache(client redis.Cmdable, ttl time.Duration) *SnapshotCache {
	return newSnapshotCache(client, ttl)
}

func newSnapshotCache(client kv, ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &SnapshotCache{client: client, ttl: ttl, prefix: "scribe:snapshot:"}
}

func (c *SnapshotCache) key(handle string) string {
	return c.prefix + handle
}

func (c *SnapshotCache) Save(ctx context.Context, handle string, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.client.Set(ctx, c.key(handle), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache snapshot: %w", err)
	}
	logger.Log.WithFields(map[string]interface{}{
		"key":  c.key(handle),
		"size": len(data),
	}).Debug("Cached report snapshot")
	return nil
}

func (c *SnapshotCache) Load(ctx context.Context, handle string) (Snapshot, error) {
	var snap Snapshot
	data, err := c.client.Get(ctx, c.key(handle)).Bytes()
	if errors.Is(err, redis.Nil) {
		return snap, ErrSnapshotNotFound
	}
	if err != nil {
		return snap, fmt.Errorf("read snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

func (c *SnapshotCache) Delete(ctx context.Context, handle string) error {
	return c.client.Del(ctx, c.key(handle)).Err()
}
