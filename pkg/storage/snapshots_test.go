package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/synaptica-ai/scribe/pkg/report"
)

type fakeKV struct {
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKV) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeKV) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestSnapshotCacheRoundTrip(t *testing.T) {
	kv := newFakeKV()
	cache := newSnapshotCache(kv, time.Minute)
	ctx := context.Background()

	snap := Snapshot{
		Report:           report.Report{SessionID: "s-1"},
		ConfidenceScores: map[string]float64{"symptoms": 1},
		UpdatedAt:        time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if err := cache.Save(ctx, "h-1", snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	if kv.ttls["scribe:snapshot:h-1"] != time.Minute {
		t.Fatalf("expected ttl to be applied, got %v", kv.ttls)
	}

	got, err := cache.Load(ctx, "h-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Report.SessionID != "s-1" || got.ConfidenceScores["symptoms"] != 1 || !got.UpdatedAt.Equal(snap.UpdatedAt) {
		t.Fatalf("unexpected snapshot %+v", got)
	}

	if err := cache.Delete(ctx, "h-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := cache.Load(ctx, "h-1"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestSnapshotCacheSurfacesErrors(t *testing.T) {
	kv := newFakeKV()
	kv.err = errors.New("connection refused")
	cache := newSnapshotCache(kv, 0)

	if err := cache.Save(context.Background(), "h", Snapshot{}); err == nil {
		t.Fatalf("expected save error")
	}
	if _, err := cache.Load(context.Background(), "h"); err == nil || errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("expected read error, got %v", err)
	}
	if cache.ttl != 2*time.Hour {
		t.Fatalf("expected default ttl, got %v", cache.ttl)
	}
}
