package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.TopK != 5 {
		t.Fatalf("expected default top-k 5, got %d", cfg.TopK)
	}
	if cfg.CorpusSource != CorpusSourceFile {
		t.Fatalf("expected file corpus source, got %q", cfg.CorpusSource)
	}
	if cfg.ArchiveEnabled {
		t.Fatal("archive should be disabled by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092,")
	t.Setenv("SCRIBE_TOP_K", "3")
	t.Setenv("SCRIBE_SNAPSHOT_TTL", "15m")
	t.Setenv("SCRIBE_ARCHIVE_ENABLED", "true")
	t.Setenv("SCRIBE_CORPUS_SOURCE", "Postgres")

	cfg := Load()
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "broker-2:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.KafkaBrokers)
	}
	if cfg.TopK != 3 {
		t.Fatalf("expected top-k 3, got %d", cfg.TopK)
	}
	if cfg.SnapshotTTL != 15*time.Minute {
		t.Fatalf("expected 15m ttl, got %s", cfg.SnapshotTTL)
	}
	if !cfg.ArchiveEnabled {
		t.Fatal("expected archive enabled")
	}
	if cfg.CorpusSource != CorpusSourcePostgres {
		t.Fatalf("expected postgres source, got %q", cfg.CorpusSource)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SCRIBE_TOP_K", "many")
	t.Setenv("READ_TIMEOUT", "soon")
	cfg := Load()
	if cfg.TopK != 5 {
		t.Fatalf("expected fallback top-k, got %d", cfg.TopK)
	}
	if cfg.ReadTimeout != 30*time.Second {
		t.Fatalf("expected fallback read timeout, got %s", cfg.ReadTimeout)
	}
}
