package database

import (
	"testing"

	"github.com/synaptica-ai/scribe/pkg/common/config"
)

func TestPostgresDSN(t *testing.T) {
	cfg := &config.Config{
		PostgresHost:     "db",
		PostgresPort:     "5433",
		PostgresUser:     "scribe",
		PostgresPassword: "secret",
		PostgresDB:       "notes",
		PostgresSSLMode:  "require",
	}
	want := "host=db user=scribe password=secret dbname=notes port=5433 sslmode=require"
	if got := PostgresDSN(cfg); got != want {
		t.Fatalf("unexpected dsn:\n got %s\nwant %s", got, want)
	}
}
