// Command corpus-import loads a JSON case corpus into Postgres so the scribe
// service can run with SCRIBE_CORPUS_SOURCE=postgres.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/synaptica-ai/scribe/pkg/common/config"
	"github.com/synaptica-ai/scribe/pkg/common/database"
	"github.com/synaptica-ai/scribe/pkg/common/logger"
	"github.com/synaptica-ai/scribe/pkg/similarity"
)

func main() {
	logger.Init("corpus-import")
	cfg := config.Load()

	path := flag.String("file", cfg.CorpusPath, "path to the JSON case corpus")
	timeout := flag.Duration("timeout", 5*time.Minute, "import deadline")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	records, err := similarity.FileSource{Path: *path}.LoadCases(ctx)
	if err != nil {
		logger.Log.WithError(err).WithField("file", *path).Fatal("failed to read case corpus")
	}

	db, err := database.GetPostgres()
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to postgres")
	}
	defer database.ClosePostgres()

	repo := similarity.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("failed to migrate case corpus tables")
	}

	if err := repo.Upsert(ctx, records); err != nil {
		logger.Log.WithError(err).Fatal("failed to import case corpus")
	}

	total, err := repo.Count(ctx)
	if err != nil {
		logger.Log.WithError(err).Warn("failed to count case records")
	}
	logger.Log.WithFields(map[string]interface{}{
		"file":     *path,
		"imported": len(records),
		"total":    total,
	}).Info("case corpus imported")
}
