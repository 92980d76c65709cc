package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/synaptica-ai/scribe/pkg/common/config"
	"github.com/synaptica-ai/scribe/pkg/common/database"
	"github.com/synaptica-ai/scribe/pkg/common/kafka"
	"github.com/synaptica-ai/scribe/pkg/common/logger"
	"github.com/synaptica-ai/scribe/pkg/extraction"
	"github.com/synaptica-ai/scribe/pkg/gateway/middleware"
	"github.com/synaptica-ai/scribe/pkg/lexicon"
	"github.com/synaptica-ai/scribe/pkg/observability/metrics"
	"github.com/synaptica-ai/scribe/pkg/render"
	"github.com/synaptica-ai/scribe/pkg/scribe"
	"github.com/synaptica-ai/scribe/pkg/similarity"
	"github.com/synaptica-ai/scribe/pkg/storage"
	"github.com/synaptica-ai/scribe/pkg/terminology"
)

func main() {
	logger.Init("scribe-service")
	cfg := config.Load()

	lex, err := lexicon.Load(cfg.LexiconPath)
	if err != nil {
		logger.Log.WithError(err).WithField("path", cfg.LexiconPath).Warn("using built-in lexicon")
	}
	if lex == nil {
		lex = lexicon.Default()
	}

	catalog, err := terminology.Load(cfg.TerminologyPath)
	if err != nil {
		logger.Log.WithError(err).WithField("path", cfg.TerminologyPath).Warn("using built-in terminology catalog")
		catalog = terminology.DefaultCatalog()
	}

	opts := []scribe.Option{
		scribe.WithAnalyzer(extraction.NewAnalyzer(lex)),
		scribe.WithMatcher(similarity.NewMatcher(lex)),
		scribe.WithCatalog(catalog),
		scribe.WithTopK(cfg.TopK),
		scribe.WithSnapshotStore(storage.NewSnapshotCache(database.GetRedis(), cfg.SnapshotTTL)),
	}
	defer database.CloseRedis()

	producer := kafka.NewProducer(cfg.ReportTopic)
	defer producer.Close()
	opts = append(opts, scribe.WithPublisher(producer))

	if cfg.RenderBaseURL != "" {
		opts = append(opts, scribe.WithRenderer(render.NewClient(cfg.RenderBaseURL, cfg.RenderTimeout)))
	}

	var corpusRepo *similarity.Repository
	if cfg.ArchiveEnabled || cfg.CorpusSource == config.CorpusSourcePostgres {
		db, err := database.GetPostgres()
		if err != nil {
			logger.Log.WithError(err).Fatal("failed to connect to postgres")
		}
		defer database.ClosePostgres()

		if cfg.ArchiveEnabled {
			archive := storage.NewArchive(db)
			if err := archive.AutoMigrate(); err != nil {
				logger.Log.WithError(err).Fatal("failed to migrate archive tables")
			}
			opts = append(opts, scribe.WithArchive(archive))
		}
		if cfg.CorpusSource == config.CorpusSourcePostgres {
			corpusRepo = similarity.NewRepository(db)
			if err := corpusRepo.AutoMigrate(); err != nil {
				logger.Log.WithError(err).Fatal("failed to migrate case corpus tables")
			}
		}
	}

	svc := scribe.NewService(opts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	switch cfg.CorpusSource {
	case config.CorpusSourceFile:
		_ = svc.LoadCorpusFrom(ctx, similarity.FileSource{Path: cfg.CorpusPath})
	case config.CorpusSourcePostgres:
		_ = svc.LoadCorpusFrom(ctx, corpusRepo)
	default:
		logger.Log.WithField("source", cfg.CorpusSource).Info("case corpus disabled")
	}

	consumer := kafka.NewConsumer(cfg.UtteranceTopic, cfg.KafkaGroupID)
	defer consumer.Close()
	if cfg.DLQTopic != "" {
		dlq := kafka.NewProducer(cfg.DLQTopic)
		defer dlq.Close()
		consumer.WithDeadLetter(dlq)
	}

	go func() {
		if err := consumer.Consume(ctx, svc.HandleUtteranceEvent); err != nil && ctx.Err() == nil {
			logger.Log.WithError(err).Fatal("consumer error")
		}
	}()

	router := mux.NewRouter()
	router.Use(middleware.Recovery, middleware.Logging, middleware.CORS)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ready","corpus_records":%d}`, svc.CorpusSize())
	}).Methods(http.MethodGet)

	router.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w)
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst), middleware.BodyLimit(cfg.MaxRequestBody))
	scribe.NewHTTPHandler(svc, cfg.MaxRequestBody).Register(api)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		}).Info("Scribe Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Scribe Service...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("server forced to shutdown")
	}

	logger.Log.Info("Scribe Service stopped")
}
