package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	ServerPort     string
	ServerHost     string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestBody int64
	RateLimitRPS   int
	RateLimitBurst int

	// Database
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Kafka
	KafkaBrokers   []string
	KafkaGroupID   string
	UtteranceTopic string
	ReportTopic    string
	DLQTopic       string

	// Extraction
	LexiconPath     string
	TerminologyPath string

	// Similar cases
	CorpusSource string
	CorpusPath   string
	TopK         int

	// Session state
	SnapshotTTL    time.Duration
	ArchiveEnabled bool

	// Rendering collaborator
	RenderBaseURL string
	RenderTimeout time.Duration
}

const (
	CorpusSourceFile     = "file"
	CorpusSourcePostgres = "postgres"
	CorpusSourceNone     = "none"
)

func Load() *Config {
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8090"),
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ReadTimeout:    getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   getDuration("WRITE_TIMEOUT", 30*time.Second),
		MaxRequestBody: int64(getIntEnv("MAX_REQUEST_BODY_BYTES", 1024*1024)),
		RateLimitRPS:   getIntEnv("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 100),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scribe"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scribe123"),
		PostgresDB:       getEnv("POSTGRES_DB", "scribe"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		KafkaBrokers:   getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaGroupID:   getEnv("KAFKA_GROUP_ID", "scribe-service"),
		UtteranceTopic: getEnv("SCRIBE_UTTERANCE_TOPIC", "transcription.utterances"),
		ReportTopic:    getEnv("SCRIBE_REPORT_TOPIC", "scribe.reports"),
		DLQTopic:       getEnv("SCRIBE_DLQ_TOPIC", ""),

		LexiconPath:     getEnv("SCRIBE_LEXICON_PATH", ""),
		TerminologyPath: getEnv("SCRIBE_TERMINOLOGY_PATH", ""),

		CorpusSource: strings.ToLower(getEnv("SCRIBE_CORPUS_SOURCE", CorpusSourceFile)),
		CorpusPath:   getEnv("SCRIBE_CORPUS_PATH", "patient_records_visit_200.json"),
		TopK:         getIntEnv("SCRIBE_TOP_K", 5),

		SnapshotTTL:    getDuration("SCRIBE_SNAPSHOT_TTL", 2*time.Hour),
		ArchiveEnabled: getBoolEnv("SCRIBE_ARCHIVE_ENABLED", false),

		RenderBaseURL: getEnv("RENDER_BASE_URL", ""),
		RenderTimeout: getDuration("RENDER_TIMEOUT", 20*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
