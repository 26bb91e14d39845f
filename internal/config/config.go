package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Upstream crime-data provider.
	CrimeAPIURL     string
	CrimeAPIKey     string
	CrimeAPITimeout time.Duration
	CrimeResultKey  string

	// Record field names read by the aggregator.
	FieldAddress  string
	FieldCategory string
	FieldDate     string

	// Upstream response cache. A zero TTL disables caching.
	CacheSize int
	CacheTTL  time.Duration

	// Report publishing.
	KafkaBrokers     []string
	KafkaReportTopic string
	KafkaEnabled     bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	apiTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("CRIME_API_TIMEOUT", "5s"))
	if err != nil || apiTimeout <= 0 {
		return nil, errors.New("invalid CRIME_API_TIMEOUT")
	}

	cacheTTL, err := time.ParseDuration(sharedcfg.EnvOrDefault("CRIME_CACHE_TTL", "1m"))
	if err != nil || cacheTTL < 0 {
		return nil, errors.New("invalid CRIME_CACHE_TTL")
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8000"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		CrimeAPIURL:     sharedcfg.EnvOrDefault("CRIME_API_URL", "https://api.spotcrime.com/crimes.json"),
		CrimeAPIKey:     sharedcfg.EnvOrDefault("CRIME_API_KEY", "."),
		CrimeAPITimeout: apiTimeout,
		CrimeResultKey:  sharedcfg.EnvOrDefault("CRIME_RESULT_KEY", "crimes"),

		FieldAddress:  sharedcfg.EnvOrDefault("CRIME_FIELD_ADDRESS", "address"),
		FieldCategory: sharedcfg.EnvOrDefault("CRIME_FIELD_TYPE", "type"),
		FieldDate:     sharedcfg.EnvOrDefault("CRIME_FIELD_DATE", "date"),

		CacheSize: parseCacheSize(),
		CacheTTL:  cacheTTL,

		KafkaBrokers:     brokers,
		KafkaReportTopic: sharedcfg.EnvOrDefault("KAFKA_REPORT_TOPIC", "crime-reports"),
		KafkaEnabled:     kafkaEnabled,
	}

	if cfg.CrimeAPIURL == "" {
		return nil, errors.New("CRIME_API_URL is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaReportTopic == "" {
		return nil, errors.New("KAFKA_REPORT_TOPIC is required")
	}

	return cfg, nil
}

func parseCacheSize() int {
	if s := os.Getenv("CRIME_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 500
}
