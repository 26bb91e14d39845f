package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBroker = "broker1:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://api.spotcrime.com/crimes.json", cfg.CrimeAPIURL)
	assert.Equal(t, ".", cfg.CrimeAPIKey)
	assert.Equal(t, 5*time.Second, cfg.CrimeAPITimeout)
	assert.Equal(t, "crimes", cfg.CrimeResultKey)
	assert.Equal(t, "address", cfg.FieldAddress)
	assert.Equal(t, "type", cfg.FieldCategory)
	assert.Equal(t, "date", cfg.FieldDate)
	assert.Equal(t, 500, cfg.CacheSize)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "crime-reports", cfg.KafkaReportTopic)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("CRIME_API_URL", "http://localhost:9999/crimes.json")
	t.Setenv("CRIME_API_KEY", "secret")
	t.Setenv("CRIME_API_TIMEOUT", "2s")
	t.Setenv("CRIME_RESULT_KEY", "incidents")
	t.Setenv("CRIME_FIELD_ADDRESS", "block")
	t.Setenv("CRIME_FIELD_TYPE", "offense")
	t.Setenv("CRIME_FIELD_DATE", "reported")
	t.Setenv("CRIME_CACHE_SIZE", "50")
	t.Setenv("CRIME_CACHE_TTL", "0s")
	t.Setenv("KAFKA_BROKERS", testBroker+",broker2:9092")
	t.Setenv("KAFKA_REPORT_TOPIC", "custom-reports")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://localhost:9999/crimes.json", cfg.CrimeAPIURL)
	assert.Equal(t, "secret", cfg.CrimeAPIKey)
	assert.Equal(t, 2*time.Second, cfg.CrimeAPITimeout)
	assert.Equal(t, "incidents", cfg.CrimeResultKey)
	assert.Equal(t, "block", cfg.FieldAddress)
	assert.Equal(t, "offense", cfg.FieldCategory)
	assert.Equal(t, "reported", cfg.FieldDate)
	assert.Equal(t, 50, cfg.CacheSize)
	assert.Equal(t, time.Duration(0), cfg.CacheTTL)
	assert.Equal(t, []string{testBroker, "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-reports", cfg.KafkaReportTopic)
	assert.True(t, cfg.KafkaEnabled)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidAPITimeout(t *testing.T) {
	t.Setenv("CRIME_API_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CRIME_API_TIMEOUT")
}

func TestLoad_ZeroAPITimeout(t *testing.T) {
	t.Setenv("CRIME_API_TIMEOUT", "0s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CRIME_API_TIMEOUT")
}

func TestLoad_NegativeCacheTTL(t *testing.T) {
	t.Setenv("CRIME_CACHE_TTL", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CRIME_CACHE_TTL")
}

func TestLoad_InvalidCacheSizeFallsBack(t *testing.T) {
	t.Setenv("CRIME_CACHE_SIZE", "-3")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.CacheSize)
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoad_KafkaExplicitlyDisabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", testBroker)
	t.Setenv("KAFKA_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{testBroker}, cfg.KafkaBrokers)
}
