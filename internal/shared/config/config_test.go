package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.GetServerAddress())
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())
	assert.Equal(t, "containment", cfg.Events.OverlapRule)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Contains(t, cfg.Database.DSN, "dbname=ticketeer")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EVENT_OVERLAP_RULE", "Intersection")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	t.Setenv("RATE_LIMIT_WINDOW_DURATION", "30s")
	t.Setenv("RATE_LIMIT_PURCHASE_REQUESTS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "intersection", cfg.Events.OverlapRule)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.WindowDuration)
	assert.Equal(t, 10, cfg.RateLimit.PurchaseRequests)
}

func TestGinModeHelpers(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())

	t.Setenv("GIN_MODE", "")
	cfg = Load()
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.IsDevelopment())
}
