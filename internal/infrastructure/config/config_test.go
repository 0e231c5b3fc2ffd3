package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("uses defaults when the environment is empty", func(t *testing.T) {
		cfg := Load()

		assert.Equal(t, 8080, cfg.HTTPPort)
		assert.Equal(t, "localhost", cfg.DB.Host)
		assert.Equal(t, "require", cfg.DB.SSLMode)
		assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
		assert.Equal(t, "lending.decisions", cfg.Kafka.DecisionTopic)
		assert.False(t, cfg.Redis.Enabled)
		assert.Equal(t, 5*time.Minute, cfg.Redis.DecisionTTL)
		assert.Equal(t, "simulated", cfg.Predictor.Mode)
		assert.Equal(t, 30_000.0, cfg.Engine.MinSalary)
		assert.Equal(t, 600, cfg.Engine.MinCreditScore)
		assert.Equal(t, "loan-decision-service", cfg.ServiceName)
	})

	t.Run("reads overrides from the environment", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "9090")
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("REDIS_ENABLED", "true")
		t.Setenv("REDIS_DECISION_TTL_SECONDS", "60")
		t.Setenv("PREDICTOR_MODE", "http")
		t.Setenv("MIN_SALARY", "45000")
		t.Setenv("LOW_RISK_THRESHOLD", "0.85")

		cfg := Load()

		assert.Equal(t, 9090, cfg.HTTPPort)
		assert.Equal(t, "db.internal", cfg.DB.Host)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, time.Minute, cfg.Redis.DecisionTTL)
		assert.Equal(t, "http", cfg.Predictor.Mode)
		assert.Equal(t, 45_000.0, cfg.Engine.MinSalary)
		assert.Equal(t, 0.85, cfg.Engine.LowRiskThreshold)
	})

	t.Run("ignores malformed numeric values", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "not-a-number")
		t.Setenv("MIN_SALARY", "plenty")

		cfg := Load()

		assert.Equal(t, 8080, cfg.HTTPPort)
		assert.Equal(t, 30_000.0, cfg.Engine.MinSalary)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("panics without a database password", func(t *testing.T) {
		cfg := Load()
		cfg.DB.Password = ""

		assert.Panics(t, func() { cfg.Validate() })
	})

	t.Run("panics when the risk thresholds are inverted", func(t *testing.T) {
		cfg := Load()
		cfg.DB.Password = "secret"
		cfg.Engine.LowRiskThreshold = 0.4
		cfg.Engine.HighRiskThreshold = 0.8

		assert.Panics(t, func() { cfg.Validate() })
	})

	t.Run("accepts a complete configuration", func(t *testing.T) {
		cfg := Load()
		cfg.DB.Password = "secret"

		assert.NotPanics(t, func() { cfg.Validate() })
	})
}

func TestConfig_HTTPAddr(t *testing.T) {
	cfg := Config{HTTPPort: 8081}
	assert.Equal(t, ":8081", cfg.HTTPAddr())
}
