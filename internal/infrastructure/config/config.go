package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type KafkaConfig struct {
	Brokers       []string
	DecisionTopic string
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	// DecisionTTL bounds how long a decision stays cached.
	DecisionTTL time.Duration
}

type PredictorConfig struct {
	// Mode selects the predictor adapter: "http", "simulated" or "disabled".
	Mode           string
	BaseURL        string
	APIKey         string
	TimeoutSeconds int
	MaxRetries     int
	RetryBackoffMs int
}

// EngineConfig carries the decision thresholds that are tunable per
// deployment. The remaining rule and pricing constants are fixed business
// rules and live with the engine.
type EngineConfig struct {
	MinSalary            float64
	MinCreditScore       int
	MaxDebtToIncomeRatio float64
	LowRiskThreshold     float64
	HighRiskThreshold    float64
}

type LogConfig struct {
	Level  string
	Format string
}

type Config struct {
	HTTPPort       int
	DB             DatabaseConfig
	Kafka          KafkaConfig
	Redis          RedisConfig
	Predictor      PredictorConfig
	Engine         EngineConfig
	Log            LogConfig
	MigrationsPath string
	ServiceName    string
}

func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
	if c.Engine.HighRiskThreshold >= c.Engine.LowRiskThreshold {
		panic("HIGH_RISK_THRESHOLD must be below LOW_RISK_THRESHOLD")
	}
}

func Load() Config {
	return Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "loan"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "loan_decisions"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),
		},
		Kafka: KafkaConfig{
			Brokers:       []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			DecisionTopic: getEnv("KAFKA_DECISION_TOPIC", "lending.decisions"),
		},
		Redis: RedisConfig{
			Enabled:     getEnvBool("REDIS_ENABLED", false),
			Addr:        getEnv("REDIS_ADDR", "localhost:6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvInt("REDIS_DB", 0),
			DecisionTTL: time.Duration(getEnvInt("REDIS_DECISION_TTL_SECONDS", 300)) * time.Second,
		},
		Predictor: PredictorConfig{
			Mode:           getEnv("PREDICTOR_MODE", "simulated"),
			BaseURL:        getEnv("PREDICTOR_URL", "http://localhost:8500"),
			APIKey:         getEnv("PREDICTOR_API_KEY", ""),
			TimeoutSeconds: getEnvInt("PREDICTOR_TIMEOUT_SECONDS", 10),
			MaxRetries:     getEnvInt("PREDICTOR_MAX_RETRIES", 3),
			RetryBackoffMs: getEnvInt("PREDICTOR_RETRY_BACKOFF_MS", 200),
		},
		Engine: EngineConfig{
			MinSalary:            getEnvFloat("MIN_SALARY", 30_000),
			MinCreditScore:       getEnvInt("MIN_CREDIT_SCORE", 600),
			MaxDebtToIncomeRatio: getEnvFloat("MAX_DTI_RATIO", 0.4),
			LowRiskThreshold:     getEnvFloat("LOW_RISK_THRESHOLD", 0.8),
			HighRiskThreshold:    getEnvFloat("HIGH_RISK_THRESHOLD", 0.4),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		ServiceName:    "loan-decision-service",
	}
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
