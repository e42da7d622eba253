package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Chat     ChatConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
	OtlpEndpoint       string
}

type DatabaseConfig struct {
	Connection string
}

type ChatConfig struct {
	// MaxBodyLength bounds the rune length of a single message body.
	MaxBodyLength int
	// PublishTimeoutMs bounds how long a broadcast publish may block
	// the persisting caller before the live push is dropped.
	PublishTimeoutMs int
	// RetentionDays is how long messages are kept before the sweep
	// removes them. 0 disables the periodic sweep.
	RetentionDays int
	// RetentionSweepHours is the interval between automatic sweeps.
	RetentionSweepHours int
	// PresenceTTLSeconds is how long an online hint survives without
	// being refreshed.
	PresenceTTLSeconds int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
			OtlpEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Chat: ChatConfig{
			MaxBodyLength:       getEnvAsInt("CHAT_MAX_BODY_LENGTH", 4000),
			PublishTimeoutMs:    getEnvAsInt("CHAT_PUBLISH_TIMEOUT_MS", 2000),
			RetentionDays:       getEnvAsInt("CHAT_RETENTION_DAYS", 0),
			RetentionSweepHours: getEnvAsInt("CHAT_RETENTION_SWEEP_HOURS", 24),
			PresenceTTLSeconds:  getEnvAsInt("CHAT_PRESENCE_TTL_SECONDS", 60),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
