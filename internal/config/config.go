package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	DBDriver    string
	DatabaseDSN string
	ResetDB     bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	SessionCookieName string
	SessionTTL        time.Duration
	SessionSecure     bool
	BcryptCost        int
	PostCacheTTL      time.Duration

	AMQPURL   string
	AMQPQueue string

	LogLevel    string
	LogFormat   string
	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
// Values from a .env file in the working directory are applied first;
// variables already present in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	driver := strings.ToLower(getEnv("DB_DRIVER", "sqlite"))
	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		DBDriver:    driver,
		DatabaseDSN: getEnv("DATABASE_DSN", defaultDSN(driver)),
		ResetDB:     getEnvBool("RESET_DB", false),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "session"),
		SessionTTL:        getEnvDuration("SESSION_TTL", 24*time.Hour),
		SessionSecure:     getEnvBool("SESSION_SECURE", false),
		BcryptCost:        getEnvInt("BCRYPT_COST", 10),
		PostCacheTTL:      getEnvDuration("POST_CACHE_TTL", 5*time.Minute),

		AMQPURL:   os.Getenv("AMQP_URL"),
		AMQPQueue: getEnv("AMQP_QUEUE", "blog.posts"),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

func defaultDSN(driver string) string {
	switch driver {
	case "mysql":
		return "user:password@tcp(localhost:3306)/blog?charset=utf8mb4&parseTime=True&loc=UTC"
	case "postgres":
		return "host=localhost user=postgres password=postgres dbname=blog port=5432 sslmode=disable TimeZone=UTC"
	default:
		return "file:blog.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
