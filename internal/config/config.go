package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Cache backends.
const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv string

	HTTPPort              int
	RequestTimeout        time.Duration
	CORSAllowedOrigins    []string
	RealtimeRateLimit     float64
	RealtimeRateBurst     int
	GRPCEnabled           bool
	GRPCPort              int
	GRPCReflectionEnabled bool

	CacheBackend    string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	ScoreTTL        time.Duration
	MemoryCacheSize int

	DBDriver          string
	DBPath            string
	ScoringConfigPath string
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	return &Config{
		AppEnv: getEnv("APP_ENV", "development"),

		HTTPPort:              getEnvInt("HTTP_PORT", 8080),
		RequestTimeout:        time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		CORSAllowedOrigins:    getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RealtimeRateLimit:     getEnvFloat("REALTIME_RATE_LIMIT", 20),
		RealtimeRateBurst:     getEnvInt("REALTIME_RATE_BURST", 40),
		GRPCEnabled:           getEnvBool("GRPC_ENABLED", false),
		GRPCPort:              getEnvInt("GRPC_PORT", 50051),
		GRPCReflectionEnabled: getEnvBool("GRPC_REFLECTION_ENABLED", false),

		CacheBackend:    strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendRedis)),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		ScoreTTL:        time.Duration(getEnvInt("SCORE_TTL_SECONDS", 3600)) * time.Second,
		MemoryCacheSize: getEnvInt("MEMORY_CACHE_SIZE", 10000),

		DBDriver:          getEnv("DB_DRIVER", "sqlite3"),
		DBPath:            getEnv("DB_PATH", "./data/reference.db"),
		ScoringConfigPath: getEnv("SCORING_CONFIG_PATH", ""),
	}
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvList(key string, fallback []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
