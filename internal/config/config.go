package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// CORSOrigins is a comma-separated list of allowed origins.
	CORSOrigins string

	// StoreBackend selects where live sessions are kept: memory, postgres or
	// redis. One process owns every session it stores either way.
	StoreBackend string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr string

	JWTSecret        string
	AnswerServiceURL string

	// RevealPauseSeconds is how long correctness feedback stays on screen
	// before the session auto-advances past a timed-out question.
	RevealPauseSeconds int

	// StatsRedisAddr enables the finished-game results queue when set.
	StatsRedisAddr string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		CORSOrigins:        getEnv("CORS_ORIGINS", "*"),
		StoreBackend:       getEnv("STORE_BACKEND", "memory"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBName:             getEnv("DB_NAME", "wihoot"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:          getEnv("JWT_SECRET", "super-secret-key-change-me"),
		AnswerServiceURL:   getEnv("ANSWER_SERVICE_URL", "http://localhost:8003"),
		RevealPauseSeconds: getEnvInt("REVEAL_PAUSE_SECONDS", 5),
		StatsRedisAddr:     getEnv("STATS_REDIS_ADDR", ""),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
