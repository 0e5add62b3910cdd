package config

import (
	"os"
	"strconv"
	"time"
)

// Config is read from the environment once at startup. A .env file, when
// present, is loaded by the caller before Load runs.
type Config struct {
	AppName  string
	HTTPPort string
	LogLevel string

	JWTSecret     string
	JWTExpiresIn  time.Duration
	SessionCookie string

	StorageDriver string
	StoragePath   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DatabaseURL   string

	LoginDelay         time.Duration
	CompanyFetchDelay  time.Duration
	CompanyUpdateDelay time.Duration
}

func Load() Config {
	return Config{
		AppName:  getEnv("APP_NAME", "Client Portal"),
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiresIn:  parseDuration("JWT_EXPIRES_IN", 24*time.Hour),
		SessionCookie: getEnv("SESSION_COOKIE", "portal_session"),

		StorageDriver: getEnv("STORAGE_DRIVER", "file"),
		StoragePath:   getEnv("STORAGE_PATH", "./data"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       parseInt("REDIS_DB", 0),
		DatabaseURL:   os.Getenv("DATABASE_URL"),

		LoginDelay:         parseDuration("LOGIN_DELAY", time.Second),
		CompanyFetchDelay:  parseDuration("COMPANY_FETCH_DELAY", 800*time.Millisecond),
		CompanyUpdateDelay: parseDuration("COMPANY_UPDATE_DELAY", time.Second),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key string, def time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d >= 0 {
			return d
		}
	}
	return def
}

func parseInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return def
}
