package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is built once at startup and passed around read-only.
type Config struct {
	Env        string
	ServerPort string
	BaseURL    string

	// DBUrl may carry a <PASSWORD> placeholder that is substituted
	// with DBPassword at load time.
	DBUrl      string
	DBPassword string

	JWTSecret        string
	JWTExpires       time.Duration
	JWTCookieExpires time.Duration

	RedisAddr       string
	RateLimitMax    int
	RateLimitWindow time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string

	MercadoPagoToken string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
}

func Load() *Config {
	cfg := &Config{
		Env:        getEnv("APP_ENV", "development"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		BaseURL:    getEnv("BASE_URL", "http://localhost:8080"),

		DBUrl:      getEnv("DATABASE_URL", "postgres://trektide:<PASSWORD>@localhost:5432/trektide?sslmode=disable"),
		DBPassword: getEnv("DATABASE_PASSWORD", "trektide"),

		JWTSecret:        getEnv("JWT_SECRET", "changeme"),
		JWTExpires:       getDuration("JWT_EXPIRES_IN", 90*24*time.Hour),
		JWTCookieExpires: getDuration("JWT_COOKIE_EXPIRES_IN", 90*24*time.Hour),

		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RateLimitMax:    getInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: getDuration("RATE_LIMIT_WINDOW", time.Hour),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		EmailFrom:    getEnv("EMAIL_FROM", "Trektide <hello@trektide.dev>"),

		MercadoPagoToken: getEnv("MP_ACCESS_TOKEN", ""),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Bucket:    getEnv("S3_BUCKET", "trektide-images"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
	}

	cfg.DBUrl = strings.Replace(cfg.DBUrl, "<PASSWORD>", cfg.DBPassword, 1)

	return cfg
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
