package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	LogFormat     string
	JWTSigningKey string
	TokenTTL      time.Duration
	DatabaseURL   string
	Redis         RedisConfig
	Admin         AdminConfig
	Audit         AuditConfig
}

// RedisConfig configures the Redis draft store. An empty URL keeps drafts in memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AdminConfig is the account seeded on an empty user store.
type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

// AuditConfig enables the Kafka audit sink when Brokers is non-empty.
type AuditConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:          envOr("CDP_ADDR", ":8080"),
		LogFormat:     envOr("LOG_FORMAT", "json"),
		JWTSigningKey: jwtSigningKey,
		TokenTTL:      durationOr("TOKEN_TTL", 8*time.Hour),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: intOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durationOr("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationOr("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationOr("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Admin: AdminConfig{
			Email:    envOr("ADMIN_EMAIL", "admin@cdp.sn"),
			Password: envOr("ADMIN_PASSWORD", "admin123"),
			Name:     envOr("ADMIN_NAME", "Administrateur CDP"),
		},
		Audit: AuditConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   envOr("AUDIT_TOPIC", "cdp.audit"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intOr(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
