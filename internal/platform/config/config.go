package config

import (
	"os"
	"strings"
	"time"

	pstrings "voteguard/pkg/platform/strings"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	// DatabaseURL selects the Postgres store; empty runs the in-memory
	// roster seeded at startup.
	DatabaseURL string

	// RedisURL enables the advisory response cache when set.
	RedisURL string

	// KafkaBrokers enables the audit mirror when non-empty.
	KafkaBrokers    []string
	KafkaAuditTopic string

	ShutdownTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("VOTEGUARD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	topic := os.Getenv("KAFKA_AUDIT_TOPIC")
	if topic == "" {
		topic = "voteguard.audit"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = pstrings.DedupeAndTrim(strings.Split(raw, ","))
	}

	return Server{
		Addr:            addr,
		JWTSigningKey:   jwtSigningKey,
		JWTIssuer:       "voteguard",
		JWTAudience:     "voteguard-api",
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		KafkaBrokers:    brokers,
		KafkaAuditTopic: topic,
		ShutdownTimeout: 10 * time.Second,
	}
}
