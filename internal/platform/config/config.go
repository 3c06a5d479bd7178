// Package config builds runtime configuration from the environment so
// main stays lean. A .env file, when present, is loaded by cmd/server
// before FromEnv runs.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Addr        string
	DatabaseURL string
	RedisURL    string

	KafkaBrokers []string
	AuditTopic   string

	// CustomerSecret signs storefront bearer tokens (JWT_SECRET in the
	// deployed environment). AdminSecret signs admin panel tokens
	// (ACCESS_TOKEN_SECRET). ExtraSecrets are older secrets still accepted
	// during verification, supporting rotation.
	CustomerSecret string
	AdminSecret    string
	ExtraSecrets   []string

	CustomerTokenTTL time.Duration
	AdminTokenTTL    time.Duration

	AllowedOrigins []string
	CookieSecure   bool

	BcryptCost      int
	CatalogCacheTTL time.Duration
}

// AdminVerifySecrets is the ordered secret list the admin gate tries when
// verifying a bearer token: the admin secret first, then the customer
// secret, then any rotation leftovers.
func (c Config) AdminVerifySecrets() []string {
	secrets := make([]string, 0, 2+len(c.ExtraSecrets))
	for _, s := range append([]string{c.AdminSecret, c.CustomerSecret}, c.ExtraSecrets...) {
		if s = normalizeSecret(s); s != "" {
			secrets = append(secrets, s)
		}
	}
	return secrets
}

// CustomerVerifySecrets covers storefront tokens plus rotation leftovers.
func (c Config) CustomerVerifySecrets() []string {
	secrets := make([]string, 0, 1+len(c.ExtraSecrets))
	for _, s := range append([]string{c.CustomerSecret}, c.ExtraSecrets...) {
		if s = normalizeSecret(s); s != "" {
			secrets = append(secrets, s)
		}
	}
	return secrets
}

func FromEnv() Config {
	return Config{
		Addr:             getenv("VELORA_ADDR", ":8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
		AuditTopic:       getenv("AUDIT_TOPIC", "velora.audit"),
		CustomerSecret:   getenv("JWT_SECRET", "dev-secret-change-in-production"),
		AdminSecret:      getenv("ACCESS_TOKEN_SECRET", "dev-admin-secret-change-in-production"),
		ExtraSecrets:     splitList(os.Getenv("EXTRA_TOKEN_SECRETS")),
		CustomerTokenTTL: getduration("CUSTOMER_TOKEN_TTL", 7*24*time.Hour),
		AdminTokenTTL:    getduration("ADMIN_TOKEN_TTL", 24*time.Hour),
		AllowedOrigins:   splitList(getenv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")),
		CookieSecure:     os.Getenv("COOKIE_SECURE") == "true",
		BcryptCost:       getint("BCRYPT_COST", bcrypt.DefaultCost),
		CatalogCacheTTL:  getduration("CATALOG_CACHE_TTL", 5*time.Minute),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalizeSecret strips whitespace and accidental surrounding quotes from
// env-provided secrets; the deployed .env files carry both.
func normalizeSecret(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
