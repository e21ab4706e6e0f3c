package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string

	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	SessionTTLMinutes     int
	ResetTokenTTLMinutes  int
	VerifyTokenTTLMinutes int

	CookieName   string
	CookieSecure bool

	CORSOrigins []string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:     getEnv("JWT_ISSUER", "taskhub"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 60),

		SessionTTLMinutes:     getEnvInt("SESSION_TTL_MINUTES", 60*24*7),
		ResetTokenTTLMinutes:  getEnvInt("RESET_TOKEN_TTL_MINUTES", 30),
		VerifyTokenTTLMinutes: getEnvInt("VERIFY_TOKEN_TTL_MINUTES", 60*24),

		CookieName:   getEnv("AUTH_COOKIE_NAME", "taskhub_session"),
		CookieSecure: getEnvBool("AUTH_COOKIE_SECURE", false),

		CORSOrigins: getEnvList("CORS_ORIGINS", "http://localhost:3000"),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvList(key, def string) []string {
	raw := getEnv(key, def)
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
