package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Settings is the environment-sourced configuration surface. Every knob
// has a default so a bare process comes up in development mode.
type Settings struct {
	Port string

	// Challenge issuance
	AuthDomain   string
	AuthScheme   string // ed25519 | secp256k1
	ChallengeTTL time.Duration

	// Session credential
	JWTSecret   string
	JWTAlg      string
	JWTTTL      time.Duration
	JWTIssuer   string
	JWTAudience string

	// Cookie delivery
	CookieName     string
	CookieDomain   string
	CookiePath     string
	CookieSecure   bool
	CookieSameSite string // lax | strict | none

	// Infrastructure
	RedisURL      string
	SweepInterval time.Duration
}

// Load reads settings from the environment, falling back to defaults.
func Load() Settings {
	authDomain := getEnv("AUTH_DOMAIN", "example.com")

	return Settings{
		Port: getEnv("PORT", "9000"),

		AuthDomain:   authDomain,
		AuthScheme:   strings.ToLower(getEnv("AUTH_SCHEME", "ed25519")),
		ChallengeTTL: getSeconds("AUTH_CHALLENGE_TTL_SECONDS", 300),

		JWTSecret:   getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTAlg:      getEnv("JWT_ALG", "HS256"),
		JWTTTL:      getSeconds("JWT_TTL_SECONDS", 3600),
		JWTIssuer:   getEnv("JWT_ISSUER", authDomain),
		JWTAudience: os.Getenv("JWT_AUDIENCE"),

		CookieName:     getEnv("JWT_COOKIE_NAME", "auth_token"),
		CookieDomain:   os.Getenv("JWT_COOKIE_DOMAIN"),
		CookiePath:     getEnv("JWT_COOKIE_PATH", "/"),
		CookieSecure:   getBool("JWT_COOKIE_SECURE", true),
		CookieSameSite: strings.ToLower(getEnv("JWT_COOKIE_SAMESITE", "lax")),

		RedisURL:      os.Getenv("REDIS_URL"),
		SweepInterval: getSeconds("SWEEP_INTERVAL_SECONDS", 60),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getSeconds(key string, fallback int) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallback) * time.Second
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return time.Duration(fallback) * time.Second
	}
	return time.Duration(n) * time.Second
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
