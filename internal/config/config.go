package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. The two JWT secrets are deliberately
// separate: access and refresh tokens are signed with different keys so
// a leaked access key cannot forge refresh tokens. Issuer and audience
// are bound into every token, so tokens minted under one deployment
// configuration are rejected by a differently configured verifier.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign access tokens
	JWTRefresh     string // secret used to sign refresh tokens
	JWTIssuer      string // issuer claim bound into every token
	JWTAudience    string // audience claim bound into every token
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and
// returns a Config. Both signing secrets are required; a missing
// secret halts startup, since a server that cannot mint or verify
// tokens has nothing to serve. TTLs and bcrypt cost have defaults.
func Load() Config {
	return Config{
		Env:            envOr("APP_ENV", "dev"),
		Port:           envOr("APP_PORT", "3000"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		JWTRefresh:     must("JWT_REFRESH_SECRET"),
		JWTIssuer:      envOr("JWT_ISSUER", "aicode-platform"),
		JWTAudience:    envOr("JWT_AUDIENCE", "aicode-users"),
		AccessTTLMin:   intOr("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTTLDays: intOr("REFRESH_TOKEN_TTL_DAYS", 7),
		BcryptCost:     intOr("BCRYPT_COST", 12),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// envOr returns the variable's value or a default when unset.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// intOr is like envOr for integers. A malformed value is fatal rather
// than silently replaced.
func intOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
