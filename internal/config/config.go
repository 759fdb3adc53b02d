package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the process configuration, loaded from the environment with
// development defaults.
type Config struct {
	HTTPAddr           string
	Environment        string
	LogLevel           string
	ServiceName        string
	AdminUser          string
	AdminPassword      string
	JWTSigningKey      string
	JWTExpirationHours int
	StrictSettlement   bool
	SeedDemoData       bool
}

// Load reads .env when present, then the environment.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		HTTPAddr:           getenv("HTTP_ADDR", ":9091"),
		Environment:        getenv("APP_ENV", "development"),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		ServiceName:        getenv("SERVICE_NAME", "mokha"),
		AdminUser:          getenv("ADMIN_USER", "admin"),
		AdminPassword:      getenv("ADMIN_PASSWORD", "admin"),
		JWTSigningKey:      getenv("JWT_SIGNING_KEY", "dev-signing-key"),
		JWTExpirationHours: getint("JWT_EXPIRATION_HOURS", 24),
		StrictSettlement:   getbool("SETTLEMENT_STRICT", false),
		SeedDemoData:       getbool("SEED_DEMO_DATA", true),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
