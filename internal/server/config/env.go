package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the process environment. A .env file in the
// working directory is folded in first; a missing file is not an error.
//
// Recognized variables:
//
//	ADDRESS       HTTP bind address
//	DATABASE_DSN  PostgreSQL DSN
//	AUTH_TYPE     "basic" or "session"
//	SESSION_NAME  session cookie name
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("AUTH_TYPE"); ok {
		config.AuthType = v
	}
	if v, ok := os.LookupEnv("SESSION_NAME"); ok {
		config.SessionCookieName = v
	}
}
