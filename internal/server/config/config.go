// Package config handles configuration for the server component, including
// defaults, JSON overlay, environment variables, and command-line flags.
package config

// Config holds runtime settings for the authgate server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store,
//     which is only suitable for development and tests.
//   - AuthType: request authentication mode, "basic" or "session".
//   - SessionCookieName: cookie carrying the session token. Empty disables
//     cookie-based extraction entirely.
//   - ExcludedPaths: path patterns exempt from authentication. A trailing
//     '*' makes a pattern a prefix match.
//   - BcryptCost: work factor for password hashing; 0 means the bcrypt
//     default.
type Config struct {
	EndpointAddr      string
	DatabaseDSN       string
	AuthType          string
	SessionCookieName string
	ExcludedPaths     []string
	BcryptCost        int
}

// Supported AuthType values.
const (
	AuthTypeBasic   = "basic"
	AuthTypeSession = "session"
)

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDSN = ""
	c.AuthType = AuthTypeSession
	c.SessionCookieName = "session_id"
	c.ExcludedPaths = []string{
		"/",
		"/api/v1/status/",
		"/api/v1/users/",
		"/api/v1/sessions/",
		"/api/v1/reset_password/",
	}
	c.BcryptCost = 0
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment, and finally command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
