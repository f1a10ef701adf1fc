package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/authgate/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config.
// Absent keys leave the corresponding Config fields untouched.
type JsonConfig struct {
	EndpointAddr      *string  `json:"endpoint_addr"`
	DatabaseDSN       *string  `json:"database_dsn"`
	AuthType          *string  `json:"auth_type"`
	SessionCookieName *string  `json:"session_cookie_name"`
	ExcludedPaths     []string `json:"excluded_paths"`
	BcryptCost        *int     `json:"bcrypt_cost"`
}

// parseJson loads configuration values from the JSON file given via the
// -c or -config command-line flags. Without the flag no file is loaded.
// An unreadable file or invalid JSON panics: a requested config file that
// cannot be applied is a startup error, not something to run without.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.AuthType != nil {
		config.AuthType = *c.AuthType
	}
	if c.SessionCookieName != nil {
		config.SessionCookieName = *c.SessionCookieName
	}
	if c.ExcludedPaths != nil {
		config.ExcludedPaths = c.ExcludedPaths
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
}
