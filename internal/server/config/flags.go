package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/authgate/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN; empty selects the in-memory store
//	-t string   auth type, "basic" or "session"
//	-n string   session cookie name
//	-b int      bcrypt cost (0 = library default)
//
// os.Args is first filtered to only the flags handled here using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-n", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.AuthType, "t", config.AuthType, "auth type (basic or session)")
	fs.StringVar(&config.SessionCookieName, "n", config.SessionCookieName, "session cookie name")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost (0 = default)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
