package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/dmitrijs2005/authgate/internal/authctl"
	"github.com/dmitrijs2005/authgate/internal/server/config"
)

func main() {
	ctx := context.Background()

	// The subcommand comes first, flags after it. Configuration flags are
	// picked up by LoadConfig.
	var args []string
	if len(os.Args) > 1 && !strings.HasPrefix(os.Args[1], "-") {
		args = os.Args[1:2]
	}

	cfg := config.LoadConfig()

	app, err := authctl.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	if err := app.Run(ctx, args); err != nil {
		log.Fatalf("%v", err)
	}
}
