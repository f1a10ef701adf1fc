// Package authctl implements the administrative command line tool. It
// talks to the same storage backend as the server and covers the tasks
// that have no HTTP endpoint: creating accounts from a terminal, issuing
// reset tokens for support cases, and applying migrations by hand.
package authctl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/config"
	"github.com/dmitrijs2005/authgate/internal/server/password"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authgate/internal/server/services"
)

type App struct {
	config  *config.Config
	auth    *services.AuthService
	manager repomanager.RepositoryManager
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(cfg *config.Config) (*App, error) {
	var manager repomanager.RepositoryManager
	var err error
	if cfg.DatabaseDSN == "" {
		manager = repomanager.NewInMemoryRepositoryManager()
	} else {
		manager, err = repomanager.NewPostgresRepositoryManager(cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	hasher := password.NewBcryptHasher(cfg.BcryptCost)
	svc := services.NewAuthService(manager.Users(), hasher)

	return &App{
		config:  cfg,
		auth:    svc,
		manager: manager,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) Close() error {
	if conn := a.manager.Conn(); conn != nil {
		return conn.Close()
	}
	return nil
}

// Run dispatches a single subcommand and returns when it finishes.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return errors.New("no command given")
	}

	switch args[0] {
	case "register":
		return a.register(ctx)
	case "reset-token":
		return a.resetToken(ctx)
	case "migrate":
		return a.migrate(ctx)
	default:
		a.usage()
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "usage: authctl <command>")
	fmt.Fprintln(a.out, "commands:")
	fmt.Fprintln(a.out, "  register     create a new user account")
	fmt.Fprintln(a.out, "  reset-token  issue a password reset token for a user")
	fmt.Fprintln(a.out, "  migrate      apply database migrations")
}

func (a *App) register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter user email", a.out)
	if err != nil {
		return err
	}

	pwd, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pwd)

	user, err := a.auth.Register(ctx, email, string(pwd))
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return fmt.Errorf("user %s already exists", email)
		}
		return err
	}

	fmt.Fprintf(a.out, "created user %s (%s)\n", user.Email, user.ID)
	return nil
}

func (a *App) resetToken(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter user email", a.out)
	if err != nil {
		return err
	}

	token, err := a.auth.RequestPasswordReset(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("user %s not found", email)
		}
		return err
	}

	fmt.Fprintf(a.out, "reset token for %s: %s\n", email, token)
	return nil
}

func (a *App) migrate(ctx context.Context) error {
	if err := a.manager.RunMigrations(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "migrations applied")
	return nil
}
