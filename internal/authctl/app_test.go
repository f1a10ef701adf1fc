package authctl

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/authgate/internal/server/config"
	"github.com/dmitrijs2005/authgate/internal/server/password"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authgate/internal/server/services"
)

func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BcryptCost = bcrypt.MinCost

	manager := repomanager.NewInMemoryRepositoryManager()
	hasher := password.NewBcryptHasher(cfg.BcryptCost)
	svc := services.NewAuthService(manager.Users(), hasher)

	var out bytes.Buffer
	return &App{
		config:  cfg,
		auth:    svc,
		manager: manager,
		reader:  bufio.NewReader(strings.NewReader(input)),
		out:     &out,
	}, &out
}

func stubPassword(t *testing.T, pwd string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) {
		return []byte(pwd), nil
	}
}

func TestRunUnknownCommand(t *testing.T) {
	app, out := newTestApp(t, "")
	err := app.Run(context.Background(), []string{"frobnicate"})
	require.ErrorContains(t, err, "unknown command")
	require.Contains(t, out.String(), "usage: authctl")
}

func TestRunNoCommand(t *testing.T) {
	app, _ := newTestApp(t, "")
	err := app.Run(context.Background(), nil)
	require.Error(t, err)
}

func TestRegisterCommand(t *testing.T) {
	app, out := newTestApp(t, "bob@example.com\n")
	stubPassword(t, "secret")

	err := app.Run(context.Background(), []string{"register"})
	require.NoError(t, err)
	require.Contains(t, out.String(), "created user bob@example.com")

	ok, err := app.auth.ValidLogin(context.Background(), "bob@example.com", "secret")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRegisterCommandDuplicate(t *testing.T) {
	app, _ := newTestApp(t, "bob@example.com\nbob@example.com\n")
	stubPassword(t, "secret")

	require.NoError(t, app.Run(context.Background(), []string{"register"}))
	err := app.Run(context.Background(), []string{"register"})
	require.ErrorContains(t, err, "already exists")
}

func TestResetTokenCommand(t *testing.T) {
	app, out := newTestApp(t, "bob@example.com\nbob@example.com\n")
	stubPassword(t, "secret")

	require.NoError(t, app.Run(context.Background(), []string{"register"}))

	err := app.Run(context.Background(), []string{"reset-token"})
	require.NoError(t, err)
	require.Contains(t, out.String(), "reset token for bob@example.com:")
}

func TestResetTokenCommandUnknownEmail(t *testing.T) {
	app, _ := newTestApp(t, "nobody@example.com\n")
	err := app.Run(context.Background(), []string{"reset-token"})
	require.ErrorContains(t, err, "not found")
}

func TestMigrateCommand(t *testing.T) {
	app, out := newTestApp(t, "")
	err := app.Run(context.Background(), []string{"migrate"})
	require.NoError(t, err)
	require.Contains(t, out.String(), "migrations applied")
}
