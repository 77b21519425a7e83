package client

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/rent-pe-easy/internal/adapter"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/models"
)

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

// App dispatches one subcommand per invocation.
type App struct {
	adapter   adapter.ServerAdapter
	sessions  SessionStore
	buildInfo models.AppBuildInfo

	out io.Writer
	now func() time.Time

	logger *logger.Logger
}

func NewApp(serverAdapter adapter.ServerAdapter, sessions SessionStore, buildInfo models.AppBuildInfo, out io.Writer, logger *logger.Logger) *App {
	return &App{
		adapter:   serverAdapter,
		sessions:  sessions,
		buildInfo: buildInfo,
		out:       out,
		now:       time.Now,
		logger:    logger,
	}
}

// Run implements [Client].
func (a *App) Run(ctx context.Context, args []string) error {
	commands := a.commands()

	if len(args) == 0 {
		a.printUsage(commands)
		return fmt.Errorf("%w: no command given", ErrUsage)
	}

	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		a.printUsage(commands)
		return nil
	}

	cmd, ok := commands[name]
	if !ok {
		a.printUsage(commands)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	a.logger.Debug().Str("command", name).Msg("running command")
	err := cmd.run(ctx, args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

func (a *App) commands() map[string]command {
	return map[string]command{
		"register":        {usage: "register -username U -email E -password P [-full-name N] [-phone P]", run: a.register},
		"login":           {usage: "login -username U -password P", run: a.login},
		"refresh":         {usage: "refresh", run: a.refresh},
		"logout":          {usage: "logout", run: a.logout},
		"search":          {usage: "search [-city C] [-type T] [-min-price N] [-max-price N]", run: a.search},
		"featured":        {usage: "featured", run: a.featured},
		"get":             {usage: "get <property-id>", run: a.get},
		"favorites":       {usage: "favorites", run: a.favorites},
		"favorite-add":    {usage: "favorite-add <property-id>", run: a.favoriteAdd},
		"favorite-remove": {usage: "favorite-remove <property-id>", run: a.favoriteRemove},
		"version":         {usage: "version", run: a.version},
	}
}

func (a *App) printUsage(commands map[string]command) {
	lines := make([]string, 0, len(commands))
	for _, cmd := range commands {
		lines = append(lines, "  "+cmd.usage)
	}
	sort.Strings(lines)

	fmt.Fprintf(a.out, "usage: rent-client <command> [flags]\n\ncommands:\n%s\n", strings.Join(lines, "\n"))
}

// withSession runs fn with the saved access token. When the server answers
// 401 the token pair is refreshed once and fn is retried.
func (a *App) withSession(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := a.sessions.Load()
	if err != nil {
		return err
	}
	a.adapter.SetToken(session.AccessToken)

	err = fn(ctx)
	if !errors.Is(err, adapter.ErrUnauthorized) || session.RefreshToken == "" {
		return err
	}

	a.logger.Debug().Msg("access token rejected, refreshing session")
	if _, refreshErr := a.refreshSession(ctx, session); refreshErr != nil {
		return fmt.Errorf("session expired, log in again: %w", refreshErr)
	}

	return fn(ctx)
}

func (a *App) refreshSession(ctx context.Context, session Session) (models.AuthResponse, error) {
	auth, err := a.adapter.Refresh(ctx, session.RefreshToken)
	if err != nil {
		return models.AuthResponse{}, err
	}

	return auth, a.saveSession(auth)
}

func (a *App) saveSession(auth models.AuthResponse) error {
	return a.sessions.Save(Session{
		AccessToken:  auth.AccessToken,
		RefreshToken: auth.RefreshToken,
		Username:     auth.User.Username,
		SavedAt:      a.now().UTC(),
	})
}

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func propertyIDArg(name string, args []string) (uuid.UUID, error) {
	if len(args) != 1 {
		return uuid.Nil, fmt.Errorf("%w: %s expects exactly one property id", ErrUsage, name)
	}

	id, err := uuid.Parse(strings.TrimSpace(args[0]))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid property id %q", ErrUsage, args[0])
	}

	return id, nil
}
