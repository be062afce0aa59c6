package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/target/boxoffice/config"
	"github.com/target/boxoffice/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	Out    io.Writer
}

// defaultScope is the session scope CLI logins are stored under.
const defaultScope = "cli"

func main() {
	logger := bootstrap.InitLogger("warn")

	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	if cfg.Storage.Backend == config.StorageMemory {
		// Memory storage would forget the login as soon as the process exits.
		cfg.Storage.Backend = config.StorageSQLite
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
		Out:    os.Stdout,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Sign in against the ticketing API and store the session locally",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Invalidate the stored session",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the stored profile, roles and token details",
			run:         runWhoami,
		},
		"has-role": {
			name:        "has-role",
			description: "Exit non-zero unless the stored principal holds the given role",
			run:         runHasRole,
		},
		"events": {
			name:        "events",
			description: "List events with their venues",
			run:         runEvents,
		},
		"venues": {
			name:        "venues",
			description: "List venues",
			run:         runVenues,
		},
		"tickets": {
			name:        "tickets",
			description: "List tickets, optionally filtered by status or event",
			run:         runTickets,
		},
		"stats": {
			name:        "stats",
			description: "Print dashboard ticket statistics",
			run:         runStats,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: boxoffice-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	names := make([]string, 0, len(commands()))
	for name := range commands() {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := commands()[name]
		if err := writef(w, "  %-12s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
