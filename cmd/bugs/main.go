// bugs is a terminal client for the bug tracker API. It lists reported
// bugs, files new ones, changes their status and deletes them.
//
// The server URL includes any API base path, for example
// http://localhost:8080/api when the server runs with API_BASE_PATH=/api.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/sumire/bugs/internal/client"
	"github.com/sumire/bugs/internal/logging"
	"github.com/sumire/bugs/internal/tui"
)

const defaultServer = "http://localhost:8080"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var server string
	var logOutput string
	var logLevel string

	flagSet := pflag.NewFlagSet("bugs", pflag.ContinueOnError)
	flagSet.StringVarP(&server, "server", "s", envOr("BUGS_SERVER", defaultServer), "bug tracker API URL, including any base path")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")
	flagSet.StringVar(&logLevel, "log-level", "info", "log level for --log-output (debug, info, warn, error)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	// The terminal belongs to the TUI, so logs go to a file or nowhere.
	logger := slog.New(slog.DiscardHandler)
	if logOutput != "" {
		file, err := os.OpenFile(logOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log output: %w", err)
		}
		defer file.Close()
		logger = logging.New(file, logging.Options{Level: logLevel, Production: true})
	}

	api := client.New(server, nil)
	logger.Info("starting bug tracker client", "server", server)

	program := tea.NewProgram(tui.NewModel(api, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `bugs: interactive terminal client for the bug tracker.

Connects to the bug tracker REST API (default %s, or $BUGS_SERVER)
and shows reported bugs newest first.

Usage:
  bugs [flags]

Flags:
`, defaultServer)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
