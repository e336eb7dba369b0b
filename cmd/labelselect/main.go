package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vango-dev/labelselect/internal/config"
	"github.com/vango-dev/labelselect/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "labelselect",
		Short: "Render and serve label select controls",
		Long: `labelselect turns <label> elements into dropdown selection controls.

A page file (labelselect.yaml or labelselect.json) lists the controls and
their configuration. Render it to static HTML, or serve it live with
clicks and calls forwarded over WebSocket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLevel(logLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		renderCmd(),
		serveCmd(),
		versionCmd(),
	)
	return rootCmd
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, errors.New("LS030").
			WithDetailf("--log-level %q", s).
			WithSuggestion("Use debug, info, warn or error")
	}
	return level, nil
}

// loadPage loads path, or the page file in the working directory when path
// is empty.
func loadPage(path string) (*config.Config, error) {
	if path == "" {
		found, err := config.Find(".")
		if err != nil {
			return nil, err
		}
		path = found
	}
	return config.Load(path)
}

// success prints a success message.
func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// parseSelections parses repeated host=id flags.
func parseSelections(values []string) ([][2]string, error) {
	out := make([][2]string, 0, len(values))
	for _, v := range values {
		host, id, ok := strings.Cut(v, "=")
		if !ok || host == "" || id == "" {
			return nil, errors.New("LS030").
				WithDetailf("--select %q", v).
				WithSuggestion("Use --select host=optionID")
		}
		out = append(out, [2]string{host, id})
	}
	return out, nil
}
