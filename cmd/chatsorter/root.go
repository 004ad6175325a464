package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/leofalp/chatsorter/core/client"
	"github.com/leofalp/chatsorter/providers/observability"
	"github.com/leofalp/chatsorter/providers/observability/otelobs"
	"github.com/leofalp/chatsorter/providers/observability/slogobs"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// app holds the state shared by every subcommand once the root command has
// resolved its configuration.
type app struct {
	flags      settings
	configPath string
	trace      bool
	getenv     func(string) string

	client         *client.Client
	observer       observability.Provider
	tracerProvider *sdktrace.TracerProvider
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithEnv(os.Getenv)
}

func newRootCmdWithEnv(getenv func(string) string) *cobra.Command {
	a := &app{getenv: getenv}

	root := &cobra.Command{
		Use:   "chatsorter",
		Short: "Client for the ChatSorter conversation memory API",
		Long: `chatsorter stores chat messages in the ChatSorter memory service,
searches them, and builds prompts enriched with the memories relevant
to a new message.`,
		Version:       client.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.shutdown(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default $HOME/"+defaultConfigName+")")
	root.PersistentFlags().StringVar(&a.flags.APIKey, "api-key", "", "API key (env "+envAPIKey+")")
	root.PersistentFlags().StringVar(&a.flags.BaseURL, "base-url", "", "Service URL (env "+envBaseURL+", default "+client.DefaultBaseURL+")")
	root.PersistentFlags().StringVar(&a.flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.flags.LogFormat, "log-format", "", "Log format: text, json")
	root.PersistentFlags().BoolVar(&a.trace, "trace", false, "Write OpenTelemetry spans as JSON to stderr")

	root.AddCommand(
		newAddCmd(a),
		newSearchCmd(a),
		newContextCmd(a),
		newPromptCmd(a),
		newStatsCmd(a),
		newMemoryCmd(a),
		newHealthCmd(a),
		newToolsCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	path, explicit := a.configPath, cmd.Flags().Changed("config")
	if path == "" {
		path = defaultConfigPath()
	}
	file, err := loadConfigFile(path, explicit)
	if err != nil {
		return err
	}
	s := resolveSettings(a.flags, a.getenv, file)

	logOpts := []slogobs.Option{slogobs.WithOutput(cmd.ErrOrStderr())}
	if s.LogLevel != "" {
		level, ok := slogobs.ParseLevel(s.LogLevel)
		if !ok {
			return fmt.Errorf("unknown log level %q", s.LogLevel)
		}
		logOpts = append(logOpts, slogobs.WithLevel(level))
	}
	if s.LogFormat != "" {
		logOpts = append(logOpts, slogobs.WithFormat(slogobs.ParseFormat(s.LogFormat)))
	}

	a.observer = slogobs.New(logOpts...)
	if a.trace {
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(cmd.ErrOrStderr()),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return fmt.Errorf("creating trace exporter: %w", err)
		}
		a.tracerProvider = sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		a.observer = otelobs.New(
			otelobs.WithTracerProvider(a.tracerProvider),
			otelobs.WithFallback(a.observer),
		)
	}

	clientOpts := []client.Option{client.WithObserver(a.observer)}
	if s.BaseURL != "" {
		clientOpts = append(clientOpts, client.WithBaseURL(s.BaseURL))
	}

	a.client, err = client.New(s.APIKey, clientOpts...)
	if errors.Is(err, client.ErrMissingAPIKey) {
		return fmt.Errorf("%w: pass --api-key, set %s or add api_key to the config file", err, envAPIKey)
	}
	return err
}

// shutdown flushes the tracer provider installed by --trace.
func (a *app) shutdown(ctx context.Context) error {
	if a.tracerProvider == nil {
		return nil
	}
	if err := a.tracerProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("flushing traces: %w", err)
	}
	return nil
}

// requestContext returns the command context carrying the observer, so that tool
// executions are traced too.
func (a *app) requestContext(cmd *cobra.Command) context.Context {
	return observability.ContextWithObserver(cmd.Context(), a.observer)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
