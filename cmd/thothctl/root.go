package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tosteiner/thoth/internal/config"
	"github.com/tosteiner/thoth/internal/graphql"
	"github.com/tosteiner/thoth/internal/logging"
	"github.com/tosteiner/thoth/internal/queries"
)

// app holds the dependencies shared by every command. Fields are replaced
// in tests.
type app struct {
	cfg          *config.Config
	logger       *slog.Logger
	registry     *graphql.Registry
	getenv       func(string) string
	newTransport func(config.GraphQLConfig) (graphql.Transport, error)
}

func newApp() *app {
	return &app{
		getenv: os.Getenv,
		newTransport: func(cfg config.GraphQLConfig) (graphql.Transport, error) {
			return graphql.NewHTTPTransport(cfg)
		},
	}
}

// newRootCmd builds the command tree. Configuration is loaded once, before
// any subcommand runs.
func newRootCmd(a *app) *cobra.Command {
	var (
		configPath string
		url        string
		logLevel   string
	)

	root := &cobra.Command{
		Use:           "thothctl",
		Short:         "Query the Thoth GraphQL API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}

			cfg := config.DefaultConfig()
			if configPath != "" {
				loaded, err := config.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			config.ApplyEnvOverrides(cfg)
			if url != "" {
				cfg.GraphQL.URL = url
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			a.cfg = cfg

			if a.logger == nil {
				a.logger = logging.New(cfg.Log, cmd.ErrOrStderr())
			}
			if a.registry == nil {
				reg, err := queries.NewRegistry()
				if err != nil {
					return err
				}
				a.registry = reg
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&url, "url", "", "GraphQL endpoint (overrides config and THOTH_GRAPHQL_URL)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newQueriesCmd(a),
		newQueryCmd(a),
		newDBCmd(a),
	)
	return root
}
