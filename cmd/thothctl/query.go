package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tosteiner/thoth/internal/fetch"
	"github.com/tosteiner/thoth/internal/graphql"
)

func newQueriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "queries",
		Short: "List registered queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTYPE\tVARIABLES")
			for _, name := range a.registry.Names() {
				e, ok := a.registry.Lookup(name)
				if !ok {
					continue
				}
				vars := strings.Join(e.VariableNames(), ",")
				if vars == "" {
					vars = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name(), e.OperationType(), vars)
			}
			return tw.Flush()
		},
	}
}

func newQueryCmd(a *app) *cobra.Command {
	var vars string

	cmd := &cobra.Command{
		Use:   "query <name>",
		Short: "Run a registered query and print its data as JSON",
		Long: `Run a registered query by name. Variables are given as a JSON object.

Examples:
  thothctl query work_types
  thothctl query works --vars '{"limit": 5, "filter": "open access"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw json.RawMessage
			if vars != "" {
				if !json.Valid([]byte(vars)) {
					return errors.New("--vars is not valid JSON")
				}
				raw = json.RawMessage(vars)
			}

			transport, err := a.newTransport(a.cfg.GraphQL)
			if err != nil {
				return err
			}
			b := graphql.NewBuilder(transport, graphql.WithLogger(a.logger))

			ctx := cmd.Context()
			sink := fetch.SinkFunc[any](func(act fetch.Action[any]) {
				a.logger.DebugContext(ctx, "query action",
					"query", act.Query,
					"call_id", act.CallID.String(),
					"status", act.Status.String(),
				)
			})
			result, err := fetch.RunQuery(ctx, b, a.registry, args[0], raw, sink)
			if err != nil {
				return err
			}
			if result.Err != nil && !result.Err.Partial {
				return result.Err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(result.Data); err != nil {
				return err
			}
			if result.Err != nil {
				return result.Err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&vars, "vars", "", "query variables as a JSON object")
	return cmd
}
