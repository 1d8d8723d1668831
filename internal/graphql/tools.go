package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tosteiner/thoth/internal/safety"
	"github.com/tosteiner/thoth/internal/tools"
)

const (
	toolNameQuery       = "thoth_query"
	toolNameListQueries = "thoth_list_queries"
)

// QueryTools returns the tool registrations for running registered queries
// by name: "thoth_query" executes one query and "thoth_list_queries"
// describes every registered query.
func QueryTools(reg *Registry, b *Builder, audit *safety.AuditLogger) []tools.Registration {
	return []tools.Registration{
		toolQuery(reg, b, audit),
		toolListQueries(reg, audit),
	}
}

// toolQuery constructs the thoth_query Registration.
func toolQuery(reg *Registry, b *Builder, audit *safety.AuditLogger) tools.Registration {
	tool := mcp.NewTool(toolNameQuery,
		mcp.WithDescription("Run a registered Thoth query by name. Use thoth_list_queries to see the available names and their variables."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The registered query name."),
		),
		mcp.WithString("variables",
			mcp.Description("Optional JSON object string of variables to pass with the query."),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		name := req.GetString("name", "")
		variablesStr := req.GetString("variables", "")

		params := map[string]any{
			"name":      name,
			"variables": variablesStr,
		}

		var raw json.RawMessage
		if variablesStr != "" {
			if !json.Valid([]byte(variablesStr)) {
				err := errors.New("parse variables JSON: invalid JSON")
				tools.LogAudit(audit, toolNameQuery, params, err, start)
				return tools.ErrorResult(err.Error()), nil
			}
			raw = json.RawMessage(variablesStr)
		}

		data, err := reg.Execute(ctx, b, name, raw)
		if err != nil {
			tools.LogAudit(audit, toolNameQuery, params, err, start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolNameQuery, params, nil, start)
		return tools.JSONResult(data), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

// queryInfo describes one registered query for thoth_list_queries.
type queryInfo struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Variables []string `json:"variables"`
}

// toolListQueries constructs the thoth_list_queries Registration.
func toolListQueries(reg *Registry, audit *safety.AuditLogger) tools.Registration {
	tool := mcp.NewTool(toolNameListQueries,
		mcp.WithDescription("List every registered Thoth query with its operation type and declared variables."),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		names := reg.Names()
		infos := make([]queryInfo, 0, len(names))
		for _, name := range names {
			e, ok := reg.Lookup(name)
			if !ok {
				continue
			}
			infos = append(infos, queryInfo{
				Name:      e.Name(),
				Type:      e.OperationType(),
				Variables: e.VariableNames(),
			})
		}

		tools.LogAudit(audit, toolNameListQueries, map[string]any{}, nil, start)
		return tools.JSONResult(infos), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}
