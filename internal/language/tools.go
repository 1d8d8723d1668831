package language

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tosteiner/thoth/internal/safety"
	"github.com/tosteiner/thoth/internal/tools"
)

const (
	toolNameRelations = "language_relations"
	toolNameCodes     = "language_codes"
	toolNameList      = "language_list"
)

// LanguageTools returns the tool registrations for language lookups. All
// tools are read-only.
func LanguageTools(mgr LanguageManager, audit *safety.AuditLogger) []tools.Registration {
	return []tools.Registration{
		enumTool(toolNameRelations, "List every language relation (e.g. ORIGINAL, TRANSLATED_FROM).", mgr.Relations, audit),
		enumTool(toolNameCodes, "List every ISO 639 language code known to Thoth.", mgr.Codes, audit),
		languageList(mgr, audit),
	}
}

// enumTool constructs a parameterless tool returning a list of enum names.
func enumTool(name, description string, fetch func(context.Context) ([]string, error), audit *safety.AuditLogger) tools.Registration {
	tool := mcp.NewTool(name, mcp.WithDescription(description))

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		params := map[string]any{}

		names, err := fetch(ctx)
		if err != nil {
			tools.LogAudit(audit, name, params, err, start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, name, params, nil, start)
		return tools.JSONResult(names), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

// languageList constructs the language_list Registration.
func languageList(mgr LanguageManager, audit *safety.AuditLogger) tools.Registration {
	tool := mcp.NewTool(toolNameList,
		mcp.WithDescription("List languages attached to works, optionally filtered by code and relation."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of languages to return.")),
		mcp.WithNumber("offset", mcp.Description("Number of languages to skip.")),
		mcp.WithString("language_codes", mcp.Description("Comma-separated language codes, e.g. ENG,SPA.")),
		mcp.WithString("language_relation", mcp.Description("Language relation, e.g. ORIGINAL.")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		vars := ListVariables{
			Limit:            req.GetInt("limit", 0),
			Offset:           req.GetInt("offset", 0),
			LanguageCodes:    tools.SplitList(req.GetString("language_codes", "")),
			LanguageRelation: strings.ToUpper(req.GetString("language_relation", "")),
		}
		params := map[string]any{
			"limit":             vars.Limit,
			"offset":            vars.Offset,
			"language_codes":    vars.LanguageCodes,
			"language_relation": vars.LanguageRelation,
		}

		langs, err := mgr.List(ctx, vars)
		if err != nil {
			tools.LogAudit(audit, toolNameList, params, err, start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolNameList, params, nil, start)
		return tools.JSONResult(langs), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}
