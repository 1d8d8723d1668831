package work

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tosteiner/thoth/internal/safety"
	"github.com/tosteiner/thoth/internal/tools"
)

const (
	toolNameList  = "work_list"
	toolNameGet   = "work_get"
	toolNameCount = "work_count"
	toolNameTypes = "work_types"
)

// WorkTools returns the tool registrations for work lookups. All tools are
// read-only.
func WorkTools(mgr WorkManager, audit *safety.AuditLogger) []tools.Registration {
	return []tools.Registration{
		workList(mgr, audit),
		workGet(mgr, audit),
		workCount(mgr, audit),
		workTypes(mgr, audit),
	}
}

// workList constructs the work_list Registration.
func workList(mgr WorkManager, audit *safety.AuditLogger) tools.Registration {
	tool := mcp.NewTool(toolNameList,
		mcp.WithDescription("List works with their imprint, publisher and contributors."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of works to return.")),
		mcp.WithNumber("offset", mcp.Description("Number of works to skip.")),
		mcp.WithString("filter", mcp.Description("Free-text filter on title, DOI and other fields.")),
		mcp.WithString("publishers", mcp.Description("Comma-separated publisher ids to restrict the listing to.")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		vars := ListVariables{
			Limit:      req.GetInt("limit", 0),
			Offset:     req.GetInt("offset", 0),
			Filter:     req.GetString("filter", ""),
			Publishers: tools.SplitIDs(req.GetString("publishers", "")),
		}
		params := map[string]any{
			"limit":      vars.Limit,
			"offset":     vars.Offset,
			"filter":     vars.Filter,
			"publishers": vars.Publishers,
		}

		works, err := mgr.List(ctx, vars)
		if err != nil {
			tools.LogAudit(audit, toolNameList, params, err, start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolNameList, params, nil, start)
		return tools.JSONResult(works), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

// workGet constructs the work_get Registration.
func workGet(mgr WorkManager, audit *safety.AuditLogger) tools.Registration {
	tool := mcp.NewTool(toolNameGet,
		mcp.WithDescription("Fetch a single work by its id."),
		mcp.WithString("work_id",
			mcp.Required(),
			mcp.Description("The work UUID."),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		workID := req.GetString("work_id", "")
		params := map[string]any{"work_id": workID}

		w, err := mgr.Get(ctx, workID)
		if err != nil {
			tools.LogAudit(audit, toolNameGet, params, err, start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolNameGet, params, nil, start)
		return tools.JSONResult(w), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

// workCount constructs the work_count Registration.
func workCount(mgr WorkManager, audit *safety.AuditLogger) tools.Registration {
	tool := mcp.NewTool(toolNameCount,
		mcp.WithDescription("Count works matching an optional filter."),
		mcp.WithString("filter", mcp.Description("Free-text filter on title, DOI and other fields.")),
		mcp.WithString("publishers", mcp.Description("Comma-separated publisher ids.")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		vars := CountVariables{
			Filter:     req.GetString("filter", ""),
			Publishers: tools.SplitIDs(req.GetString("publishers", "")),
		}
		params := map[string]any{"filter": vars.Filter, "publishers": vars.Publishers}

		n, err := mgr.Count(ctx, vars)
		if err != nil {
			tools.LogAudit(audit, toolNameCount, params, err, start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolNameCount, params, nil, start)
		return tools.JSONResult(map[string]int{"count": n}), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

// workTypes constructs the work_types Registration.
func workTypes(mgr WorkManager, audit *safety.AuditLogger) tools.Registration {
	tool := mcp.NewTool(toolNameTypes,
		mcp.WithDescription("List every work type (e.g. MONOGRAPH, EDITED_BOOK)."),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		params := map[string]any{}

		types, err := mgr.Types(ctx)
		if err != nil {
			tools.LogAudit(audit, toolNameTypes, params, err, start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolNameTypes, params, nil, start)
		return tools.JSONResult(types), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}
