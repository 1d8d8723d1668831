package publisher

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tosteiner/thoth/internal/safety"
	"github.com/tosteiner/thoth/internal/tools"
)

const toolNameList = "publisher_list"

// PublisherTools returns the tool registrations for publisher lookups.
func PublisherTools(mgr PublisherManager, audit *safety.AuditLogger) []tools.Registration {
	return []tools.Registration{
		publisherList(mgr, audit),
	}
}

// publisherList constructs the publisher_list Registration. The result
// carries the matching page and the total count for the filter.
func publisherList(mgr PublisherManager, audit *safety.AuditLogger) tools.Registration {
	tool := mcp.NewTool(toolNameList,
		mcp.WithDescription("List publishers, with the total number matching the filter."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of publishers to return.")),
		mcp.WithNumber("offset", mcp.Description("Number of publishers to skip.")),
		mcp.WithString("filter", mcp.Description("Free-text filter on publisher name.")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		vars := ListVariables{
			Limit:  req.GetInt("limit", 0),
			Offset: req.GetInt("offset", 0),
			Filter: req.GetString("filter", ""),
		}
		params := map[string]any{
			"limit":  vars.Limit,
			"offset": vars.Offset,
			"filter": vars.Filter,
		}

		pubs, err := mgr.List(ctx, vars)
		if err != nil {
			tools.LogAudit(audit, toolNameList, params, err, start)
			return tools.ErrorResult(err.Error()), nil
		}
		total, err := mgr.Count(ctx, vars.Filter)
		if err != nil {
			tools.LogAudit(audit, toolNameList, params, err, start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolNameList, params, nil, start)
		return tools.JSONResult(map[string]any{
			"publishers": pubs,
			"total":      total,
		}), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}
