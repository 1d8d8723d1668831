package contributor

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tosteiner/thoth/internal/safety"
	"github.com/tosteiner/thoth/internal/tools"
)

const (
	toolNameList  = "contributor_list"
	toolNameTypes = "contribution_types"
)

// ContributorTools returns the tool registrations for contributor lookups.
func ContributorTools(mgr ContributorManager, audit *safety.AuditLogger) []tools.Registration {
	return []tools.Registration{
		contributorList(mgr, audit),
		contributionTypes(mgr, audit),
	}
}

// contributorList constructs the contributor_list Registration.
func contributorList(mgr ContributorManager, audit *safety.AuditLogger) tools.Registration {
	tool := mcp.NewTool(toolNameList,
		mcp.WithDescription("List contributors (authors, editors, translators...)."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of contributors to return.")),
		mcp.WithNumber("offset", mcp.Description("Number of contributors to skip.")),
		mcp.WithString("filter", mcp.Description("Free-text filter on name and ORCID.")),
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

		contributors, err := mgr.List(ctx, vars)
		if err != nil {
			tools.LogAudit(audit, toolNameList, params, err, start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolNameList, params, nil, start)
		return tools.JSONResult(contributors), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

// contributionTypes constructs the contribution_types Registration.
func contributionTypes(mgr ContributorManager, audit *safety.AuditLogger) tools.Registration {
	tool := mcp.NewTool(toolNameTypes,
		mcp.WithDescription("List every contribution type (e.g. AUTHOR, EDITOR)."),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		params := map[string]any{}

		types, err := mgr.ContributionTypes(ctx)
		if err != nil {
			tools.LogAudit(audit, toolNameTypes, params, err, start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolNameTypes, params, nil, start)
		return tools.JSONResult(types), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}
