package db

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tosteiner/thoth/internal/safety"
	"github.com/tosteiner/thoth/internal/tools"
)

const toolNameHealth = "db_health"

// Pinger is the part of Pool used by the health tool.
type Pinger interface {
	Ping(ctx context.Context) error
	Stats() Stats
}

// Compile-time interface check.
var _ Pinger = (*Pool)(nil)

// Health is the result of the db_health tool.
type Health struct {
	Healthy   bool   `json:"healthy"`
	Error     string `json:"error,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
	Stats     Stats  `json:"stats"`
}

// HealthTools returns the db_health tool registration.
func HealthTools(p Pinger, audit *safety.AuditLogger) []tools.Registration {
	if p == nil {
		panic("db pinger must not be nil")
	}
	return []tools.Registration{dbHealth(p, audit)}
}

// dbHealth constructs the db_health Registration. A failed ping is reported
// in the result rather than as a tool error.
func dbHealth(p Pinger, audit *safety.AuditLogger) tools.Registration {
	tool := mcp.NewTool(toolNameHealth,
		mcp.WithDescription("Ping the database and report connection pool usage."),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		params := map[string]any{}

		err := p.Ping(ctx)
		h := Health{
			Healthy:   err == nil,
			LatencyMS: time.Since(start).Milliseconds(),
			Stats:     p.Stats(),
		}
		if err != nil {
			h.Error = err.Error()
		}

		tools.LogAudit(audit, toolNameHealth, params, err, start)
		return tools.JSONResult(h), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}
