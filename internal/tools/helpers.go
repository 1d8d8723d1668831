// Package tools provides shared helper utilities for MCP tool handlers.
package tools

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tosteiner/thoth/internal/safety"
)

// JSONResult marshals v to indented JSON and returns an mcp.CallToolResult.
func JSONResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error marshaling result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// ErrorResult returns an mcp.CallToolResult that describes an error condition.
func ErrorResult(msg string) *mcp.CallToolResult {
	return mcp.NewToolResultText(fmt.Sprintf("error: %s", msg))
}

// LogAudit records a tool invocation in the audit log, silently ignoring a
// nil logger. A nil err records a successful call.
func LogAudit(audit *safety.AuditLogger, toolName string, params map[string]any, err error, start time.Time) {
	if audit == nil {
		return
	}
	entry := safety.AuditEntry{
		Timestamp: start,
		Tool:      toolName,
		Params:    params,
		Outcome:   safety.OutcomeOK,
		Duration:  time.Since(start),
	}
	if err != nil {
		entry.Outcome = safety.OutcomeError
		entry.Error = err.Error()
	}
	_ = audit.Log(entry)
}

// SplitList splits a comma-separated argument into trimmed, non-empty,
// upper-cased items. It returns nil for an empty string so that the
// corresponding variable is omitted.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.ToUpper(p))
		}
	}
	return out
}

// SplitIDs splits a comma-separated list of identifiers into trimmed,
// non-empty items, preserving case. It returns nil for an empty string.
func SplitIDs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
