package tools_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tosteiner/thoth/internal/safety"
	"github.com/tosteiner/thoth/internal/tools"
)

// ---------------------------------------------------------------------------
// Test helper: extract text from a *mcp.CallToolResult
// ---------------------------------------------------------------------------

// resultText extracts the text string from the first Content element of a
// CallToolResult. It fails the test if the result is nil, has no content, or
// the first element is not a TextContent.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("CallToolResult is nil")
	}
	if len(result.Content) == 0 {
		t.Fatal("CallToolResult.Content is empty")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Content[0] is %T, want mcp.TextContent", result.Content[0])
	}
	return tc.Text
}

// ---------------------------------------------------------------------------
// Tests for JSONResult
// ---------------------------------------------------------------------------

func Test_JSONResult_Cases(t *testing.T) {
	type simpleStruct struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	tests := []struct {
		name     string
		input    any
		validate func(t *testing.T, text string)
	}{
		{
			name:  "simple struct produces valid indented JSON",
			input: simpleStruct{Name: "test", Count: 42},
			validate: func(t *testing.T, text string) {
				t.Helper()

				// Must be valid JSON.
				var parsed map[string]any
				if err := json.Unmarshal([]byte(text), &parsed); err != nil {
					t.Fatalf("result is not valid JSON: %v\ntext: %s", err, text)
				}

				// Verify fields.
				if parsed["name"] != "test" {
					t.Errorf("name = %v, want %q", parsed["name"], "test")
				}
				// json.Unmarshal decodes numbers as float64.
				if parsed["count"] != float64(42) {
					t.Errorf("count = %v, want 42", parsed["count"])
				}

				// Verify indentation (2-space indent).
				if !strings.Contains(text, "  \"name\"") {
					t.Errorf("expected 2-space indented JSON, got:\n%s", text)
				}
			},
		},
		{
			name:  "nil input produces null",
			input: nil,
			validate: func(t *testing.T, text string) {
				t.Helper()
				if strings.TrimSpace(text) != "null" {
					t.Errorf("text = %q, want %q", text, "null")
				}
			},
		},
		{
			name:  "empty map produces empty JSON object",
			input: map[string]any{},
			validate: func(t *testing.T, text string) {
				t.Helper()
				if strings.TrimSpace(text) != "{}" {
					t.Errorf("text = %q, want %q", text, "{}")
				}
			},
		},
		{
			name:  "unmarshalable value returns error text",
			input: make(chan int),
			validate: func(t *testing.T, text string) {
				t.Helper()
				if !strings.Contains(text, "error marshaling result:") {
					t.Errorf("expected error prefix in text, got: %q", text)
				}
			},
		},
		{
			name:  "slice of strings produces JSON array",
			input: []string{"a", "b", "c"},
			validate: func(t *testing.T, text string) {
				t.Helper()
				var parsed []string
				if err := json.Unmarshal([]byte(text), &parsed); err != nil {
					t.Fatalf("result is not valid JSON array: %v", err)
				}
				if len(parsed) != 3 {
					t.Errorf("len = %d, want 3", len(parsed))
				}
			},
		},
		{
			name:  "nested struct produces indented JSON",
			input: struct{ Inner struct{ Val int } }{Inner: struct{ Val int }{Val: 7}},
			validate: func(t *testing.T, text string) {
				t.Helper()
				if !strings.Contains(text, "\n") {
					t.Errorf("expected multi-line indented JSON, got: %q", text)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tools.JSONResult(tt.input)
			text := resultText(t, result)
			tt.validate(t, text)
		})
	}
}

func Test_JSONResult_ReturnsNonNil(t *testing.T) {
	// Even on marshal error the result should never be nil.
	result := tools.JSONResult(make(chan int))
	if result == nil {
		t.Fatal("JSONResult returned nil for unmarshalable input")
	}
}

// ---------------------------------------------------------------------------
// Tests for ErrorResult
// ---------------------------------------------------------------------------

func Test_ErrorResult_Cases(t *testing.T) {
	tests := []struct {
		name    string
		msg     string
		wantTxt string
	}{
		{
			name:    "simple error message",
			msg:     "work not found",
			wantTxt: "error: work not found",
		},
		{
			name:    "empty message",
			msg:     "",
			wantTxt: "error: ",
		},
		{
			name:    "message with special characters",
			msg:     "workId=\"abc\" not found: timeout after 30s",
			wantTxt: "error: workId=\"abc\" not found: timeout after 30s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tools.ErrorResult(tt.msg)
			text := resultText(t, result)
			if text != tt.wantTxt {
				t.Errorf("ErrorResult(%q) text = %q, want %q", tt.msg, text, tt.wantTxt)
			}
		})
	}
}

func Test_ErrorResult_ReturnsNonNil(t *testing.T) {
	result := tools.ErrorResult("")
	if result == nil {
		t.Fatal("ErrorResult returned nil")
	}
}

// ---------------------------------------------------------------------------
// Tests for LogAudit
// ---------------------------------------------------------------------------

func Test_LogAudit_NilLogger_NoPanic(t *testing.T) {
	tools.LogAudit(nil, "work_list", map[string]any{"limit": 5}, nil, time.Now())
}

func Test_LogAudit_ValidLogger_Cases(t *testing.T) {
	tests := []struct {
		name        string
		toolName    string
		params      map[string]any
		err         error
		wantOutcome string
		wantError   string
	}{
		{
			name:        "successful call",
			toolName:    "work_list",
			params:      map[string]any{"limit": 5, "filter": "open access"},
			wantOutcome: safety.OutcomeOK,
		},
		{
			name:        "failed call records the error",
			toolName:    "thoth_query",
			params:      map[string]any{"name": "works"},
			err:         errors.New("graphql: protocol: Invalid value"),
			wantOutcome: safety.OutcomeError,
			wantError:   "graphql: protocol: Invalid value",
		},
		{
			name:        "nil params are accepted",
			toolName:    "language_codes",
			params:      nil,
			wantOutcome: safety.OutcomeOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			audit := safety.NewAuditLogger(&buf)

			tools.LogAudit(audit, tt.toolName, tt.params, tt.err, time.Now())

			var parsed map[string]any
			if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &parsed); err != nil {
				t.Fatalf("audit output is not valid JSON: %v\noutput: %s", err, buf.String())
			}
			if parsed["tool"] != tt.toolName {
				t.Errorf("tool = %v, want %q", parsed["tool"], tt.toolName)
			}
			if parsed["outcome"] != tt.wantOutcome {
				t.Errorf("outcome = %v, want %q", parsed["outcome"], tt.wantOutcome)
			}
			if tt.wantError != "" && parsed["error"] != tt.wantError {
				t.Errorf("error = %v, want %q", parsed["error"], tt.wantError)
			}
			if tt.params != nil {
				params, ok := parsed["params"].(map[string]any)
				if !ok {
					t.Fatalf("params is %T, want map[string]any", parsed["params"])
				}
				if len(params) != len(tt.params) {
					t.Errorf("params has %d keys, want %d", len(params), len(tt.params))
				}
			}
		})
	}
}

func Test_LogAudit_DurationAndTimestamp(t *testing.T) {
	var buf bytes.Buffer
	audit := safety.NewAuditLogger(&buf)

	start := time.Now().Add(-10 * time.Millisecond)
	tools.LogAudit(audit, "work_count", map[string]any{}, nil, start)

	var entry safety.AuditEntry
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("audit output is not valid JSON: %v", err)
	}
	if entry.Duration < 10*time.Millisecond {
		t.Errorf("duration = %v, want >= 10ms", entry.Duration)
	}
	if !entry.Timestamp.Equal(start) {
		t.Errorf("timestamp = %v, want %v", entry.Timestamp, start)
	}
}

// ---------------------------------------------------------------------------
// Tests for SplitList and SplitIDs
// ---------------------------------------------------------------------------

func Test_SplitList_Cases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "only separators", input: " , ,", want: nil},
		{name: "single", input: "eng", want: []string{"ENG"}},
		{name: "trims and upper-cases", input: " eng, Spa ,fra", want: []string{"ENG", "SPA", "FRA"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tools.SplitList(tt.input)); diff != "" {
				t.Errorf("SplitList(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func Test_SplitIDs_PreservesCase(t *testing.T) {
	got := tools.SplitIDs(" 9C41b5Fb-1d0b-4f0e-a4b6-5a2c4c0d1d2e ,,abc ")
	want := []string{"9C41b5Fb-1d0b-4f0e-a4b6-5a2c4c0d1d2e", "abc"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitIDs mismatch (-want +got):\n%s", diff)
	}
	if tools.SplitIDs("") != nil {
		t.Error("SplitIDs(\"\") should return nil")
	}
}

// ---------------------------------------------------------------------------
// Tests for RegisterAll
// ---------------------------------------------------------------------------

func Test_RegisterAll_ReturnsNamesInOrder(t *testing.T) {
	s := server.NewMCPServer("test", "0.0.0", server.WithToolCapabilities(false))
	noop := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return tools.JSONResult(nil), nil
	}

	regs := []tools.Registration{
		{Tool: mcp.NewTool("b_tool"), Handler: noop},
		{Tool: mcp.NewTool("a_tool"), Handler: noop},
	}

	names := tools.RegisterAll(s, regs)
	if diff := cmp.Diff([]string{"b_tool", "a_tool"}, names); diff != "" {
		t.Errorf("RegisterAll names mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// Benchmark tests
// ---------------------------------------------------------------------------

func Benchmark_JSONResult_SimpleStruct(b *testing.B) {
	input := struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}{Name: "bench", Count: 100}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tools.JSONResult(input)
	}
}

func Benchmark_LogAudit(b *testing.B) {
	var buf bytes.Buffer
	audit := safety.NewAuditLogger(&buf)
	params := map[string]any{"work_id": "abc123"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		tools.LogAudit(audit, "work_get", params, nil, time.Now())
	}
}
