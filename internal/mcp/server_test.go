package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/primes/application/service"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	engine := service.NewEngine[uint64](service.WithWorkers(4))
	search := service.NewSearch(engine, 0, nil, nil)
	return NewServer(search, "0.1.0-test", nil)
}

// sendMessage marshals a JSON-RPC request, sends it through HandleMessage,
// and returns the JSONRPCResponse.
func sendMessage(t *testing.T, srv *Server, method string, id int, params map[string]any) mcp.JSONRPCResponse {
	t.Helper()

	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		msg["params"] = params
	}

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	result := srv.MCPServer().HandleMessage(context.Background(), raw)
	resp, ok := result.(mcp.JSONRPCResponse)
	require.True(t, ok, "expected JSONRPCResponse, got %T: %+v", result, result)
	return resp
}

// resultJSON re-marshals the Result field through JSON into dst.
func resultJSON(t *testing.T, resp mcp.JSONRPCResponse, dst any) {
	t.Helper()
	b, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, dst))
}

type toolResult struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	IsError bool `json:"isError"`
}

func (r toolResult) text(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, r.Content, "no content in result")
	return r.Content[0].Text
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) toolResult {
	t.Helper()
	sendMessage(t, srv, "initialize", 1, initializeParams())
	resp := sendMessage(t, srv, "tools/call", 2, map[string]any{
		"name":      name,
		"arguments": args,
	})
	var result toolResult
	resultJSON(t, resp, &result)
	return result
}

func initializeParams() map[string]any {
	return map[string]any{
		"protocolVersion": "2025-06-18",
		"capabilities":    map[string]any{},
		"clientInfo": map[string]any{
			"name":    "test-client",
			"version": "0.0.1",
		},
	}
}

func TestServer_Initialize(t *testing.T) {
	srv := testServer(t)
	resp := sendMessage(t, srv, "initialize", 1, initializeParams())

	var result mcp.InitializeResult
	resultJSON(t, resp, &result)

	assert.Equal(t, "primes", result.ServerInfo.Name)
	assert.Equal(t, "0.1.0-test", result.ServerInfo.Version)
	assert.NotNil(t, result.Capabilities.Tools)
}

func TestServer_ListTools(t *testing.T) {
	srv := testServer(t)
	sendMessage(t, srv, "initialize", 1, initializeParams())

	resp := sendMessage(t, srv, "tools/list", 2, nil)

	var result mcp.ListToolsResult
	resultJSON(t, resp, &result)

	tools := map[string]mcp.Tool{}
	for _, tool := range result.Tools {
		tools[tool.Name] = tool
	}
	require.Len(t, tools, 3)
	require.Contains(t, tools, "largest_prime")
	require.Contains(t, tools, "is_prime")
	require.Contains(t, tools, "get_version")

	largest := tools["largest_prime"]
	assert.Contains(t, largest.InputSchema.Properties, "start")
	assert.Contains(t, largest.InputSchema.Properties, "end")
	assert.Contains(t, largest.InputSchema.Required, "start")
	assert.NotContains(t, largest.InputSchema.Required, "end")
}

func TestServer_LargestPrime(t *testing.T) {
	srv := testServer(t)

	result := callTool(t, srv, "largest_prime", map[string]any{"start": 20, "end": 40})
	require.False(t, result.IsError, result.text(t))

	var report service.Report
	require.NoError(t, json.Unmarshal([]byte(result.text(t)), &report))
	assert.True(t, report.Found)
	assert.Equal(t, uint64(37), report.Prime)
	assert.Equal(t, "Largest prime: 37", report.Message)
}

func TestServer_LargestPrime_EndDefaultsToStart(t *testing.T) {
	srv := testServer(t)

	result := callTool(t, srv, "largest_prime", map[string]any{"start": 217})
	require.False(t, result.IsError, result.text(t))

	var report service.Report
	require.NoError(t, json.Unmarshal([]byte(result.text(t)), &report))
	assert.False(t, report.Found)
	assert.Equal(t, "217 is not a prime", report.Message)
}

func TestServer_LargestPrime_InvalidInterval(t *testing.T) {
	srv := testServer(t)

	result := callTool(t, srv, "largest_prime", map[string]any{"start": 50, "end": 10})
	assert.True(t, result.IsError)
	assert.Contains(t, result.text(t), "start is greater than end")
}

func TestServer_LargestPrime_RejectsBadNumbers(t *testing.T) {
	srv := testServer(t)

	for _, args := range []map[string]any{
		{},
		{"start": -1},
		{"start": 2.5},
		{"start": 1, "end": 1e300},
	} {
		result := callTool(t, srv, "largest_prime", args)
		assert.True(t, result.IsError, "args=%v", args)
	}
}

func TestServer_IsPrime(t *testing.T) {
	srv := testServer(t)

	result := callTool(t, srv, "is_prime", map[string]any{"number": 7919})
	require.False(t, result.IsError, result.text(t))
	assert.JSONEq(t, `{"number":7919,"prime":true}`, result.text(t))

	result = callTool(t, srv, "is_prime", map[string]any{"number": 217})
	require.False(t, result.IsError, result.text(t))
	assert.JSONEq(t, `{"number":217,"prime":false}`, result.text(t))
}

func TestServer_LargestPrimeRejectsWideInterval(t *testing.T) {
	engine := service.NewEngine[uint64](service.WithWorkers(2))
	search := service.NewSearch(engine, 0, nil, nil).WithMaxInterval(1000)
	srv := NewServer(search, "0.1.0-test", nil)

	result := callTool(t, srv, "largest_prime", map[string]any{"start": 0, "end": 1000})
	require.False(t, result.IsError, result.text(t))

	result = callTool(t, srv, "largest_prime", map[string]any{"start": 0, "end": 1001})
	require.True(t, result.IsError)
	assert.Contains(t, result.text(t), "interval is too large: 1001 > 1000")
}

func TestServer_GetVersion(t *testing.T) {
	srv := testServer(t)

	result := callTool(t, srv, "get_version", map[string]any{})
	require.False(t, result.IsError)
	assert.Equal(t, "0.1.0-test", result.text(t))
}

func TestToUint(t *testing.T) {
	n, err := toUint(97)
	require.NoError(t, err)
	assert.Equal(t, uint64(97), n)

	_, err = toUint(-3)
	assert.Error(t, err)
	_, err = toUint(1.5)
	assert.Error(t, err)
	_, err = toUint(1 << 60)
	assert.Error(t, err)
}
