// Package mcp provides Model Context Protocol server functionality.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/helixml/primes/application/service"
	"github.com/helixml/primes/domain/prime"
)

// maxExactNumber is the largest integer a JSON number carries without loss.
const maxExactNumber = 1 << 53

// Searcher provides prime search operations for MCP tools.
type Searcher interface {
	Run(ctx context.Context, start, end uint64) (service.Report, error)
	IsPrime(ctx context.Context, n uint64) (bool, error)
}

// Server wraps the MCP server with the prime search tools.
type Server struct {
	mcpServer *server.MCPServer
	searcher  Searcher
	version   string
	logger    *slog.Logger
}

// NewServer creates a new MCP server.
func NewServer(searcher Searcher, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		searcher: searcher,
		version:  version,
		logger:   logger,
	}

	mcpServer := server.NewMCPServer(
		"primes",
		version,
		server.WithToolCapabilities(true),
	)
	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	largestTool := mcp.NewTool("largest_prime",
		mcp.WithDescription("Find the largest prime number in the inclusive interval [start, end]"),
		mcp.WithNumber("start",
			mcp.Required(),
			mcp.Description("Lower bound of the interval (non-negative integer)"),
		),
		mcp.WithNumber("end",
			mcp.Description("Upper bound of the interval (default: start)"),
		),
	)
	mcpServer.AddTool(largestTool, s.handleLargestPrime)

	isPrimeTool := mcp.NewTool("is_prime",
		mcp.WithDescription("Check whether a number is prime"),
		mcp.WithNumber("number",
			mcp.Required(),
			mcp.Description("The non-negative integer to test"),
		),
	)
	mcpServer.AddTool(isPrimeTool, s.handleIsPrime)

	versionTool := mcp.NewTool("get_version",
		mcp.WithDescription("Get the version of the primes server"),
	)
	mcpServer.AddTool(versionTool, s.handleGetVersion)
}

func (s *Server) handleLargestPrime(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireFloat("start")
	if err != nil {
		return mcp.NewToolResultError("start is required"), nil
	}
	start, err := toUint(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid start: %v", err)), nil
	}
	end, err := toUint(request.GetFloat("end", raw))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid end: %v", err)), nil
	}

	report, err := s.searcher.Run(ctx, start, end)
	if err != nil {
		if errors.Is(err, prime.ErrInvalidInterval) || errors.Is(err, service.ErrIntervalTooLarge) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		s.logger.Error("largest prime search failed", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	return jsonResult(report)
}

func (s *Server) handleIsPrime(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireFloat("number")
	if err != nil {
		return mcp.NewToolResultError("number is required"), nil
	}
	n, err := toUint(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid number: %v", err)), nil
	}

	ok, err := s.searcher.IsPrime(ctx, n)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(struct {
		Number uint64 `json:"number"`
		Prime  bool   `json:"prime"`
	}{Number: n, Prime: ok})
}

func (s *Server) handleGetVersion(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.version), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func toUint(f float64) (uint64, error) {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return 0, fmt.Errorf("%v is not a number", f)
	case f < 0:
		return 0, fmt.Errorf("%v is negative", f)
	case f != math.Trunc(f):
		return 0, fmt.Errorf("%v is not an integer", f)
	case f > maxExactNumber:
		return 0, fmt.Errorf("%v exceeds %d", f, uint64(maxExactNumber))
	}
	return uint64(f), nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
