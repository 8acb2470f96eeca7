// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/speedreport/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// sectionArgs maps tool arguments to report sections, in report order.
var sectionArgs = []struct{ name, description string }{
	{"per_worker", "Average speed per worker and process."},
	{"per_process", "Average speed per process."},
	{"deviation", "Worker average minus process average, absolute and in percent."},
	{"stddev", "Sample standard deviation per process."},
	{"best", "Fastest workers overall and per process."},
	{"worst", "Slowest workers per process."},
	{"all_time", "Every measurement per process, fastest first."},
	{"counts", "Number of measurements per worker and process."},
}

// NewMCPServer initializes and configures the speedreport MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Speedreport Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: generate_report ---
	reportOpts := []mcp.ToolOption{
		mcp.WithDescription("Generate the worker productivity report from the stored measurements."),
		mcp.WithBoolean("all", mcp.Description("Enable every section.")),
		mcp.WithBoolean("roster_only", mcp.Description("Restrict the report to workers on the roster.")),
		mcp.WithString("format", mcp.Description("Output format. Defaults to 'json'."), mcp.Enum(reportFormats...)),
		mcp.WithNumber("precision", mcp.Description("Decimal precision for numeric columns.")),
	}
	for _, arg := range sectionArgs {
		reportOpts = append(reportOpts, mcp.WithBoolean(arg.name, mcp.Description(arg.description)))
	}
	s.AddTool(mcp.NewTool("generate_report", reportOpts...), h.handleGenerateReport)

	// --- 2. Tool: dataset_summary ---
	s.AddTool(mcp.NewTool("dataset_summary",
		mcp.WithDescription("Summarize the stored measurements: record count, workers, processes and speed range."),
	), h.handleDatasetSummary)

	// --- 3. Tool: list_roster ---
	s.AddTool(mcp.NewTool("list_roster",
		mcp.WithDescription("List the workers on the roster."),
	), h.handleListRoster)

	return s
}

// StartMCPServer starts the speedreport MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
