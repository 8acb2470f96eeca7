package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/huangsam/speedreport/core"
	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/internal/outwriter"
	"github.com/huangsam/speedreport/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// reportFormats are the text formats a tool result can carry.
var reportFormats = []string{
	string(schema.JSONOut),
	string(schema.YAMLOut),
	string(schema.MarkdownOut),
	string(schema.CSVOut),
	string(schema.TextOut),
}

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) store() (contract.RecordStore, error) {
	if h.mgr == nil {
		return nil, fmt.Errorf("record store is not initialized")
	}
	store := h.mgr.GetRecordStore()
	if store == nil {
		return nil, fmt.Errorf("record store is not initialized")
	}
	return store, nil
}

func (h *toolHandler) handleGenerateReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.UseColors = false
	cfg.Output = schema.JSONOut
	if f := request.GetString("format", ""); f != "" {
		if !slices.Contains(reportFormats, f) {
			return mcp.NewToolResultError(fmt.Sprintf("invalid format '%s'", f)), nil
		}
		cfg.Output = schema.OutputMode(f)
	}
	if p := request.GetInt("precision", -1); p >= 0 {
		if p > contract.MaxPrecision {
			return mcp.NewToolResultError(fmt.Sprintf("precision must be between 0 and %d", contract.MaxPrecision)), nil
		}
		cfg.Precision = p
	}

	req := requestFromArgs(request)
	if !req.Any() {
		return mcp.NewToolResultError("select at least one section or set 'all'"), nil
	}

	store, err := h.store()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	report, err := core.GenerateReport(ctx, store, req, cfg.Columns)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}
	report.Title = cfg.Title

	var buf bytes.Buffer
	if err := outwriter.RenderReport(&buf, report, cfg); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rendering failed: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// requestFromArgs reads the section switches of a generate_report call.
func requestFromArgs(request mcp.CallToolRequest) schema.ReportRequest {
	if request.GetBool("all", false) {
		req := schema.AllSections()
		req.RosterOnly = request.GetBool("roster_only", false)
		return req
	}
	return schema.ReportRequest{
		PerWorker:    request.GetBool("per_worker", false),
		PerProcess:   request.GetBool("per_process", false),
		Deviation:    request.GetBool("deviation", false),
		StdDev:       request.GetBool("stddev", false),
		Best:         request.GetBool("best", false),
		Worst:        request.GetBool("worst", false),
		AllTimeBest:  request.GetBool("all_time", false),
		RecordCounts: request.GetBool("counts", false),
		RosterOnly:   request.GetBool("roster_only", false),
	}
}

func (h *toolHandler) handleDatasetSummary(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, err := h.store()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	summary, err := core.Summary(ctx, store, h.baseCfg.Columns)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListRoster(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, err := h.store()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	names, err := core.ListRoster(ctx, store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("roster failed: %v", err)), nil
	}
	if names == nil {
		names = []string{}
	}

	jsonData, _ := json.MarshalIndent(names, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
