package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/0muji4/jellyref/internal/config"
	"github.com/0muji4/jellyref/internal/lsp"
	"github.com/0muji4/jellyref/internal/navigator"
	"github.com/0muji4/jellyref/internal/workspace"

	"github.com/mark3labs/mcp-go/mcp"
)

// IncludeHandler は MCP リクエストを Navigator の呼び出しに変換する Adapter です。
type IncludeHandler struct {
	cfg config.Config
	log *slog.Logger
}

// NewIncludeHandler は IncludeHandler を生成します。
func NewIncludeHandler(cfg config.Config, log *slog.Logger) *IncludeHandler {
	if log == nil {
		log = slog.Default()
	}
	return &IncludeHandler{cfg: cfg, log: log}
}

// ListIncludes は list-includes ツール呼び出しを処理し、ページ内の include 参照を JSON で返します。
func (h *IncludeHandler) ListIncludes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	nav, filePath, errResult := h.open(req)
	if errResult != nil {
		return errResult, nil
	}

	links, err := nav.Links(filePath)
	if err != nil {
		h.log.Error("list includes failed", "file", filePath, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to list includes: %v", err)), nil
	}
	return jsonResult(links)
}

// FindDefinition は find-definition ツール呼び出しを処理します。line / character は 1 始まりです。
func (h *IncludeHandler) FindDefinition(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	nav, filePath, errResult := h.open(req)
	if errResult != nil {
		return errResult, nil
	}
	line, err := req.RequireInt("line")
	if err != nil || line < 1 {
		return mcp.NewToolResultError("line is required (1-based)"), nil
	}
	char, err := req.RequireInt("character")
	if err != nil || char < 1 {
		return mcp.NewToolResultError("character is required (1-based)"), nil
	}

	// 人間用の1始まりの位置を LSP の0始まりに変換
	pos := lsp.Position{Line: line - 1, Character: char - 1}
	loc, err := nav.Definition(filePath, pos)
	if err != nil {
		h.log.Error("find definition failed", "file", filePath, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to find definition: %v", err)), nil
	}
	if loc == nil {
		return mcp.NewToolResultText("no definition found"), nil
	}
	return jsonResult(loc)
}

func (h *IncludeHandler) open(req mcp.CallToolRequest) (*navigator.Navigator, string, *mcp.CallToolResult) {
	rawPath, err := req.RequireString("project_path")
	if err != nil {
		return nil, "", mcp.NewToolResultError("project_path is required")
	}
	// 相対パスを絶対パスに解決
	projectPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, "", mcp.NewToolResultError(fmt.Sprintf("invalid project_path: %v", err))
	}
	filePath, err := req.RequireString("file_path")
	if err != nil {
		return nil, "", mcp.NewToolResultError("file_path is required")
	}

	fs := workspace.NewFS(projectPath, h.cfg.Match())
	return navigator.New(fs, h.cfg.Classifier(), h.log), filePath, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(body)), nil
}
