package server

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	Name    = "jellyref"
	Version = "0.1.0"
)

// New は MCP サーバーを生成し、ツールを登録して返します。
// ビジネスロジックは handler に委譲し、ここではプロトコル変換のみ行います。
func New(handler *IncludeHandler) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(false),
	)

	listTool := mcp.NewTool("list-includes",
		mcp.WithDescription("Jelly ページ内の <st:include page=\"...\"> 参照と、その参照先ファイルを一覧します。参照先が存在しない場合 target は省略されます。"),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("プロジェクトのルートディレクトリ"),
		),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("対象の Jelly ファイル（プロジェクトルートからの相対パス）"),
		),
	)

	definitionTool := mcp.NewTool("find-definition",
		mcp.WithDescription("指定位置にある include の page 属性が指すファイルを返します。"),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("プロジェクトのルートディレクトリ"),
		),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("対象の Jelly ファイル（プロジェクトルートからの相対パス）"),
		),
		mcp.WithNumber("line",
			mcp.Required(),
			mcp.Description("行番号（1から始まる）"),
		),
		mcp.WithNumber("character",
			mcp.Required(),
			mcp.Description("列番号（1から始まる、UTF-16 単位）"),
		),
	)

	s.AddTool(listTool, handler.ListIncludes)
	s.AddTool(definitionTool, handler.FindDefinition)

	return s
}
