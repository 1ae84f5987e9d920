package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

func main() {
	if len(os.Args) != 3 && len(os.Args) != 5 {
		fmt.Fprintln(os.Stderr, "Usage: mcp-client <project_path> <file_path> [line character]")
		os.Exit(1)
	}

	projectPath := os.Args[1]
	filePath := os.Args[2]

	serverBin := os.Getenv("MCP_SERVER_BIN")
	if serverBin == "" {
		serverBin = "mcp-server"
	}

	// --- MCP クライアントの起動（サーバープロセスを spawn） ---
	c, err := client.NewStdioMCPClient(
		serverBin,
		os.Environ(),
	)
	if err != nil {
		log.Fatalf("failed to create MCP client: %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// --- Initialize ハンドシェイク ---
	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "jellyref-client",
		Version: "0.1.0",
	}

	initResult, err := c.Initialize(ctx, initReq)
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	fmt.Fprintf(os.Stderr, "Connected to: %s %s\n", initResult.ServerInfo.Name, initResult.ServerInfo.Version)

	// 位置が指定されていれば find-definition、なければ list-includes
	toolReq := mcp.CallToolRequest{}
	toolReq.Params.Name = "list-includes"
	args := map[string]any{
		"project_path": projectPath,
		"file_path":    filePath,
	}
	if len(os.Args) == 5 {
		line, err := strconv.Atoi(os.Args[3])
		if err != nil {
			log.Fatalf("invalid line %q: %v", os.Args[3], err)
		}
		char, err := strconv.Atoi(os.Args[4])
		if err != nil {
			log.Fatalf("invalid character %q: %v", os.Args[4], err)
		}
		toolReq.Params.Name = "find-definition"
		args["line"] = line
		args["character"] = char
	}
	toolReq.Params.Arguments = args

	result, err := c.CallTool(ctx, toolReq)
	if err != nil {
		log.Fatalf("tool call failed: %v", err)
	}

	if result.IsError {
		fmt.Fprintf(os.Stderr, "%s failed:\n", toolReq.Params.Name)
	}

	for _, content := range result.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			fmt.Println(tc.Text)
		}
	}
	if result.IsError {
		os.Exit(1)
	}
}
