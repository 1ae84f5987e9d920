package main

import (
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/0muji4/jellyref/internal/config"
	"github.com/0muji4/jellyref/internal/server"
)

func main() {
	// --- 設定の読み込み (JELLYREF_CONFIG が無ければデフォルト) ---
	cfg, err := config.Load(os.Getenv("JELLYREF_CONFIG"))
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// --- DI: Adapter 層の組み立て ---
	handler := server.NewIncludeHandler(cfg, cfg.NewLogger())
	s := server.New(handler)

	// --- Framework: MCP stdio サーバーの起動 ---
	fmt.Fprintln(os.Stderr, "jellyref MCP server starting...")
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
