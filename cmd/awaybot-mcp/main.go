package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/DevRickLin/feishu-away-bot/internal/conf"
	"github.com/DevRickLin/feishu-away-bot/internal/data"
	"github.com/DevRickLin/feishu-away-bot/internal/mcpserver"
)

var version = "dev"

// Operator tools over MCP stdio. Stdout carries the protocol, so every log line,
// including the shared packages' fmt.Printf output, is sent to stderr.
func main() {
	protocolOut := os.Stdout
	os.Stdout = os.Stderr

	_ = godotenv.Load()

	cfg := conf.LoadFromEnv()
	if err := cfg.ValidateLocal(); err != nil {
		fmt.Fprintf(os.Stderr, "[MCP] Invalid config: %v\n", err)
		os.Exit(1)
	}

	repos, err := data.NewRepositories(cfg.Store.Dir, cfg.Store.Backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[MCP] Failed to open state: %v\n", err)
		os.Exit(1)
	}
	defer repos.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := mcpserver.NewServer(repos.State, repos.Resources, version)
	fmt.Fprintf(os.Stderr, "[MCP] Serving tools for %s\n", cfg.Store.Dir)
	if err := server.Serve(ctx, os.Stdin, protocolOut); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "[MCP] Server error: %v\n", err)
		os.Exit(1)
	}
}
