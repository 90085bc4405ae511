// Command setlog-mcp serves the user's workout data to LLM clients over the
// Model Context Protocol on stdio, backed by the remote workout API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/claude/setlog/internal/api"
	"github.com/claude/setlog/internal/auth"
	"github.com/claude/setlog/internal/config"
	"github.com/claude/setlog/internal/mcp"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("setlog-mcp", Version)
		return
	}

	// Stdout carries the MCP transport; all logging goes to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.ValidateClient(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	tokens := &auth.FileTokenSource{Path: cfg.Auth.TokenFile}
	if _, err := tokens.IDToken(context.Background()); err != nil {
		log.Error("no ID token available", "error", err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.API.BaseURL, tokens, log)
	srv := mcp.New(client, Version, log)

	log.Info("SetLog MCP server starting", "version", Version, "api", cfg.API.BaseURL)
	if err := mcpserver.ServeStdio(srv); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
