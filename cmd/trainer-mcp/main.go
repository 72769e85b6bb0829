package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/coach"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/config"
	mcpserver "github.com/RaulAdSe/garmin-trainer-sub002/internal/mcp"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/storage"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// trainer-mcp speaks MCP over stdio so an LLM client can query fitness,
// readiness, and recommendations directly. Logs go to stderr; stdout is
// the protocol channel.
func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	s := mcpserver.New(db, coach.New(db, log), Version, log)

	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
