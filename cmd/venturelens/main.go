// File path: cmd/venturelens/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/venturelabs/venturelens/internal/api"
	"github.com/venturelabs/venturelens/internal/common"
	"github.com/venturelabs/venturelens/internal/data/orchestrator"
	"github.com/venturelabs/venturelens/internal/llm"
)

func main() {
	logger := common.Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logger.Warn("venturelens: .env file not loaded", "error", err)
	} else {
		logger.Info("venturelens: environment loaded from .env")
	}

	addr := flag.String("addr", ":8082", "listen address")
	sessionsPath := flag.String("sessions", defaultSessionsPath(), "directory for per-session ledger storage")
	catalogPath := flag.String("catalog", defaultCatalogPath(), "path to the SQLite saved-idea catalog")

	maxSessionsDefault := api.DefaultConfig().MaxSessions
	if env := strings.TrimSpace(os.Getenv("VENTURELENS_MAX_SESSIONS")); env != "" {
		if parsed, err := strconv.Atoi(env); err == nil && parsed > 0 {
			maxSessionsDefault = parsed
		}
	}
	maxSessions := flag.Int("max-sessions", maxSessionsDefault, "maximum concurrently live sessions")

	flag.Parse()

	logger.Info("venturelens: startup initiated", "addr", *addr, "sessions", *sessionsPath)

	orchCfg, err := orchestrator.LoadConfig()
	if err != nil {
		logger.Error("venturelens: orchestrator config load failed", "error", err)
		fmt.Println("orchestrator config error:", err)
		os.Exit(1)
	}
	if trimmed := strings.TrimSpace(*sessionsPath); trimmed != "" {
		orchCfg.SessionsPath = trimmed
	}
	if trimmed := strings.TrimSpace(*catalogPath); trimmed != "" {
		orchCfg.CatalogPath = trimmed
	}

	orch, err := orchestrator.New(ctx, orchCfg)
	if err != nil {
		logger.Error("venturelens: orchestrator initialization failed", "error", err)
		fmt.Println("orchestrator error:", err)
		os.Exit(1)
	}
	defer orch.Close()

	provider := llm.NewProvider()
	logger.Info("venturelens: llm provider ready", "provider", provider.Name())

	cfg := api.DefaultConfig()
	if *maxSessions > 0 {
		cfg.MaxSessions = *maxSessions
	}

	server, err := api.NewServer(ctx, orch, provider, &cfg)
	if err != nil {
		logger.Error("venturelens: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("venturelens: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	reachable := *addr
	if strings.HasPrefix(reachable, ":") {
		reachable = "localhost" + reachable
	}
	logger.Info("venturelens: verify reachability", "suggestion", fmt.Sprintf("curl http://%s/healthz", reachable))
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("venturelens: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}

func defaultSessionsPath() string {
	return filepath.Join("data", "sessions")
}

func defaultCatalogPath() string {
	return filepath.Join("data", "ideas.db")
}
