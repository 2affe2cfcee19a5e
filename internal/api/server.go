// File path: internal/api/server.go
package api

import (
	"context"
	"encoding/json"
	"expvar"
	"fmt"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/venturelabs/venturelens/internal/analyzer"
	"github.com/venturelabs/venturelens/internal/common"
	"github.com/venturelabs/venturelens/internal/data/orchestrator"
	"github.com/venturelabs/venturelens/internal/llm"
)

// Server hosts the wizard engine and its collaborators behind a chi
// router.
type Server struct {
	router   chi.Router
	provider llm.Provider
	analyzer analyzer.IdeaAnalyzer
	sessions *sessionRegistry

	orchestrator *orchestrator.Orchestrator
}

// Config bounds the server's session registry.
type Config struct {
	MaxSessions int
}

// DefaultConfig returns the standard configuration used when no overrides
// are provided.
func DefaultConfig() Config {
	return Config{MaxSessions: 1024}
}

// Merge overlays non-zero override fields onto the base configuration.
func (c Config) Merge(override Config) Config {
	result := c
	if override.MaxSessions > 0 {
		result.MaxSessions = override.MaxSessions
	}
	return result
}

func NewServer(ctx context.Context, orch *orchestrator.Orchestrator, provider llm.Provider, cfg *Config) (*Server, error) {
	logger := common.Logger()
	if orch == nil {
		return nil, fmt.Errorf("orchestrator required")
	}
	if orch.Sessions() == nil {
		return nil, fmt.Errorf("session store unavailable")
	}
	if orch.Catalog() == nil {
		return nil, fmt.Errorf("idea catalog unavailable")
	}
	configuration := DefaultConfig()
	if cfg != nil {
		configuration = configuration.Merge(*cfg)
	}
	providerName := "none"
	if provider != nil {
		providerName = provider.Name()
	}
	logger.Info(
		"api: building server",
		"provider", providerName,
		"max_sessions", configuration.MaxSessions,
	)
	srv := &Server{
		router:       chi.NewRouter(),
		provider:     provider,
		analyzer:     analyzer.New(provider),
		sessions:     newSessionRegistry(orch.Sessions(), configuration.MaxSessions),
		orchestrator: orch,
	}
	srv.routes()
	logger.Info("api: server ready")
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.router.Handle("/debug/vars", expvar.Handler())
	s.router.Get("/v1/logs", s.handleLogs)

	s.router.Post("/v1/session", s.handleSessionCreate)
	s.router.Get("/v1/session/{id}/ledger", s.handleLedgerGet)
	s.router.Post("/v1/session/{id}/ledger", s.handleLedgerPatch)
	s.router.Post("/v1/session/{id}/step", s.handleStep)
	s.router.Post("/v1/session/{id}/reset", s.handleReset)
	s.router.Get("/v1/session/{id}/view", s.handleView)
	s.router.Post("/v1/session/{id}/proceed", s.handleProceed)
	s.router.Post("/v1/session/{id}/gate", s.handleGate)
	s.router.Post("/v1/session/{id}/nav", s.handleNav)
	s.router.Post("/v1/session/{id}/ccorp", s.handleCCorpItem)
	s.router.Post("/v1/session/{id}/registration", s.handleRegistrationStep)

	s.router.Post("/v1/analyze", s.handleAnalyze)
	s.router.Post("/v1/analyze/section", s.handleRegenerateSection)
	s.router.Post("/v1/chat", s.handleChat)
	s.router.Post("/v1/deck", s.handleDeck)

	s.router.Get("/v1/recommend/entity", s.handleRecommendEntity)
	s.router.Get("/v1/recommend/eligibility", s.handleRecommendEligibility)
	s.router.Get("/v1/recommend/paths", s.handleRecommendPaths)
	s.router.Get("/v1/recommend/guidance", s.handleRecommendGuidance)

	s.router.Post("/v1/ideas", s.handleIdeaSave)
	s.router.Get("/v1/ideas", s.handleIdeaList)
	s.router.Post("/v1/ideas/{id}/load", s.handleIdeaLoad)
	s.router.Delete("/v1/ideas/{id}", s.handleIdeaDelete)
	s.router.Post("/v1/ideas/{id}/share", s.handleIdeaShare)
	s.router.Get("/v1/shared/{shareId}", s.handleSharedGet)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": common.LogEntries()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
