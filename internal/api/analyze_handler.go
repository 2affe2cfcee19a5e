// File path: internal/api/analyze_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/venturelabs/venturelens/internal/common"
	"github.com/venturelabs/venturelens/internal/idea"
	"github.com/venturelabs/venturelens/internal/ledger"
)

// handleAnalyze runs a full analysis for a snapshot and commits the
// result to the session ledger in one patch. A failed run leaves the
// ledger exactly as it was so the client can retry.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string        `json:"session_id"`
		Snapshot  idea.Snapshot `json:"idea_snapshot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode analyze request: %w", err))
		return
	}
	if err := validateSnapshot(req.Snapshot); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sess, err := s.sessions.Get(req.SessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	// Counters are recorded inside the analyzer, not here.
	start := time.Now()
	result, err := s.analyzer.Analyze(r.Context(), req.Snapshot)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	snapshot := req.Snapshot
	verdict := result.Decision
	sess.store.Update(ledger.Patch{
		IdeaSnapshot: &snapshot,
		Analysis:     result,
		Verdict:      &verdict,
	})
	common.Logger().Info("api: idea analyzed",
		"session", sess.store.SessionKey(),
		"verdict", string(verdict),
		"dur", time.Since(start),
	)
	writeJSON(w, http.StatusOK, result)
}

// handleRegenerateSection redoes one analysis section with optional custom
// instructions. Only the named section changes; failure leaves the stored
// analysis untouched.
func (s *Server) handleRegenerateSection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID          string       `json:"session_id"`
		Section            idea.Section `json:"section"`
		CustomInstructions string       `json:"custom_instructions,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode regenerate request: %w", err))
		return
	}
	if !idea.KnownSection(req.Section) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown section %q", req.Section))
		return
	}
	sess, err := s.sessions.Get(req.SessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	l := sess.store.Get()
	if l.IdeaSnapshot == nil || l.Analysis == nil {
		writeError(w, http.StatusConflict, fmt.Errorf("no analysis to regenerate"))
		return
	}

	result, err := s.analyzer.RegenerateSection(r.Context(), req.Section, *l.IdeaSnapshot, l.Analysis, req.CustomInstructions)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	sess.store.Update(ledger.Patch{Analysis: result})
	writeJSON(w, http.StatusOK, result)
}

// handleDeck generates pitch-deck slides and stores them on the analysis
// so saved and shared ideas carry the deck along. With regenerate_slide
// set, only the slide at slide_index is rewritten; the rest of the deck
// is carried over as stored.
func (s *Server) handleDeck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID       string `json:"session_id"`
		RegenerateSlide bool   `json:"regenerate_slide,omitempty"`
		SlideIndex      int    `json:"slide_index,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode deck request: %w", err))
		return
	}
	sess, err := s.sessions.Get(req.SessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	l := sess.store.Get()
	if l.IdeaSnapshot == nil || l.Analysis == nil {
		writeError(w, http.StatusConflict, fmt.Errorf("no analysis to build a deck from"))
		return
	}

	if req.RegenerateSlide {
		if len(l.Analysis.Deck) == 0 {
			writeError(w, http.StatusConflict, fmt.Errorf("no deck to regenerate a slide in"))
			return
		}
		if req.SlideIndex < 0 || req.SlideIndex >= len(l.Analysis.Deck) {
			writeError(w, http.StatusBadRequest, fmt.Errorf("slide_index %d out of range", req.SlideIndex))
			return
		}
		slide, err := s.analyzer.RegenerateSlide(r.Context(), *l.IdeaSnapshot, l.Analysis, l.EntityType, l.FundraisingIntent, req.SlideIndex)
		if err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
		deck := append([]idea.Slide(nil), l.Analysis.Deck...)
		deck[req.SlideIndex] = slide
		next := *l.Analysis
		next.Deck = deck
		sess.store.Update(ledger.Patch{Analysis: &next})
		writeJSON(w, http.StatusOK, map[string]interface{}{"deck": deck})
		return
	}

	slides, err := s.analyzer.GeneratePitchDeck(r.Context(), *l.IdeaSnapshot, l.Analysis, l.EntityType, l.FundraisingIntent)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	next := *l.Analysis
	next.Deck = slides
	sess.store.Update(ledger.Patch{Analysis: &next})
	writeJSON(w, http.StatusOK, map[string]interface{}{"deck": slides})
}

func validateSnapshot(snapshot idea.Snapshot) error {
	if strings.TrimSpace(snapshot.IdeaName) == "" {
		return fmt.Errorf("idea name required")
	}
	if strings.TrimSpace(snapshot.Problem) == "" {
		return fmt.Errorf("problem statement required")
	}
	if strings.TrimSpace(snapshot.Solution) == "" {
		return fmt.Errorf("solution description required")
	}
	return nil
}
