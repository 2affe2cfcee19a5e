// File path: internal/api/session_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/venturelabs/venturelens/internal/common"
	"github.com/venturelabs/venturelens/internal/ledger"
	"github.com/venturelabs/venturelens/internal/wizard"
)

// sessionFor resolves the {id} route parameter to a live session, writing
// the error response itself on failure.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) (*session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, errSessionNotFound):
			writeError(w, http.StatusNotFound, err)
		case errors.Is(err, errRegistryFull):
			writeError(w, http.StatusServiceUnavailable, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return nil, false
	}
	return sess, true
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	id, sess, err := s.sessions.Create()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id": id,
		"view":       sess.nav.View(),
	})
}

func (s *Server) handleLedgerGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.store.Get())
}

func (s *Server) handleLedgerPatch(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	var patch ledger.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode patch: %w", err))
		return
	}
	sess.store.Update(patch)
	writeJSON(w, http.StatusOK, sess.store.Get())
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	var req struct {
		Step int `json:"step"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode step: %w", err))
		return
	}
	if req.Step < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("step must be non-negative"))
		return
	}
	sess.store.SetStep(req.Step)
	l := sess.store.Get()
	writeJSON(w, http.StatusOK, map[string]int{
		"current_step":      l.CurrentStep,
		"max_unlocked_step": l.MaxUnlockedStep,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	sess.store.Reset()
	common.Logger().Info("api: session reset", "session", sess.store.SessionKey())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"view":   sess.nav.View(),
		"ledger": sess.store.Get(),
	})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]wizard.View{"view": sess.nav.View()})
}

// handleProceed records the user's answer to the verdict gate. A "no"
// abandons the idea: the ledger resets and the flow returns to intake.
func (s *Server) handleProceed(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	var req struct {
		Intent ledger.ProceedIntent `json:"intent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode intent: %w", err))
		return
	}
	switch req.Intent {
	case ledger.ProceedYes, ledger.ProceedConditional:
		intent := req.Intent
		sess.store.Update(ledger.Patch{ProceedIntent: &intent})
	case ledger.ProceedNo:
		sess.store.Reset()
		common.Logger().Info("api: idea abandoned", "session", sess.store.SessionKey())
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown proceed intent %q", req.Intent))
		return
	}
	writeJSON(w, http.StatusOK, map[string]wizard.View{"view": sess.nav.View()})
}

func (s *Server) handleGate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	var req struct {
		Section ledger.SectionKey `json:"section"`
		Choice  wizard.GateChoice `json:"choice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode gate choice: %w", err))
		return
	}
	entry, err := sess.nav.Gate(req.Section, req.Choice)
	if err != nil {
		writeNavError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// handleNav multiplexes the navigation verbs: enter a section from the
// journey screen, advance within it, jump to a named step, or take the
// funding escape.
func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	var req struct {
		Action  string            `json:"action"`
		Section ledger.SectionKey `json:"section"`
		Step    wizard.StepID     `json:"step,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode navigation: %w", err))
		return
	}
	var (
		entry wizard.Entry
		err   error
	)
	switch req.Action {
	case "enter":
		entry, err = sess.nav.EnterSection(req.Section)
	case "advance":
		entry, err = sess.nav.Advance(req.Section)
	case "jump":
		entry, err = sess.nav.Jump(req.Section, req.Step)
	case "escape":
		entry, err = sess.nav.Escape(req.Section)
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown navigation action %q", req.Action))
		return
	}
	if err != nil {
		writeNavError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleCCorpItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	var req struct {
		Category string `json:"category"`
		Item     string `json:"item"`
		Done     bool   `json:"done"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode ccorp item: %w", err))
		return
	}
	if err := sess.store.SetCCorpItem(req.Category, req.Item, req.Done); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.store.Get().CCorpSetup)
}

func (s *Server) handleRegistrationStep(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	var req struct {
		Key  string      `json:"key"`
		Done bool        `json:"done"`
		Doer ledger.Doer `json:"doer,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode registration step: %w", err))
		return
	}
	if err := sess.store.SetRegistrationStep(req.Key, req.Done, req.Doer); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.store.Get().RegistrationChecklist)
}

func writeNavError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wizard.ErrUnknownSection), errors.Is(err, wizard.ErrUnknownStep):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, wizard.ErrSectionGated):
		writeError(w, http.StatusConflict, err)
	default:
		writeError(w, http.StatusBadRequest, err)
	}
}
