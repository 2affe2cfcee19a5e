// File path: internal/api/ideas_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"github.com/venturelabs/venturelens/internal/catalog"
	"github.com/venturelabs/venturelens/internal/common"
)

// ownerID scopes catalog operations. There is no account system; the
// client supplies a stable identifier and keeps it.
func ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner := strings.TrimSpace(r.Header.Get("X-Owner-ID"))
	if owner == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("X-Owner-ID header required"))
		return "", false
	}
	return owner, true
}

// handleIdeaSave captures the session's snapshot, analysis, and full
// ledger into one catalog row. Supplying an existing idea ID updates that
// row in place.
func (s *Server) handleIdeaSave(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	var req struct {
		SessionID string `json:"session_id"`
		IdeaID    string `json:"idea_id,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode save request: %w", err))
		return
	}
	sess, err := s.sessions.Get(req.SessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	record, err := ideaRecord(sess)
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	record.ID = req.IdeaID
	record.OwnerID = owner
	saved, err := s.orchestrator.Catalog().Save(r.Context(), record)
	if err != nil {
		if errors.Is(err, catalog.ErrIdeaNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	common.Logger().Info("api: idea saved", "idea", saved.ID, "name", saved.IdeaName)
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleIdeaList(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	ideas, err := s.orchestrator.Catalog().List(r.Context(), owner)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ideas": ideas})
}

// handleIdeaLoad restores a saved idea into a session: the stored ledger
// dump replaces the session's ledger and the navigator re-derives the
// view from the merged state.
func (s *Server) handleIdeaLoad(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode load request: %w", err))
		return
	}
	sess, err := s.sessions.Get(req.SessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	saved, err := s.orchestrator.Catalog().Get(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalog.ErrIdeaNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if len(saved.Ledger) == 0 {
		writeError(w, http.StatusConflict, fmt.Errorf("saved idea has no ledger to restore"))
		return
	}
	if err := sess.store.Restore(saved.Ledger); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	common.Logger().Info("api: idea loaded", "idea", saved.ID, "session", sess.store.SessionKey())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"view":   sess.nav.View(),
		"ledger": sess.store.Get(),
	})
}

func (s *Server) handleIdeaDelete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	deleted, err := s.orchestrator.Catalog().Delete(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, catalog.ErrIdeaNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// handleIdeaShare clones a saved idea into the public table and returns
// the share ID. The clone is a point-in-time copy; later edits to the
// saved idea do not leak into it.
func (s *Server) handleIdeaShare(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	saved, err := s.orchestrator.Catalog().Get(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalog.ErrIdeaNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	shareID, err := s.orchestrator.Catalog().Share(r.Context(), catalog.SharedIdea{
		IdeaName: saved.IdeaName,
		Snapshot: saved.Snapshot,
		Analysis: saved.Analysis,
		Ledger:   saved.Ledger,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	common.Logger().Info("api: idea shared", "idea", saved.ID, "share", shareID)
	writeJSON(w, http.StatusOK, map[string]string{"share_id": shareID})
}

func (s *Server) handleSharedGet(w http.ResponseWriter, r *http.Request) {
	shared, err := s.orchestrator.Catalog().Shared(r.Context(), chi.URLParam(r, "shareId"))
	if err != nil {
		if errors.Is(err, catalog.ErrIdeaNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, shared)
}

// ideaRecord assembles the catalog row for a session's current state.
func ideaRecord(sess *session) (catalog.SavedIdea, error) {
	l := sess.store.Get()
	if l.IdeaSnapshot == nil {
		return catalog.SavedIdea{}, fmt.Errorf("no idea to save")
	}
	snapshot, err := json.Marshal(l.IdeaSnapshot)
	if err != nil {
		return catalog.SavedIdea{}, fmt.Errorf("encode snapshot: %w", err)
	}
	var analysis json.RawMessage
	if l.Analysis != nil {
		analysis, err = json.Marshal(l.Analysis)
		if err != nil {
			return catalog.SavedIdea{}, fmt.Errorf("encode analysis: %w", err)
		}
	}
	dump, err := sess.store.Export()
	if err != nil {
		return catalog.SavedIdea{}, fmt.Errorf("encode ledger: %w", err)
	}
	return catalog.SavedIdea{
		IdeaName: l.IdeaSnapshot.IdeaName,
		Snapshot: snapshot,
		Analysis: analysis,
		Ledger:   dump,
	}, nil
}
