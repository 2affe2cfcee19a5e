// File path: internal/api/recommend_handler.go
package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/venturelabs/venturelens/internal/idea"
	"github.com/venturelabs/venturelens/internal/recommend"
	"github.com/venturelabs/venturelens/internal/wizard"
)

// Recommendation lookups are pure reads over the fixed tables; when a
// session is supplied they fall back to its ledger for missing inputs.

func (s *Server) handleRecommendEntity(w http.ResponseWriter, r *http.Request) {
	profit := idea.ProfitType(strings.TrimSpace(r.URL.Query().Get("profit")))
	fundraising := idea.FundraisingIntent(strings.TrimSpace(r.URL.Query().Get("fundraising")))
	if sessionID := r.URL.Query().Get("session_id"); sessionID != "" {
		sess, err := s.sessions.Get(sessionID)
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		l := sess.store.Get()
		if profit == "" {
			profit = l.ProfitType
		}
		if profit == "" {
			profit = recommend.ProfitType(l.Analysis)
		}
		if fundraising == "" {
			fundraising = l.FundraisingIntent
		}
	}
	writeJSON(w, http.StatusOK, recommend.EntityType(profit, fundraising))
}

func (s *Server) handleRecommendEligibility(w http.ResponseWriter, r *http.Request) {
	status, ok := s.visaStatus(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, recommend.Eligibility(status))
}

func (s *Server) handleRecommendPaths(w http.ResponseWriter, r *http.Request) {
	if id := strings.TrimSpace(r.URL.Query().Get("id")); id != "" {
		path, found := recommend.PathByID(id)
		if !found {
			writeError(w, http.StatusNotFound, fmt.Errorf("unknown legal path %q", id))
			return
		}
		writeJSON(w, http.StatusOK, path)
		return
	}
	status, ok := s.visaStatus(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"paths": recommend.LegalPaths(status)})
}

func (s *Server) handleRecommendGuidance(w http.ResponseWriter, r *http.Request) {
	status, ok := s.visaStatus(w, r)
	if !ok {
		return
	}
	hasWorkAuthorizedCofounder := false
	if sessionID := r.URL.Query().Get("session_id"); sessionID != "" {
		sess, err := s.sessions.Get(sessionID)
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		hasWorkAuthorizedCofounder = wizard.WorkAuthorizedCofounder(sess.store.Get())
	}
	writeJSON(w, http.StatusOK, recommend.VisaGuidance(status, hasWorkAuthorizedCofounder))
}

// visaStatus reads the status from the query, falling back to the
// session's recorded founder status when only a session is given.
func (s *Server) visaStatus(w http.ResponseWriter, r *http.Request) (idea.VisaStatus, bool) {
	status := idea.VisaStatus(strings.TrimSpace(r.URL.Query().Get("status")))
	if status != "" {
		return status, true
	}
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("status or session_id required"))
		return "", false
	}
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return "", false
	}
	status = sess.store.Get().FounderVisaStatus
	if status == "" {
		writeError(w, http.StatusConflict, fmt.Errorf("no visa status recorded for session"))
		return "", false
	}
	return status, true
}
