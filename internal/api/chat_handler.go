// File path: internal/api/chat_handler.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/venturelabs/venturelens/internal/common"
	"github.com/venturelabs/venturelens/internal/common/telemetry"
	"github.com/venturelabs/venturelens/internal/ledger"
	"github.com/venturelabs/venturelens/internal/llm"
)

// handleChat streams an advisor reply over SSE. The system context is
// rebuilt from the ledger on every request and the conversation itself is
// never persisted; the client owns its transcript.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string        `json:"session_id"`
		Mode      string        `json:"mode,omitempty"`
		Messages  []llm.Message `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode chat request: %w", err))
		return
	}
	if req.Mode == "" {
		req.Mode = chatModeGeneral
	}
	if req.Mode != chatModeGeneral && req.Mode != chatModeInvestor {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown chat mode %q", req.Mode))
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("at least one message required"))
		return
	}
	sess, err := s.sessions.Get(req.SessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("streaming unsupported"))
		return
	}

	messages := make([]llm.Message, 0, len(req.Messages)+1)
	messages = append(messages, llm.Message{Role: "system", Content: chatContext(sess.store.Get(), req.Mode)})
	messages = append(messages, req.Messages...)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	telemetry.ChatStreamStarted()
	defer telemetry.ChatStreamFinished()

	streamErr := s.provider.ChatStream(r.Context(), messages, func(delta string) error {
		payload, err := json.Marshal(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"delta": map[string]string{"content": delta}},
			},
		})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if streamErr != nil && !errors.Is(streamErr, context.Canceled) {
		common.Logger().Warn("api: chat stream aborted", "session", sess.store.SessionKey(), "error", streamErr)
		return
	}
	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

const (
	chatModeGeneral  = "general"
	chatModeInvestor = "investor"
)

// chatContext flattens the decision ledger into the system prompt so
// answers reference what the user has actually decided. The persona
// varies by mode; the context bundle is the same.
func chatContext(l ledger.DecisionLedger, mode string) string {
	var b strings.Builder
	if mode == chatModeInvestor {
		b.WriteString("You are a skeptical early-stage investor in a practice pitch session. ")
		b.WriteString("Challenge the founder's idea the way a partner meeting would: market size, ")
		b.WriteString("traction, moat, and the ask. Push back where the context below is thin.\n")
	} else {
		b.WriteString("You are a startup advisor helping a founder evaluate and execute an idea. ")
		b.WriteString("Answer concisely and ground every answer in the founder's context below. ")
		b.WriteString("For legal or immigration specifics, recommend consulting a professional.\n")
	}
	if l.IdeaSnapshot != nil {
		fmt.Fprintf(&b, "\nIdea: %s\nProblem: %s\nSolution: %s\nAudience: %s\n",
			l.IdeaSnapshot.IdeaName, l.IdeaSnapshot.Problem, l.IdeaSnapshot.Solution, l.IdeaSnapshot.Audience)
	}
	if l.Analysis != nil {
		fmt.Fprintf(&b, "Analyzer verdict: %s. %s\n", l.Analysis.Decision, l.Analysis.Rationale.Summary)
	}
	if l.ProfitType != "" {
		fmt.Fprintf(&b, "Profit model: %s\n", l.ProfitType)
	}
	if l.EntityType != "" {
		fmt.Fprintf(&b, "Chosen entity: %s\n", l.EntityType)
	}
	if l.FundraisingIntent != "" {
		fmt.Fprintf(&b, "Fundraising intent: %s\n", l.FundraisingIntent)
	}
	if l.FounderVisaStatus != "" {
		fmt.Fprintf(&b, "Founder visa status: %s\n", l.FounderVisaStatus)
	}
	if l.VisaEligibility != nil {
		fmt.Fprintf(&b, "Eligibility summary: can own %s, can work %s\n",
			l.VisaEligibility.CanOwn, l.VisaEligibility.CanWork)
	}
	return b.String()
}
