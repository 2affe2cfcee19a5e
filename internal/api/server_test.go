// File path: internal/api/server_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/venturelabs/venturelens/internal/data/orchestrator"
	"github.com/venturelabs/venturelens/internal/idea"
	"github.com/venturelabs/venturelens/internal/ledger"
	"github.com/venturelabs/venturelens/internal/llm"
	"github.com/venturelabs/venturelens/internal/wizard"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	orch, err := orchestrator.New(context.Background(), orchestrator.Config{
		SessionsPath: filepath.Join(dir, "sessions"),
		CatalogPath:  filepath.Join(dir, "ideas.db"),
	})
	if err != nil {
		t.Fatalf("orchestrator: %v", err)
	}
	t.Cleanup(func() { orch.Close() })
	server, err := NewServer(context.Background(), orch, llm.NewLocalProvider(), nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return server
}

func doJSON(t *testing.T, server *Server, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func createSession(t *testing.T, server *Server) string {
	t.Helper()
	rec := doJSON(t, server, http.MethodPost, "/v1/session", nil, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		SessionID string      `json:"session_id"`
		View      wizard.View `json:"view"`
	}
	decodeBody(t, rec, &created)
	if created.SessionID == "" {
		t.Fatal("no session ID returned")
	}
	if created.View != wizard.ViewIdeaInput {
		t.Fatalf("new session view = %q", created.View)
	}
	return created.SessionID
}

var intakeSnapshot = idea.Snapshot{
	IdeaName:    "Acme Ledger",
	Problem:     "Small accounting firms reconcile by hand",
	Solution:    "Automated reconciliation for small firms",
	Audience:    "Accounting firms under 20 seats",
	ScaleIntent: idea.ScaleVenture,
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t)
	rec := doJSON(t, server, http.MethodGet, "/healthz", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz = %d", rec.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	// Unknown and malformed session IDs miss.
	if rec := doJSON(t, server, http.MethodGet, "/v1/session/not-a-uuid/ledger", nil, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("malformed session ID = %d", rec.Code)
	}

	rec := doJSON(t, server, http.MethodGet, "/v1/session/"+id+"/ledger", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ledger get = %d", rec.Code)
	}
	var l ledger.DecisionLedger
	decodeBody(t, rec, &l)
	if len(l.UnlockedSections) != len(ledger.AllSections) {
		t.Fatalf("fresh ledger sections = %d", len(l.UnlockedSections))
	}

	// Patch a decision in and read it back.
	customer := idea.CustomerB2B
	rec = doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/ledger", ledger.Patch{TargetCustomer: &customer}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ledger patch = %d %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &l)
	if l.TargetCustomer != idea.CustomerB2B {
		t.Fatalf("target customer = %q", l.TargetCustomer)
	}

	// Step cursor: forward moves raise the high-water mark, backward moves
	// do not lower it.
	rec = doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/step", map[string]int{"step": 3}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("step = %d", rec.Code)
	}
	rec = doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/step", map[string]int{"step": 1}, nil)
	var cursor struct {
		CurrentStep     int `json:"current_step"`
		MaxUnlockedStep int `json:"max_unlocked_step"`
	}
	decodeBody(t, rec, &cursor)
	if cursor.CurrentStep != 1 || cursor.MaxUnlockedStep != 3 {
		t.Fatalf("cursor = %+v", cursor)
	}
	if rec := doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/step", map[string]int{"step": -1}, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("negative step = %d", rec.Code)
	}

	// Reset returns to intake.
	rec = doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/reset", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset = %d", rec.Code)
	}
	var afterReset struct {
		View   wizard.View           `json:"view"`
		Ledger ledger.DecisionLedger `json:"ledger"`
	}
	decodeBody(t, rec, &afterReset)
	if afterReset.View != wizard.ViewIdeaInput || afterReset.Ledger.TargetCustomer != "" {
		t.Fatalf("after reset: %+v", afterReset)
	}
}

func TestAnalyzeToJourneyFlow(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	rec := doJSON(t, server, http.MethodPost, "/v1/analyze", map[string]interface{}{
		"session_id":    id,
		"idea_snapshot": intakeSnapshot,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("analyze = %d %s", rec.Code, rec.Body.String())
	}
	var result idea.AnalysisResult
	decodeBody(t, rec, &result)
	if result.Decision != idea.VerdictYes {
		t.Fatalf("verdict = %q", result.Decision)
	}

	// Analysis moves the derived view to the verdict summary.
	rec = doJSON(t, server, http.MethodGet, "/v1/session/"+id+"/view", nil, nil)
	var viewResp struct {
		View wizard.View `json:"view"`
	}
	decodeBody(t, rec, &viewResp)
	if viewResp.View != wizard.ViewVerdictSummary {
		t.Fatalf("view after analyze = %q", viewResp.View)
	}

	// Accepting the verdict opens the journey.
	rec = doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/proceed", map[string]string{"intent": "yes"}, nil)
	decodeBody(t, rec, &viewResp)
	if viewResp.View != wizard.ViewExecutionJourney {
		t.Fatalf("view after proceed = %q", viewResp.View)
	}

	// Walk the company module through its gate and first steps.
	rec = doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/gate", map[string]string{
		"section": "company-setup",
		"choice":  "step-by-step",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("gate = %d %s", rec.Code, rec.Body.String())
	}
	var entry wizard.Entry
	decodeBody(t, rec, &entry)
	if entry.Step != wizard.StepTargetCustomer {
		t.Fatalf("gate landed on %q", entry.Step)
	}

	rec = doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/nav", map[string]string{
		"action":  "advance",
		"section": "company-setup",
	}, nil)
	decodeBody(t, rec, &entry)
	if entry.Step != wizard.StepProfitType {
		t.Fatalf("advance landed on %q", entry.Step)
	}

	// Abandoning the idea resets everything back to intake.
	rec = doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/proceed", map[string]string{"intent": "no"}, nil)
	decodeBody(t, rec, &viewResp)
	if viewResp.View != wizard.ViewIdeaInput {
		t.Fatalf("view after abandon = %q", viewResp.View)
	}
	rec = doJSON(t, server, http.MethodGet, "/v1/session/"+id+"/ledger", nil, nil)
	var l ledger.DecisionLedger
	decodeBody(t, rec, &l)
	if l.IdeaSnapshot != nil || l.Analysis != nil {
		t.Fatal("abandon left analysis behind")
	}
}

func TestAnalyzeValidation(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	empty := intakeSnapshot
	empty.Problem = ""
	rec := doJSON(t, server, http.MethodPost, "/v1/analyze", map[string]interface{}{
		"session_id":    id,
		"idea_snapshot": empty,
	}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing problem = %d", rec.Code)
	}

	// A failed analyze leaves the ledger untouched.
	ledgerRec := doJSON(t, server, http.MethodGet, "/v1/session/"+id+"/ledger", nil, nil)
	var l ledger.DecisionLedger
	decodeBody(t, ledgerRec, &l)
	if l.IdeaSnapshot != nil {
		t.Fatal("rejected analyze wrote a snapshot")
	}
}

func TestRegenerateSectionEndpoint(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	// Regenerating before any analysis conflicts.
	rec := doJSON(t, server, http.MethodPost, "/v1/analyze/section", map[string]string{
		"session_id": id,
		"section":    "pitch",
	}, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("premature regenerate = %d", rec.Code)
	}

	if rec := doJSON(t, server, http.MethodPost, "/v1/analyze", map[string]interface{}{
		"session_id": id, "idea_snapshot": intakeSnapshot,
	}, nil); rec.Code != http.StatusOK {
		t.Fatalf("analyze = %d", rec.Code)
	}

	rec = doJSON(t, server, http.MethodPost, "/v1/analyze/section", map[string]string{
		"session_id": id,
		"section":    "pitch",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("regenerate = %d %s", rec.Code, rec.Body.String())
	}

	if rec := doJSON(t, server, http.MethodPost, "/v1/analyze/section", map[string]string{
		"session_id": id,
		"section":    "nonsense",
	}, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown section = %d", rec.Code)
	}
}

func TestDeckEndpointStoresSlides(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	if rec := doJSON(t, server, http.MethodPost, "/v1/deck", map[string]string{"session_id": id}, nil); rec.Code != http.StatusConflict {
		t.Fatalf("deck without analysis = %d", rec.Code)
	}

	if rec := doJSON(t, server, http.MethodPost, "/v1/analyze", map[string]interface{}{
		"session_id": id, "idea_snapshot": intakeSnapshot,
	}, nil); rec.Code != http.StatusOK {
		t.Fatalf("analyze = %d", rec.Code)
	}

	rec := doJSON(t, server, http.MethodPost, "/v1/deck", map[string]string{"session_id": id}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("deck = %d %s", rec.Code, rec.Body.String())
	}
	var deckResp struct {
		Deck []idea.Slide `json:"deck"`
	}
	decodeBody(t, rec, &deckResp)
	if len(deckResp.Deck) != 6 {
		t.Fatalf("deck = %d slides", len(deckResp.Deck))
	}

	// The slides land on the stored analysis.
	rec = doJSON(t, server, http.MethodGet, "/v1/session/"+id+"/ledger", nil, nil)
	var l ledger.DecisionLedger
	decodeBody(t, rec, &l)
	if l.Analysis == nil || len(l.Analysis.Deck) != 6 {
		t.Fatal("deck not persisted on the analysis")
	}
}

func TestDeckSlideRegeneration(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	if rec := doJSON(t, server, http.MethodPost, "/v1/analyze", map[string]interface{}{
		"session_id": id, "idea_snapshot": intakeSnapshot,
	}, nil); rec.Code != http.StatusOK {
		t.Fatalf("analyze = %d", rec.Code)
	}

	// No deck yet: nothing to regenerate a slide in.
	if rec := doJSON(t, server, http.MethodPost, "/v1/deck", map[string]interface{}{
		"session_id": id, "regenerate_slide": true, "slide_index": 0,
	}, nil); rec.Code != http.StatusConflict {
		t.Fatalf("slide regen without deck = %d", rec.Code)
	}

	rec := doJSON(t, server, http.MethodPost, "/v1/deck", map[string]string{"session_id": id}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("deck = %d %s", rec.Code, rec.Body.String())
	}
	var before struct {
		Deck []idea.Slide `json:"deck"`
	}
	decodeBody(t, rec, &before)

	rec = doJSON(t, server, http.MethodPost, "/v1/deck", map[string]interface{}{
		"session_id": id, "regenerate_slide": true, "slide_index": 2,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("slide regen = %d %s", rec.Code, rec.Body.String())
	}
	var after struct {
		Deck []idea.Slide `json:"deck"`
	}
	decodeBody(t, rec, &after)
	if len(after.Deck) != len(before.Deck) {
		t.Fatalf("deck grew from %d to %d slides", len(before.Deck), len(after.Deck))
	}
	if after.Deck[2].ID != before.Deck[2].ID {
		t.Fatalf("slide 2 ID changed: %q -> %q", before.Deck[2].ID, after.Deck[2].ID)
	}
	for i := range after.Deck {
		if i == 2 {
			continue
		}
		if !reflect.DeepEqual(after.Deck[i], before.Deck[i]) {
			t.Fatalf("slide %d changed during a single-slide regeneration", i)
		}
	}

	// Replacement lands on the stored analysis too.
	rec = doJSON(t, server, http.MethodGet, "/v1/session/"+id+"/ledger", nil, nil)
	var l ledger.DecisionLedger
	decodeBody(t, rec, &l)
	if l.Analysis == nil || len(l.Analysis.Deck) != len(before.Deck) {
		t.Fatal("regenerated deck not persisted on the analysis")
	}

	if rec := doJSON(t, server, http.MethodPost, "/v1/deck", map[string]interface{}{
		"session_id": id, "regenerate_slide": true, "slide_index": 99,
	}, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range slide_index = %d", rec.Code)
	}
}

func TestChatStreamsSSE(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	rec := doJSON(t, server, http.MethodPost, "/v1/chat", map[string]interface{}{
		"session_id": id,
		"messages":   []llm.Message{{Role: "user", Content: "Should I incorporate now?"}},
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("chat = %d %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("content type = %q", got)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"delta"`) {
		t.Fatalf("no delta frames in stream: %q", body)
	}
	if !strings.HasSuffix(strings.TrimSpace(body), "data: [DONE]") {
		t.Fatalf("stream missing terminator: %q", body)
	}

	if rec := doJSON(t, server, http.MethodPost, "/v1/chat", map[string]interface{}{
		"session_id": id,
		"messages":   []llm.Message{},
	}, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("empty chat = %d", rec.Code)
	}
}

func TestChatModes(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	rec := doJSON(t, server, http.MethodPost, "/v1/chat", map[string]interface{}{
		"session_id": id,
		"mode":       "investor",
		"messages":   []llm.Message{{Role: "user", Content: "Pitch me the business."}},
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("investor chat = %d %s", rec.Code, rec.Body.String())
	}
	if !strings.HasSuffix(strings.TrimSpace(rec.Body.String()), "data: [DONE]") {
		t.Fatalf("investor stream missing terminator: %q", rec.Body.String())
	}

	if rec := doJSON(t, server, http.MethodPost, "/v1/chat", map[string]interface{}{
		"session_id": id,
		"mode":       "oracle",
		"messages":   []llm.Message{{Role: "user", Content: "hi"}},
	}, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown mode = %d", rec.Code)
	}
}

func TestChatContextPersonaByMode(t *testing.T) {
	l := ledger.Defaults()
	general := chatContext(l, chatModeGeneral)
	investor := chatContext(l, chatModeInvestor)
	if general == investor {
		t.Fatal("general and investor modes share a system prompt")
	}
	if !strings.Contains(investor, "investor") {
		t.Fatalf("investor persona missing from prompt: %q", investor)
	}
	if !strings.Contains(general, "advisor") {
		t.Fatalf("advisor persona missing from prompt: %q", general)
	}
}

func TestCCorpAndRegistrationEndpoints(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	rec := doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/ccorp", map[string]interface{}{
		"category": "equity",
		"item":     "file-83b",
		"done":     true,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ccorp = %d %s", rec.Code, rec.Body.String())
	}
	var setup ledger.CCorpSetup
	decodeBody(t, rec, &setup)
	if !setup.Equity.FileEightyThreeB {
		t.Fatal("83(b) checkbox not set")
	}

	if rec := doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/ccorp", map[string]interface{}{
		"category": "equity", "item": "nonsense", "done": true,
	}, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown ccorp item = %d", rec.Code)
	}

	rec = doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/registration", map[string]interface{}{
		"key":  "ein",
		"done": true,
		"doer": "service",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("registration = %d %s", rec.Code, rec.Body.String())
	}
	var checklist map[string]ledger.RegistrationStep
	decodeBody(t, rec, &checklist)
	if step := checklist["ein"]; !step.Done || step.Doer != ledger.DoerService {
		t.Fatalf("ein step = %+v", step)
	}
}

func TestRecommendEndpoints(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodGet, "/v1/recommend/entity?profit=for-profit&fundraising=bootstrap", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("entity = %d", rec.Code)
	}
	var entity struct {
		Entity idea.EntityType `json:"entity"`
	}
	decodeBody(t, rec, &entity)
	if entity.Entity != idea.EntityLLC {
		t.Fatalf("entity = %q", entity.Entity)
	}

	rec = doJSON(t, server, http.MethodGet, "/v1/recommend/eligibility?status=h-1b", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("eligibility = %d", rec.Code)
	}
	var eligibility idea.Eligibility
	decodeBody(t, rec, &eligibility)
	if eligibility.Status != idea.StatusH1B || eligibility.CanWork != idea.PermissionConditional {
		t.Fatalf("eligibility = %+v", eligibility)
	}

	rec = doJSON(t, server, http.MethodGet, "/v1/recommend/paths?status=f-1", nil, nil)
	var paths struct {
		Paths []idea.LegalPath `json:"paths"`
	}
	decodeBody(t, rec, &paths)
	if len(paths.Paths) != 4 {
		t.Fatalf("f-1 paths = %d", len(paths.Paths))
	}

	rec = doJSON(t, server, http.MethodGet, "/v1/recommend/guidance?status=us-citizen", nil, nil)
	var guidance idea.Guidance
	decodeBody(t, rec, &guidance)
	if guidance.Title == "" {
		t.Fatal("guidance missing title")
	}

	if rec := doJSON(t, server, http.MethodGet, "/v1/recommend/eligibility", nil, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("eligibility without inputs = %d", rec.Code)
	}
}

func TestIdeasSaveLoadShareRoundTrip(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)
	owner := map[string]string{"X-Owner-ID": "owner-a"}

	// Saving an empty session conflicts.
	if rec := doJSON(t, server, http.MethodPost, "/v1/ideas", map[string]string{"session_id": id}, owner); rec.Code != http.StatusConflict {
		t.Fatalf("empty save = %d", rec.Code)
	}
	// The owner header is required.
	if rec := doJSON(t, server, http.MethodPost, "/v1/ideas", map[string]string{"session_id": id}, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("ownerless save = %d", rec.Code)
	}

	if rec := doJSON(t, server, http.MethodPost, "/v1/analyze", map[string]interface{}{
		"session_id": id, "idea_snapshot": intakeSnapshot,
	}, nil); rec.Code != http.StatusOK {
		t.Fatalf("analyze = %d", rec.Code)
	}
	doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/proceed", map[string]string{"intent": "yes"}, nil)
	doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/step", map[string]int{"step": 2}, nil)

	rec := doJSON(t, server, http.MethodPost, "/v1/ideas", map[string]string{"session_id": id}, owner)
	if rec.Code != http.StatusOK {
		t.Fatalf("save = %d %s", rec.Code, rec.Body.String())
	}
	var saved struct {
		ID       string `json:"id"`
		IdeaName string `json:"idea_name"`
	}
	decodeBody(t, rec, &saved)
	if saved.ID == "" || saved.IdeaName != intakeSnapshot.IdeaName {
		t.Fatalf("saved = %+v", saved)
	}

	rec = doJSON(t, server, http.MethodGet, "/v1/ideas", nil, owner)
	var listing struct {
		Ideas []json.RawMessage `json:"ideas"`
	}
	decodeBody(t, rec, &listing)
	if len(listing.Ideas) != 1 {
		t.Fatalf("listing = %d ideas", len(listing.Ideas))
	}

	// Load into a fresh session: state and derived view come back.
	fresh := createSession(t, server)
	rec = doJSON(t, server, http.MethodPost, fmt.Sprintf("/v1/ideas/%s/load", saved.ID), map[string]string{"session_id": fresh}, owner)
	if rec.Code != http.StatusOK {
		t.Fatalf("load = %d %s", rec.Code, rec.Body.String())
	}
	var loaded struct {
		View   wizard.View           `json:"view"`
		Ledger ledger.DecisionLedger `json:"ledger"`
	}
	decodeBody(t, rec, &loaded)
	if loaded.View != wizard.ViewExecutionJourney {
		t.Fatalf("loaded view = %q", loaded.View)
	}
	if loaded.Ledger.CurrentStep != 2 || loaded.Ledger.IdeaSnapshot == nil {
		t.Fatalf("loaded ledger = %+v", loaded.Ledger)
	}

	// Share, then read the share back without an owner.
	rec = doJSON(t, server, http.MethodPost, fmt.Sprintf("/v1/ideas/%s/share", saved.ID), nil, owner)
	if rec.Code != http.StatusOK {
		t.Fatalf("share = %d %s", rec.Code, rec.Body.String())
	}
	var share struct {
		ShareID string `json:"share_id"`
	}
	decodeBody(t, rec, &share)
	rec = doJSON(t, server, http.MethodGet, "/v1/shared/"+share.ShareID, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("shared get = %d", rec.Code)
	}

	// Cross-owner access misses; the owner can delete.
	other := map[string]string{"X-Owner-ID": "owner-b"}
	if rec := doJSON(t, server, http.MethodDelete, "/v1/ideas/"+saved.ID, nil, other); rec.Code != http.StatusNotFound {
		t.Fatalf("cross-owner delete = %d", rec.Code)
	}
	if rec := doJSON(t, server, http.MethodDelete, "/v1/ideas/"+saved.ID, nil, owner); rec.Code != http.StatusOK {
		t.Fatalf("delete = %d", rec.Code)
	}
}

func TestVentureScaleScenario(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	// Intake and analysis: a venture-scale idea gets a yes verdict.
	rec := doJSON(t, server, http.MethodPost, "/v1/analyze", map[string]interface{}{
		"session_id": id, "idea_snapshot": intakeSnapshot,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("analyze = %d", rec.Code)
	}
	var result idea.AnalysisResult
	decodeBody(t, rec, &result)
	if result.Decision != idea.VerdictYes {
		t.Fatalf("verdict = %q", result.Decision)
	}

	// Proceed and open company setup.
	doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/proceed", map[string]string{"intent": "yes"}, nil)
	rec = doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/gate", map[string]string{
		"section": "company-setup", "choice": "step-by-step",
	}, nil)
	var entry wizard.Entry
	decodeBody(t, rec, &entry)
	if entry.Step != wizard.StepTargetCustomer {
		t.Fatalf("company setup opened at %q", entry.Step)
	}

	// Target customer, profit type, fundraising: each answer patched into
	// the ledger, each advance landing on the expected next step.
	customer := idea.CustomerB2B
	doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/ledger", ledger.Patch{TargetCustomer: &customer}, nil)
	rec = doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/nav", map[string]string{"action": "advance", "section": "company-setup"}, nil)
	decodeBody(t, rec, &entry)
	if entry.Step != wizard.StepProfitType {
		t.Fatalf("step = %q, want profit-type", entry.Step)
	}

	profit := idea.ProfitForProfit
	doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/ledger", ledger.Patch{ProfitType: &profit}, nil)
	rec = doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/nav", map[string]string{"action": "advance", "section": "company-setup"}, nil)
	decodeBody(t, rec, &entry)
	if entry.Step != wizard.StepFundraising {
		t.Fatalf("step = %q, want fundraising", entry.Step)
	}

	fundraising := idea.FundraisingVenture
	doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/ledger", ledger.Patch{FundraisingIntent: &fundraising}, nil)
	rec = doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/nav", map[string]string{"action": "advance", "section": "company-setup"}, nil)
	decodeBody(t, rec, &entry)
	if entry.Step != wizard.StepEntityType {
		t.Fatalf("step = %q, want entity-type", entry.Step)
	}

	// The recommendation for this path is a Delaware C-Corp; accept it.
	rec = doJSON(t, server, http.MethodGet, "/v1/recommend/entity?session_id="+id, nil, nil)
	var recommendation struct {
		Entity idea.EntityType `json:"entity"`
	}
	decodeBody(t, rec, &recommendation)
	if recommendation.Entity != idea.EntityDelawareCCorp {
		t.Fatalf("recommended entity = %q", recommendation.Entity)
	}
	entity := recommendation.Entity
	doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/ledger", ledger.Patch{EntityType: &entity}, nil)

	// Advancing enters the C-Corp sub-wizard rather than completing the
	// section.
	rec = doJSON(t, server, http.MethodPost, "/v1/session/"+id+"/nav", map[string]string{"action": "advance", "section": "company-setup"}, nil)
	decodeBody(t, rec, &entry)
	if entry.Done {
		t.Fatal("section completed instead of entering the c-corp sub-wizard")
	}
	if entry.Step != wizard.StepCCorpPreIncorporation {
		t.Fatalf("step = %q, want ccorp-pre-incorporation", entry.Step)
	}

	rec = doJSON(t, server, http.MethodGet, "/v1/session/"+id+"/ledger", nil, nil)
	var l ledger.DecisionLedger
	decodeBody(t, rec, &l)
	if l.EntityType != idea.EntityDelawareCCorp {
		t.Fatalf("ledger entity = %q", l.EntityType)
	}
}

func TestLogsEndpoint(t *testing.T) {
	server := newTestServer(t)
	createSession(t, server)
	rec := doJSON(t, server, http.MethodGet, "/v1/logs", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logs = %d", rec.Code)
	}
	var logs struct {
		Entries []json.RawMessage `json:"entries"`
	}
	decodeBody(t, rec, &logs)
	if len(logs.Entries) == 0 {
		t.Fatal("log ring empty after requests")
	}
}
