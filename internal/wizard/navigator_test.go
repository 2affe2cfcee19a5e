// File path: internal/wizard/navigator_test.go
package wizard

import (
	"errors"
	"testing"

	"github.com/venturelabs/venturelens/internal/blob"
	"github.com/venturelabs/venturelens/internal/idea"
	"github.com/venturelabs/venturelens/internal/ledger"
)

func newTestNavigator(t *testing.T) (*Navigator, *ledger.Store) {
	t.Helper()
	blobs, err := blob.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("open blob store: %v", err)
	}
	store, err := ledger.Open(blobs, "session-nav")
	if err != nil {
		t.Fatalf("open ledger store: %v", err)
	}
	return NewNavigator(store), store
}

func TestDeriveView(t *testing.T) {
	l := ledger.Defaults()
	if got := DeriveView(l); got != ViewIdeaInput {
		t.Fatalf("empty ledger view = %q, want idea-input", got)
	}

	snapshot := idea.Snapshot{IdeaName: "Acme", Problem: "p", Solution: "s"}
	l.IdeaSnapshot = &snapshot
	if got := DeriveView(l); got != ViewIdeaInput {
		t.Fatalf("snapshot without analysis view = %q, want idea-input", got)
	}

	l.Analysis = &idea.AnalysisResult{Decision: idea.VerdictYes}
	if got := DeriveView(l); got != ViewVerdictSummary {
		t.Fatalf("unanswered verdict view = %q, want verdict-summary", got)
	}

	l.ProceedIntent = ledger.ProceedYes
	if got := DeriveView(l); got != ViewExecutionJourney {
		t.Fatalf("accepted verdict view = %q, want execution-journey", got)
	}

	l.ProceedIntent = ledger.ProceedNo
	if got := DeriveView(l); got != ViewIdeaInput {
		t.Fatalf("rejected verdict view = %q, want idea-input", got)
	}
}

func TestGateAcceptIsStickySkipIsNot(t *testing.T) {
	nav, store := newTestNavigator(t)

	// First entry shows the gate.
	entry, err := nav.EnterSection(ledger.SectionFunding)
	if err != nil {
		t.Fatalf("enter section: %v", err)
	}
	if !entry.ShowGate {
		t.Fatalf("first entry should show gate, got %+v", entry)
	}

	// Skipping records nothing: the gate shows again next time.
	if _, err := nav.Gate(ledger.SectionFunding, GateSkipped); err != nil {
		t.Fatalf("gate skip: %v", err)
	}
	entry, err = nav.EnterSection(ledger.SectionFunding)
	if err != nil {
		t.Fatalf("enter after skip: %v", err)
	}
	if !entry.ShowGate {
		t.Fatal("skip must not bypass the gate on re-entry")
	}

	// Accepting unlocks and lands on the first step.
	entry, err = nav.Gate(ledger.SectionFunding, GateStepByStep)
	if err != nil {
		t.Fatalf("gate accept: %v", err)
	}
	if entry.Step != StepFundingReadiness {
		t.Fatalf("gate accept landed on %q, want readiness", entry.Step)
	}
	state := store.Get().UnlockedSections[ledger.SectionFunding]
	if !state.Unlocked || state.DetailLevel != ledger.DetailStepByStep {
		t.Fatalf("section state = %+v after accept", state)
	}

	// Accept is sticky: re-entry bypasses the gate.
	entry, err = nav.EnterSection(ledger.SectionFunding)
	if err != nil {
		t.Fatalf("enter after accept: %v", err)
	}
	if entry.ShowGate {
		t.Fatal("accepted gate should not show again")
	}
	if entry.Step != StepFundingReadiness {
		t.Fatalf("re-entry landed on %q", entry.Step)
	}
}

func TestGateUnknownChoice(t *testing.T) {
	nav, _ := newTestNavigator(t)
	if _, err := nav.Gate(ledger.SectionFunding, GateChoice("maybe")); err == nil {
		t.Fatal("expected error for unknown gate choice")
	}
	if _, err := nav.Gate(ledger.SectionKey("nonsense"), GateStepByStep); !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("err = %v, want unknown section", err)
	}
}

func TestAdvanceRequiresGate(t *testing.T) {
	nav, _ := newTestNavigator(t)
	if _, err := nav.Advance(ledger.SectionRegistration); !errors.Is(err, ErrSectionGated) {
		t.Fatalf("err = %v, want section gated", err)
	}
	if _, err := nav.Jump(ledger.SectionRegistration, StepRegChecklist); !errors.Is(err, ErrSectionGated) {
		t.Fatalf("err = %v, want section gated", err)
	}
}

func TestCompanyFlowSkipsAndCCorpDetour(t *testing.T) {
	nav, store := newTestNavigator(t)

	if _, err := nav.Gate(ledger.SectionCompanySetup, GateStepByStep); err != nil {
		t.Fatalf("gate accept: %v", err)
	}

	// Non-profit: the fundraising step disappears and a 501(c)(3) choice
	// makes entity-type terminal.
	profit := idea.ProfitNonProfit
	entity := idea.EntityNonProfit
	store.Update(ledger.Patch{ProfitType: &profit, EntityType: &entity})

	entry, err := nav.Advance(ledger.SectionCompanySetup)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if entry.Step != StepProfitType {
		t.Fatalf("advance landed on %q", entry.Step)
	}
	entry, err = nav.Advance(ledger.SectionCompanySetup)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if entry.Step != StepEntityType {
		t.Fatalf("advance from profit-type landed on %q, want entity-type (fundraising skipped)", entry.Step)
	}
	entry, err = nav.Advance(ledger.SectionCompanySetup)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !entry.Done {
		t.Fatalf("entity-type should be terminal for a non-profit, got %+v", entry)
	}

	// Switching to a for-profit Delaware C-Corp surfaces the detour steps.
	profit = idea.ProfitForProfit
	entity = idea.EntityDelawareCCorp
	store.Update(ledger.Patch{ProfitType: &profit, EntityType: &entity})

	entry, err = nav.Advance(ledger.SectionCompanySetup)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if entry.Step != StepCCorpPreIncorporation {
		t.Fatalf("advance from entity-type landed on %q, want ccorp detour", entry.Step)
	}
	for _, want := range []StepID{StepCCorpIncorporation, StepCCorpEquity, StepCCorpEINBanking} {
		entry, err = nav.Advance(ledger.SectionCompanySetup)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if entry.Step != want {
			t.Fatalf("detour step = %q, want %q", entry.Step, want)
		}
	}
	entry, err = nav.Advance(ledger.SectionCompanySetup)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !entry.Done {
		t.Fatalf("detour end should complete the section, got %+v", entry)
	}
}

func TestMonotonicJumpClampsToHighWater(t *testing.T) {
	nav, _ := newTestNavigator(t)

	if _, err := nav.Gate(ledger.SectionCompanySetup, GateStepByStep); err != nil {
		t.Fatalf("gate accept: %v", err)
	}
	// Only the first step has been reached; a jump past the high-water
	// mark clamps instead of failing.
	entry, err := nav.Jump(ledger.SectionCompanySetup, StepEntityType)
	if err != nil {
		t.Fatalf("jump: %v", err)
	}
	if entry.Step != StepTargetCustomer {
		t.Fatalf("jump past high water landed on %q, want clamp to target-customer", entry.Step)
	}

	if _, err := nav.Jump(ledger.SectionCompanySetup, StepID("nonsense")); !errors.Is(err, ErrUnknownStep) {
		t.Fatalf("err = %v, want unknown step", err)
	}
}

func TestFundingFlowJumpsFreelyAndEscapes(t *testing.T) {
	nav, _ := newTestNavigator(t)

	if _, err := nav.Gate(ledger.SectionFunding, GateChecklist); err != nil {
		t.Fatalf("gate accept: %v", err)
	}
	// Non-monotonic: jumping straight to the last step works.
	entry, err := nav.Jump(ledger.SectionFunding, StepFundingPitchDeck)
	if err != nil {
		t.Fatalf("jump: %v", err)
	}
	if entry.Step != StepFundingPitchDeck {
		t.Fatalf("free jump landed on %q", entry.Step)
	}

	entry, err = nav.Escape(ledger.SectionFunding)
	if err != nil {
		t.Fatalf("escape: %v", err)
	}
	if entry.Step != StepFundingEducation {
		t.Fatalf("escape landed on %q, want education", entry.Step)
	}

	// Only the funding flow has an escape step.
	if _, err := nav.Escape(ledger.SectionTimeline); !errors.Is(err, ErrUnknownStep) {
		t.Fatalf("err = %v, want unknown step", err)
	}
}

func TestLegalPathsSkippedForUnrestrictedFounder(t *testing.T) {
	nav, store := newTestNavigator(t)

	status := idea.StatusUSCitizen
	store.Update(ledger.Patch{FounderVisaStatus: &status})
	if _, err := nav.Gate(ledger.SectionLegalVisa, GateStepByStep); err != nil {
		t.Fatalf("gate accept: %v", err)
	}

	visible := legalFlow.Visible(store.Get())
	for _, step := range visible {
		if step == StepLegalPaths {
			t.Fatal("legal-paths step visible for a citizen")
		}
	}

	restricted := idea.StatusF1
	store.Update(ledger.Patch{FounderVisaStatus: &restricted, VisaEligibility: nil})
	found := false
	for _, step := range legalFlow.Visible(store.Get()) {
		if step == StepLegalPaths {
			found = true
		}
	}
	if !found {
		t.Fatal("legal-paths step missing for an F-1 founder")
	}
}

func TestEligibilityMemoizedOnArrival(t *testing.T) {
	nav, store := newTestNavigator(t)

	status := idea.StatusH1B
	store.Update(ledger.Patch{FounderVisaStatus: &status})
	if _, err := nav.Gate(ledger.SectionLegalVisa, GateStepByStep); err != nil {
		t.Fatalf("gate accept: %v", err)
	}
	if store.Get().VisaEligibility != nil {
		t.Fatal("eligibility cached before reaching the analysis step")
	}

	entry, err := nav.Jump(ledger.SectionLegalVisa, StepEligibilityAnalysis)
	if err != nil {
		t.Fatalf("jump: %v", err)
	}
	// Monotonic clamp: walk forward instead.
	for entry.Step != StepEligibilityAnalysis {
		entry, err = nav.Advance(ledger.SectionLegalVisa)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if entry.Done {
			t.Fatal("section ended before reaching eligibility analysis")
		}
	}

	cached := store.Get().VisaEligibility
	if cached == nil {
		t.Fatal("eligibility not cached on arrival")
	}
	if cached.Status != idea.StatusH1B {
		t.Fatalf("cached status = %q", cached.Status)
	}

	// The cache is written once; a different status later does not
	// overwrite what the user was shown.
	other := idea.StatusTN
	store.Update(ledger.Patch{FounderVisaStatus: &other})
	if _, err := nav.Jump(ledger.SectionLegalVisa, StepEligibilityAnalysis); err != nil {
		t.Fatalf("jump: %v", err)
	}
	if got := store.Get().VisaEligibility; got.Status != idea.StatusH1B {
		t.Fatalf("memoized eligibility overwritten: %q", got.Status)
	}
}

func TestSectionPositionSavedAcrossReentry(t *testing.T) {
	nav, _ := newTestNavigator(t)

	if _, err := nav.Gate(ledger.SectionFunding, GateStepByStep); err != nil {
		t.Fatalf("gate accept: %v", err)
	}
	if _, err := nav.Advance(ledger.SectionFunding); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if _, err := nav.Advance(ledger.SectionFunding); err != nil {
		t.Fatalf("advance: %v", err)
	}

	entry, err := nav.EnterSection(ledger.SectionFunding)
	if err != nil {
		t.Fatalf("re-enter: %v", err)
	}
	if entry.Step != StepFundingChecklist {
		t.Fatalf("re-entry landed on %q, want saved position funding-checklist", entry.Step)
	}
}

func TestWorkAuthorizedCofounder(t *testing.T) {
	l := ledger.Defaults()
	l.Cofounders = []idea.Cofounder{
		{ID: "a", VisaStatus: idea.StatusF1},
		{ID: "b", VisaStatus: idea.StatusL1},
	}
	if WorkAuthorizedCofounder(l) {
		t.Fatal("no cofounder can work unconditionally")
	}
	l.Cofounders = append(l.Cofounders, idea.Cofounder{ID: "c", VisaStatus: idea.StatusGreenCard})
	if !WorkAuthorizedCofounder(l) {
		t.Fatal("green-card cofounder should count as work-authorized")
	}
}
