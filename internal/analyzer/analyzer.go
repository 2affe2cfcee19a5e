// File path: internal/analyzer/analyzer.go
//
// Package analyzer is the boundary to the idea-analysis backend. The
// wizard core only sees the IdeaAnalyzer interface and its sentinel
// errors; whether answers come from OpenAI or the deterministic offline
// generator is a wiring decision made at startup.
package analyzer

import (
	"context"
	"errors"

	"github.com/venturelabs/venturelens/internal/idea"
	"github.com/venturelabs/venturelens/internal/llm"
)

var (
	// ErrAnalysisFailed covers transport, rate-limit, and malformed-JSON
	// failures of a full analysis run. The ledger is never mutated on this
	// path; callers surface a retry affordance.
	ErrAnalysisFailed = errors.New("idea analysis failed")
	// ErrRegenerationFailed is the per-section variant; the prior analysis
	// content stays untouched.
	ErrRegenerationFailed = errors.New("section regeneration failed")
	// ErrDeckFailed covers pitch-deck generation.
	ErrDeckFailed = errors.New("pitch deck generation failed")
)

// IdeaAnalyzer produces structured analysis for an idea snapshot.
//
// RegenerateSection returns a new result in which only the named section
// differs from current; every other sub-object is carried over untouched.
// RegenerateSlide is the same contract one level down: it rewrites the
// deck slide at slideIndex and nothing else.
type IdeaAnalyzer interface {
	Analyze(ctx context.Context, snapshot idea.Snapshot) (*idea.AnalysisResult, error)
	RegenerateSection(ctx context.Context, section idea.Section, snapshot idea.Snapshot, current *idea.AnalysisResult, customInstructions string) (*idea.AnalysisResult, error)
	GeneratePitchDeck(ctx context.Context, snapshot idea.Snapshot, analysis *idea.AnalysisResult, entity idea.EntityType, fundraising idea.FundraisingIntent) ([]idea.Slide, error)
	RegenerateSlide(ctx context.Context, snapshot idea.Snapshot, analysis *idea.AnalysisResult, entity idea.EntityType, fundraising idea.FundraisingIntent, slideIndex int) (idea.Slide, error)
}

// New picks the LLM-backed analyzer when the provider has a real backend
// and the deterministic generator otherwise.
func New(provider llm.Provider) IdeaAnalyzer {
	if provider == nil || provider.Name() == "local" {
		return NewLocal()
	}
	return NewLLM(provider)
}
