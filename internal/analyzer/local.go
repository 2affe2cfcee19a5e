// File path: internal/analyzer/local.go
package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/venturelabs/venturelens/internal/common/telemetry"
	"github.com/venturelabs/venturelens/internal/idea"
)

// Local generates deterministic analysis from the snapshot alone. It keeps
// the full wizard, including tests, working with no API key: same input,
// same output, every time.
type Local struct{}

func NewLocal() *Local { return &Local{} }

func (a *Local) Analyze(ctx context.Context, snapshot idea.Snapshot) (result *idea.AnalysisResult, err error) {
	start := time.Now()
	defer func() { telemetry.RecordAnalyze(start, err) }()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	return a.generate(snapshot), nil
}

// generate is the uncounted core shared by Analyze and RegenerateSection,
// so a regeneration shows up in the regenerate counters only.
func (a *Local) generate(snapshot idea.Snapshot) *idea.AnalysisResult {
	decision := idea.VerdictConditional
	if snapshot.ScaleIntent == idea.ScaleVenture || snapshot.ScaleIntent == idea.ScaleNonProfit {
		decision = idea.VerdictYes
	}
	if strings.TrimSpace(snapshot.Problem) == "" {
		decision = idea.VerdictNo
	}
	profit := idea.ProfitForProfit
	entityHint := idea.EntityDelawareCCorp
	if snapshot.ScaleIntent == idea.ScaleNonProfit {
		profit = idea.ProfitNonProfit
		entityHint = idea.EntityNonProfit
	} else if snapshot.ScaleIntent == idea.ScaleLifestyle {
		entityHint = idea.EntityLLC
	}
	name := strings.TrimSpace(snapshot.IdeaName)
	if name == "" {
		name = "your idea"
	}
	return &idea.AnalysisResult{
		Decision: decision,
		Rationale: idea.Rationale{
			Summary:         fmt.Sprintf("Offline assessment of %s based on the intake answers alone.", name),
			MarketSize:      60,
			Feasibility:     65,
			Differentiation: 50,
			Risk:            45,
		},
		Competitors: idea.CompetitorSet{
			Direct: []idea.Competitor{
				{Name: "Incumbent A", Description: "Established player in the same space", Strength: "distribution", Weakness: "slow to ship"},
			},
			Indirect:    []idea.Competitor{{Name: "Spreadsheets", Description: "The manual workaround most people use today"}},
			Positioning: "Win on focus: solve the one workflow incumbents treat as an afterthought.",
		},
		ValueAnalysis: idea.ValueAnalysis{
			Proposition: fmt.Sprintf("%s saves its audience meaningful time on: %s", name, trimTo(snapshot.Problem, 120)),
			Metrics: []idea.ValueMetric{
				{Name: "weekly active users", Target: "100 in 90 days", Rationale: "proves repeat pull, not curiosity"},
				{Name: "retention at week 4", Target: "40%", Rationale: "floor for a habit-forming tool"},
			},
		},
		Pitch: idea.PitchContent{
			Elevator:  fmt.Sprintf("%s: %s", name, trimTo(snapshot.Solution, 140)),
			OneLiner:  fmt.Sprintf("%s for %s", name, trimTo(snapshot.Audience, 60)),
			KeyPoints: []string{"clear wedge problem", "founder proximity to the audience", "fast path to first users"},
		},
		ProfitStructure: idea.ProfitStructure{
			Recommendation: profit,
			Rationale:      "Derived from the declared scale intent.",
			EntityHint:     entityHint,
		},
		Timeline: idea.Timeline{
			Horizon: "90 days",
			Tasks: []idea.TimelineTask{
				{Title: "Talk to 20 target users", Duration: "2 weeks", Order: 1},
				{Title: "Ship a scoped prototype", Duration: "4 weeks", Order: 2},
				{Title: "Run a paid pilot", Duration: "4 weeks", Order: 3},
			},
		},
		Pivots: []idea.Pivot{
			{Title: "Narrow the audience", Description: "Pick the single segment with the sharpest pain and ignore the rest for now."},
		},
	}
}

func (a *Local) RegenerateSection(ctx context.Context, section idea.Section, snapshot idea.Snapshot, current *idea.AnalysisResult, customInstructions string) (result *idea.AnalysisResult, err error) {
	defer func() { telemetry.RecordRegenerate(string(section), err) }()
	if !idea.KnownSection(section) {
		return nil, fmt.Errorf("%w: unknown section %q", ErrRegenerationFailed, section)
	}
	if current == nil {
		return nil, fmt.Errorf("%w: no analysis to regenerate", ErrRegenerationFailed)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegenerationFailed, err)
	}
	fresh := a.generate(snapshot)
	var replacement interface{}
	switch section {
	case idea.SectionCompetitors:
		replacement = fresh.Competitors
	case idea.SectionValue:
		replacement = fresh.ValueAnalysis
	case idea.SectionPitch:
		replacement = fresh.Pitch
	case idea.SectionDeck:
		slides, deckErr := a.GeneratePitchDeck(ctx, snapshot, current, "", "")
		if deckErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrRegenerationFailed, deckErr)
		}
		replacement = slides
	case idea.SectionCompany:
		replacement = fresh.ProfitStructure
	case idea.SectionTimeline:
		replacement = fresh.Timeline
	}
	next := *current
	if !next.ApplySection(section, replacement) {
		return nil, fmt.Errorf("%w: section %q not applicable", ErrRegenerationFailed, section)
	}
	return &next, nil
}

func (a *Local) GeneratePitchDeck(ctx context.Context, snapshot idea.Snapshot, analysis *idea.AnalysisResult, entity idea.EntityType, fundraising idea.FundraisingIntent) ([]idea.Slide, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeckFailed, err)
	}
	name := strings.TrimSpace(snapshot.IdeaName)
	if name == "" {
		name = "Untitled"
	}
	proposition := ""
	if analysis != nil {
		proposition = analysis.ValueAnalysis.Proposition
	}
	return []idea.Slide{
		{ID: "title", Title: name, Subtitle: trimTo(snapshot.Solution, 80), Bullets: []string{}},
		{ID: "problem", Title: "Problem", Bullets: []string{trimTo(snapshot.Problem, 120)}},
		{ID: "solution", Title: "Solution", Bullets: []string{trimTo(snapshot.Solution, 120)}},
		{ID: "market", Title: "Market", Bullets: []string{trimTo(snapshot.Audience, 120)}},
		{ID: "value", Title: "Why now", Bullets: []string{trimTo(proposition, 120)}},
		{ID: "ask", Title: "The ask", Bullets: []string{fmt.Sprintf("Entity: %s", orDefault(string(entity), "TBD")), fmt.Sprintf("Path: %s", orDefault(string(fundraising), "TBD"))}},
	}, nil
}

func (a *Local) RegenerateSlide(ctx context.Context, snapshot idea.Snapshot, analysis *idea.AnalysisResult, entity idea.EntityType, fundraising idea.FundraisingIntent, slideIndex int) (idea.Slide, error) {
	if analysis == nil || slideIndex < 0 || slideIndex >= len(analysis.Deck) {
		return idea.Slide{}, fmt.Errorf("%w: no slide at index %d", ErrDeckFailed, slideIndex)
	}
	deck, err := a.GeneratePitchDeck(ctx, snapshot, analysis, entity, fundraising)
	if err != nil {
		return idea.Slide{}, err
	}
	if slideIndex >= len(deck) {
		return idea.Slide{}, fmt.Errorf("%w: no slide at index %d", ErrDeckFailed, slideIndex)
	}
	return deck[slideIndex], nil
}

func trimTo(s string, limit int) string {
	cleaned := strings.TrimSpace(s)
	runes := []rune(cleaned)
	if len(runes) <= limit {
		return cleaned
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
