// File path: internal/analyzer/llm.go
package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/venturelabs/venturelens/internal/common"
	"github.com/venturelabs/venturelens/internal/common/telemetry"
	"github.com/venturelabs/venturelens/internal/idea"
	"github.com/venturelabs/venturelens/internal/llm"
)

// LLM asks the chat provider for strict-JSON analysis payloads.
type LLM struct {
	provider llm.Provider
}

func NewLLM(provider llm.Provider) *LLM {
	return &LLM{provider: provider}
}

const analysisSystemPrompt = "You are a pragmatic startup analyst. " +
	"Evaluate the idea honestly: a weak idea gets decision \"no\" or \"conditional\" with pivots. " +
	"Respond with a single JSON object and nothing else, matching exactly the schema the user provides. " +
	"All scores are integers 0-100."

func (a *LLM) Analyze(ctx context.Context, snapshot idea.Snapshot) (result *idea.AnalysisResult, err error) {
	start := time.Now()
	defer func() { telemetry.RecordAnalyze(start, err) }()
	logger := common.Logger()
	payload, marshalErr := json.Marshal(snapshot)
	if marshalErr != nil {
		return nil, fmt.Errorf("%w: encode snapshot: %v", ErrAnalysisFailed, marshalErr)
	}
	prompt := fmt.Sprintf(
		"Analyze this startup idea and return JSON with this shape:\n%s\n\nIdea:\n%s",
		analysisSchema, payload,
	)
	raw, chatErr := a.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: analysisSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if chatErr != nil {
		logger.Error("analyzer: analysis call failed", "error", chatErr)
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, chatErr)
	}
	var parsed idea.AnalysisResult
	if decodeErr := decodeStrict(raw, &parsed); decodeErr != nil {
		logger.Error("analyzer: analysis response unparseable", "error", decodeErr)
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, decodeErr)
	}
	if parsed.Decision == "" {
		return nil, fmt.Errorf("%w: response missing decision", ErrAnalysisFailed)
	}
	logger.Info("analyzer: analysis complete", "idea", snapshot.IdeaName, "decision", string(parsed.Decision))
	return &parsed, nil
}

func (a *LLM) RegenerateSection(ctx context.Context, section idea.Section, snapshot idea.Snapshot, current *idea.AnalysisResult, customInstructions string) (result *idea.AnalysisResult, err error) {
	defer func() { telemetry.RecordRegenerate(string(section), err) }()
	if !idea.KnownSection(section) {
		return nil, fmt.Errorf("%w: unknown section %q", ErrRegenerationFailed, section)
	}
	if current == nil {
		return nil, fmt.Errorf("%w: no analysis to regenerate", ErrRegenerationFailed)
	}
	logger := common.Logger()
	payload, marshalErr := json.Marshal(snapshot)
	if marshalErr != nil {
		return nil, fmt.Errorf("%w: encode snapshot: %v", ErrRegenerationFailed, marshalErr)
	}
	prompt := fmt.Sprintf(
		"Regenerate only the %q section of a startup analysis. Return JSON with this shape:\n%s\n\nIdea:\n%s",
		section, sectionSchemas[section], payload,
	)
	if strings.TrimSpace(customInstructions) != "" {
		prompt += "\n\nAdditional instructions: " + strings.TrimSpace(customInstructions)
	}
	raw, chatErr := a.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: analysisSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if chatErr != nil {
		logger.Error("analyzer: regeneration call failed", "section", string(section), "error", chatErr)
		return nil, fmt.Errorf("%w: %v", ErrRegenerationFailed, chatErr)
	}
	replacement, decodeErr := decodeSection(section, raw)
	if decodeErr != nil {
		logger.Error("analyzer: regeneration response unparseable", "section", string(section), "error", decodeErr)
		return nil, fmt.Errorf("%w: %v", ErrRegenerationFailed, decodeErr)
	}
	next := *current
	if !next.ApplySection(section, replacement) {
		return nil, fmt.Errorf("%w: section %q not applicable", ErrRegenerationFailed, section)
	}
	logger.Info("analyzer: section regenerated", "section", string(section))
	return &next, nil
}

func (a *LLM) GeneratePitchDeck(ctx context.Context, snapshot idea.Snapshot, analysis *idea.AnalysisResult, entity idea.EntityType, fundraising idea.FundraisingIntent) ([]idea.Slide, error) {
	logger := common.Logger()
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: encode snapshot: %v", ErrDeckFailed, err)
	}
	summary := ""
	if analysis != nil {
		summary = analysis.Rationale.Summary
	}
	prompt := fmt.Sprintf(
		"Write a 10-slide investor pitch deck as a JSON array of slides "+
			"{id, title, subtitle, bullets[], notes}. Entity: %s. Fundraising: %s.\n"+
			"Analysis summary: %s\nIdea:\n%s",
		entity, fundraising, summary, snapshotJSON,
	)
	raw, err := a.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: analysisSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		logger.Error("analyzer: deck call failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrDeckFailed, err)
	}
	var slides []idea.Slide
	if err := decodeStrict(raw, &slides); err != nil {
		logger.Error("analyzer: deck response unparseable", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrDeckFailed, err)
	}
	if len(slides) == 0 {
		return nil, fmt.Errorf("%w: empty deck", ErrDeckFailed)
	}
	return slides, nil
}

func (a *LLM) RegenerateSlide(ctx context.Context, snapshot idea.Snapshot, analysis *idea.AnalysisResult, entity idea.EntityType, fundraising idea.FundraisingIntent, slideIndex int) (idea.Slide, error) {
	if analysis == nil || slideIndex < 0 || slideIndex >= len(analysis.Deck) {
		return idea.Slide{}, fmt.Errorf("%w: no slide at index %d", ErrDeckFailed, slideIndex)
	}
	logger := common.Logger()
	current := analysis.Deck[slideIndex]
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return idea.Slide{}, fmt.Errorf("%w: encode snapshot: %v", ErrDeckFailed, err)
	}
	currentJSON, err := json.Marshal(current)
	if err != nil {
		return idea.Slide{}, fmt.Errorf("%w: encode slide: %v", ErrDeckFailed, err)
	}
	prompt := fmt.Sprintf(
		"Rewrite one slide of an investor pitch deck. Return a single JSON "+
			"object {id, title, subtitle, bullets[], notes}, keeping id %q. "+
			"Entity: %s. Fundraising: %s.\nCurrent slide:\n%s\nIdea:\n%s",
		current.ID, entity, fundraising, currentJSON, snapshotJSON,
	)
	raw, err := a.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: analysisSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		logger.Error("analyzer: slide call failed", "slide", slideIndex, "error", err)
		return idea.Slide{}, fmt.Errorf("%w: %v", ErrDeckFailed, err)
	}
	var slide idea.Slide
	if err := decodeStrict(raw, &slide); err != nil {
		logger.Error("analyzer: slide response unparseable", "slide", slideIndex, "error", err)
		return idea.Slide{}, fmt.Errorf("%w: %v", ErrDeckFailed, err)
	}
	if slide.Title == "" {
		return idea.Slide{}, fmt.Errorf("%w: slide missing title", ErrDeckFailed)
	}
	if slide.ID == "" {
		slide.ID = current.ID
	}
	return slide, nil
}

// decodeStrict parses a model response as JSON, tolerating a surrounding
// markdown code fence but nothing else.
func decodeStrict(raw string, out interface{}) error {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}
	return json.Unmarshal([]byte(cleaned), out)
}

func decodeSection(section idea.Section, raw string) (interface{}, error) {
	switch section {
	case idea.SectionCompetitors:
		var v idea.CompetitorSet
		err := decodeStrict(raw, &v)
		return v, err
	case idea.SectionValue:
		var v idea.ValueAnalysis
		err := decodeStrict(raw, &v)
		return v, err
	case idea.SectionPitch:
		var v idea.PitchContent
		err := decodeStrict(raw, &v)
		return v, err
	case idea.SectionDeck:
		var v []idea.Slide
		err := decodeStrict(raw, &v)
		return v, err
	case idea.SectionCompany:
		var v idea.ProfitStructure
		err := decodeStrict(raw, &v)
		return v, err
	case idea.SectionTimeline:
		var v idea.Timeline
		err := decodeStrict(raw, &v)
		return v, err
	}
	return nil, fmt.Errorf("unknown section %q", section)
}

const analysisSchema = `{
  "decision": "yes|conditional|no",
  "rationale": {"summary": "...", "market_size": 0, "feasibility": 0, "differentiation": 0, "risk": 0},
  "competitors": {"direct": [{"name": "...", "description": "...", "strength": "...", "weakness": "..."}], "indirect": [], "positioning": "..."},
  "value_analysis": {"proposition": "...", "metrics": [{"name": "...", "target": "...", "rationale": "..."}]},
  "pitch": {"elevator": "...", "one_liner": "...", "key_points": ["..."]},
  "profit_structure": {"recommendation": "for-profit|non-profit|mixed", "rationale": "...", "entity_hint": "delaware-c-corp|llc|non-profit-501c3"},
  "timeline": {"horizon": "...", "tasks": [{"title": "...", "description": "...", "duration": "...", "order": 1}]},
  "pivots": [{"title": "...", "description": "..."}]
}`

var sectionSchemas = map[idea.Section]string{
	idea.SectionCompetitors: `{"direct": [{"name": "...", "description": "...", "strength": "...", "weakness": "..."}], "indirect": [], "positioning": "..."}`,
	idea.SectionValue:       `{"proposition": "...", "metrics": [{"name": "...", "target": "...", "rationale": "..."}]}`,
	idea.SectionPitch:       `{"elevator": "...", "one_liner": "...", "key_points": ["..."]}`,
	idea.SectionDeck:        `[{"id": "...", "title": "...", "subtitle": "...", "bullets": ["..."], "notes": "..."}]`,
	idea.SectionCompany:     `{"recommendation": "for-profit|non-profit|mixed", "rationale": "...", "entity_hint": "delaware-c-corp|llc|non-profit-501c3"}`,
	idea.SectionTimeline:    `{"horizon": "...", "tasks": [{"title": "...", "description": "...", "duration": "...", "order": 1}]}`,
}
