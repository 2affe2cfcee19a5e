// File path: internal/idea/analysis.go
package idea

// Section names one regenerable slice of an AnalysisResult.
type Section string

const (
	SectionCompetitors Section = "competitors"
	SectionValue       Section = "value"
	SectionPitch       Section = "pitch"
	SectionDeck        Section = "deck"
	SectionCompany     Section = "company"
	SectionTimeline    Section = "timeline"
)

// KnownSection reports whether the given name is a regenerable section.
func KnownSection(s Section) bool {
	switch s {
	case SectionCompetitors, SectionValue, SectionPitch, SectionDeck, SectionCompany, SectionTimeline:
		return true
	}
	return false
}

// AnalysisResult is the structured verdict the analyzer returns for an
// idea. It is stored verbatim in the decision ledger and round-trips
// losslessly through persistence.
type AnalysisResult struct {
	Decision        Verdict         `json:"decision"`
	Rationale       Rationale       `json:"rationale"`
	Competitors     CompetitorSet   `json:"competitors"`
	ValueAnalysis   ValueAnalysis   `json:"value_analysis"`
	Pitch           PitchContent    `json:"pitch"`
	ProfitStructure ProfitStructure `json:"profit_structure"`
	Timeline        Timeline        `json:"timeline"`
	Pivots          []Pivot         `json:"pivots,omitempty"`
	Deck            []Slide         `json:"deck,omitempty"`
}

// Rationale carries the scored reasoning behind the decision. Scores are
// 0-100.
type Rationale struct {
	Summary         string `json:"summary"`
	MarketSize      int    `json:"market_size"`
	Feasibility     int    `json:"feasibility"`
	Differentiation int    `json:"differentiation"`
	Risk            int    `json:"risk"`
}

type Competitor struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Strength    string `json:"strength,omitempty"`
	Weakness    string `json:"weakness,omitempty"`
}

type CompetitorSet struct {
	Direct      []Competitor `json:"direct,omitempty"`
	Indirect    []Competitor `json:"indirect,omitempty"`
	Positioning string       `json:"positioning,omitempty"`
}

type ValueMetric struct {
	Name      string `json:"name"`
	Target    string `json:"target,omitempty"`
	Rationale string `json:"rationale,omitempty"`
}

type ValueAnalysis struct {
	Proposition string        `json:"proposition"`
	Metrics     []ValueMetric `json:"metrics,omitempty"`
}

type PitchContent struct {
	Elevator  string   `json:"elevator"`
	OneLiner  string   `json:"one_liner,omitempty"`
	KeyPoints []string `json:"key_points,omitempty"`
}

// ProfitStructure is the analyzer's profit-model recommendation. The
// recommendation field is authoritative for the wizard's profit-type
// default.
type ProfitStructure struct {
	Recommendation ProfitType `json:"recommendation"`
	Rationale      string     `json:"rationale,omitempty"`
	EntityHint     EntityType `json:"entity_hint,omitempty"`
}

type TimelineTask struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Order       int    `json:"order"`
}

type Timeline struct {
	Horizon string         `json:"horizon,omitempty"`
	Tasks   []TimelineTask `json:"tasks,omitempty"`
}

type Pivot struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Slide is one generated pitch-deck slide.
type Slide struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	Bullets  []string `json:"bullets"`
	Notes    string   `json:"notes,omitempty"`
}

// ApplySection overwrites exactly one section of the receiver with the
// provided replacement and leaves every other sub-object untouched. It
// reports false for an unknown section or a replacement of the wrong type.
func (a *AnalysisResult) ApplySection(section Section, replacement interface{}) bool {
	if a == nil {
		return false
	}
	switch section {
	case SectionCompetitors:
		if v, ok := replacement.(CompetitorSet); ok {
			a.Competitors = v
			return true
		}
	case SectionValue:
		if v, ok := replacement.(ValueAnalysis); ok {
			a.ValueAnalysis = v
			return true
		}
	case SectionPitch:
		if v, ok := replacement.(PitchContent); ok {
			a.Pitch = v
			return true
		}
	case SectionDeck:
		if v, ok := replacement.([]Slide); ok {
			a.Deck = v
			return true
		}
	case SectionCompany:
		if v, ok := replacement.(ProfitStructure); ok {
			a.ProfitStructure = v
			return true
		}
	case SectionTimeline:
		if v, ok := replacement.(Timeline); ok {
			a.Timeline = v
			return true
		}
	}
	return false
}
