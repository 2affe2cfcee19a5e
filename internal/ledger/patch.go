// File path: internal/ledger/patch.go
package ledger

import (
	"github.com/venturelabs/venturelens/internal/idea"
)

// Patch is a partial ledger update. Nil fields are left untouched; set
// fields replace their top-level counterpart wholesale. Nested structures
// (sections map, checklist map, C-Corp setup) are never deep-merged:
// callers read, modify, and supply the complete replacement. Snapshot and
// analysis can only be set through a patch, never cleared; clearing
// happens via Store.Reset.
type Patch struct {
	IdeaSnapshot *idea.Snapshot       `json:"idea_snapshot,omitempty"`
	Analysis     *idea.AnalysisResult `json:"analysis,omitempty"`

	Verdict       *idea.Verdict  `json:"verdict,omitempty"`
	ProceedIntent *ProceedIntent `json:"proceed_intent,omitempty"`

	UnlockedSections map[SectionKey]SectionState `json:"unlocked_sections,omitempty"`

	TargetCustomer    *idea.TargetCustomer    `json:"target_customer,omitempty"`
	ProfitType        *idea.ProfitType        `json:"profit_type,omitempty"`
	EntityType        *idea.EntityType        `json:"entity_type,omitempty"`
	FundraisingIntent *idea.FundraisingIntent `json:"fundraising_intent,omitempty"`

	CCorpSetup *CCorpSetup `json:"ccorp_setup,omitempty"`

	RegistrationMode      *RegistrationMode           `json:"registration_mode,omitempty"`
	RegistrationPath      *RegistrationPath           `json:"registration_path,omitempty"`
	RegistrationChecklist map[string]RegistrationStep `json:"registration_checklist,omitempty"`

	AgentsMode *AgentsMode `json:"agents_mode,omitempty"`

	FounderVisaStatus *idea.VisaStatus  `json:"founder_visa_status,omitempty"`
	FounderInUS       *bool             `json:"founder_in_us,omitempty"`
	HasCofounder      *CofounderCount   `json:"has_cofounder,omitempty"`
	Cofounders        *[]idea.Cofounder `json:"cofounders,omitempty"`

	VisaEligibility     *idea.Eligibility `json:"visa_eligibility,omitempty"`
	LegalPathPreference *string           `json:"legal_path_preference,omitempty"`
}

func (p Patch) apply(l *DecisionLedger) {
	if p.IdeaSnapshot != nil {
		l.IdeaSnapshot = p.IdeaSnapshot
	}
	if p.Analysis != nil {
		l.Analysis = p.Analysis
	}
	if p.Verdict != nil {
		l.Verdict = *p.Verdict
	}
	if p.ProceedIntent != nil {
		l.ProceedIntent = *p.ProceedIntent
	}
	if p.UnlockedSections != nil {
		l.UnlockedSections = p.UnlockedSections
	}
	if p.TargetCustomer != nil {
		l.TargetCustomer = *p.TargetCustomer
	}
	if p.ProfitType != nil {
		l.ProfitType = *p.ProfitType
	}
	if p.EntityType != nil {
		l.EntityType = *p.EntityType
	}
	if p.FundraisingIntent != nil {
		l.FundraisingIntent = *p.FundraisingIntent
	}
	if p.CCorpSetup != nil {
		l.CCorpSetup = *p.CCorpSetup
	}
	if p.RegistrationMode != nil {
		l.RegistrationMode = *p.RegistrationMode
	}
	if p.RegistrationPath != nil {
		l.RegistrationPath = *p.RegistrationPath
	}
	if p.RegistrationChecklist != nil {
		l.RegistrationChecklist = p.RegistrationChecklist
	}
	if p.AgentsMode != nil {
		l.AgentsMode = *p.AgentsMode
	}
	if p.FounderVisaStatus != nil {
		l.FounderVisaStatus = *p.FounderVisaStatus
	}
	if p.FounderInUS != nil {
		inUS := *p.FounderInUS
		l.FounderInUS = &inUS
	}
	if p.HasCofounder != nil {
		l.HasCofounder = *p.HasCofounder
	}
	if p.Cofounders != nil {
		l.Cofounders = append([]idea.Cofounder(nil), (*p.Cofounders)...)
	}
	if p.VisaEligibility != nil {
		l.VisaEligibility = p.VisaEligibility
	}
	if p.LegalPathPreference != nil {
		l.LegalPathPreference = *p.LegalPathPreference
	}
	normalize(l)
}

// normalize clamps the cofounder roster to the declared count. The wizard
// keeps these in step; clamping here means a malformed patch can never
// violate the roster invariant.
func normalize(l *DecisionLedger) {
	switch l.HasCofounder {
	case CofounderNo:
		l.Cofounders = nil
	case CofounderOne:
		if len(l.Cofounders) > 1 {
			l.Cofounders = l.Cofounders[:1]
		}
	case CofounderMultiple:
		if len(l.Cofounders) > MaxCofounders {
			l.Cofounders = l.Cofounders[:MaxCofounders]
		}
	}
	if l.CurrentStep > l.MaxUnlockedStep {
		l.MaxUnlockedStep = l.CurrentStep
	}
}
