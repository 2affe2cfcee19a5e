// File path: internal/ledger/ledger.go
package ledger

import (
	"github.com/venturelabs/venturelens/internal/idea"
)

// SectionKey identifies one of the six execution sections reachable from
// the journey screen.
type SectionKey string

const (
	SectionCompanySetup SectionKey = "company-setup"
	SectionLegalVisa    SectionKey = "legal-visa"
	SectionRegistration SectionKey = "registration"
	SectionAgentsHiring SectionKey = "agents-hiring"
	SectionFunding      SectionKey = "funding"
	SectionTimeline     SectionKey = "timeline"
)

// AllSections lists the execution sections in journey order.
var AllSections = []SectionKey{
	SectionCompanySetup,
	SectionLegalVisa,
	SectionRegistration,
	SectionAgentsHiring,
	SectionFunding,
	SectionTimeline,
}

// DetailLevel records how much hand-holding the user asked for when
// accepting a section gate. Empty means the gate has not been accepted.
type DetailLevel string

const (
	DetailStepByStep DetailLevel = "step-by-step"
	DetailChecklist  DetailLevel = "checklist"
)

// SectionState tracks whether a section's gate has been accepted and where
// the user left off inside it. A skipped gate records nothing: skip is not
// sticky, accept is.
type SectionState struct {
	Unlocked    bool        `json:"unlocked"`
	DetailLevel DetailLevel `json:"detail_level,omitempty"`
	SavedStep   int         `json:"saved_step"`
	MaxStep     int         `json:"max_step"`
}

// ProceedIntent is the user's own response to the analyzer verdict,
// tracked separately from the raw analysis field.
type ProceedIntent string

const (
	ProceedYes         ProceedIntent = "yes"
	ProceedConditional ProceedIntent = "conditional"
	ProceedNo          ProceedIntent = "no"
)

// CofounderCount answers "do you have a co-founder".
type CofounderCount string

const (
	CofounderNo       CofounderCount = "no"
	CofounderOne      CofounderCount = "one"
	CofounderMultiple CofounderCount = "multiple"
)

// MaxCofounders caps the cofounder roster when CofounderMultiple is chosen.
const MaxCofounders = 4

// AgentsMode is the snapshot choice in the agents/hiring module.
type AgentsMode string

const (
	AgentsDIY         AgentsMode = "diy"
	AgentsFullService AgentsMode = "full-service"
	AgentsExplain     AgentsMode = "explain"
)

type RegistrationMode string

const (
	RegistrationDIY     RegistrationMode = "diy"
	RegistrationService RegistrationMode = "service"
	RegistrationExplain RegistrationMode = "explain"
)

type RegistrationPath string

const (
	RegPathDIYChecklist     RegistrationPath = "diy-checklist"
	RegPathServiceChecklist RegistrationPath = "service-checklist"
	RegPathHybrid           RegistrationPath = "hybrid"
)

// Doer says who performs a registration step.
type Doer string

const (
	DoerYou     Doer = "you"
	DoerService Doer = "service"
)

// RegistrationStep is one checklist row in the registration module.
type RegistrationStep struct {
	Done bool `json:"done"`
	Doer Doer `json:"doer"`
}

// RegistrationStepKeys lists the fixed registration checklist in order.
var RegistrationStepKeys = []string{
	"name-search",
	"registered-agent",
	"file-formation",
	"ein",
	"operating-agreement",
	"bank-account",
}

// CCorpSetup is the nested incorporation checklist used when the chosen
// entity is a Delaware C-Corp.
type CCorpSetup struct {
	PreIncorporation CCorpPreIncorporation `json:"pre_incorporation"`
	Incorporation    CCorpIncorporation    `json:"incorporation"`
	Equity           CCorpEquity           `json:"equity"`
	EINBanking       CCorpEINBanking       `json:"ein_banking"`
}

type CCorpPreIncorporation struct {
	ChooseName      bool `json:"choose_name"`
	ReserveDomain   bool `json:"reserve_domain"`
	ConfirmFounders bool `json:"confirm_founders"`
}

type CCorpIncorporation struct {
	FileCertificate bool `json:"file_certificate"`
	AppointAgent    bool `json:"appoint_agent"`
	AdoptBylaws     bool `json:"adopt_bylaws"`
}

type CCorpEquity struct {
	IssueFounderShares bool `json:"issue_founder_shares"`
	FileEightyThreeB   bool `json:"file_83b"`
}

type CCorpEINBanking struct {
	ObtainEIN       bool `json:"obtain_ein"`
	OpenBankAccount bool `json:"open_bank_account"`
}

// DecisionLedger is the single aggregate of everything the user has chosen
// or been told during a session. It is mutated only through Store.Update
// (shallow merge) and reset wholesale; see Patch for the merge contract.
type DecisionLedger struct {
	IdeaSnapshot *idea.Snapshot       `json:"idea_snapshot,omitempty"`
	Analysis     *idea.AnalysisResult `json:"analysis,omitempty"`

	Verdict       idea.Verdict  `json:"verdict,omitempty"`
	ProceedIntent ProceedIntent `json:"proceed_intent,omitempty"`

	UnlockedSections map[SectionKey]SectionState `json:"unlocked_sections"`

	TargetCustomer    idea.TargetCustomer    `json:"target_customer,omitempty"`
	ProfitType        idea.ProfitType        `json:"profit_type,omitempty"`
	EntityType        idea.EntityType        `json:"entity_type,omitempty"`
	FundraisingIntent idea.FundraisingIntent `json:"fundraising_intent,omitempty"`

	CCorpSetup CCorpSetup `json:"ccorp_setup"`

	RegistrationMode      RegistrationMode            `json:"registration_mode,omitempty"`
	RegistrationPath      RegistrationPath            `json:"registration_path,omitempty"`
	RegistrationChecklist map[string]RegistrationStep `json:"registration_checklist"`

	AgentsMode AgentsMode `json:"agents_mode,omitempty"`

	FounderVisaStatus idea.VisaStatus  `json:"founder_visa_status,omitempty"`
	FounderInUS       *bool            `json:"founder_in_us,omitempty"`
	HasCofounder      CofounderCount   `json:"has_cofounder,omitempty"`
	Cofounders        []idea.Cofounder `json:"cofounders,omitempty"`

	// Cached recommendation-engine outputs; written once, read thereafter.
	VisaEligibility     *idea.Eligibility `json:"visa_eligibility,omitempty"`
	LegalPathPreference string            `json:"legal_path_preference,omitempty"`

	CurrentStep     int `json:"current_step"`
	MaxUnlockedStep int `json:"max_unlocked_step"`
}

// Defaults returns the empty ledger every session starts from. All six
// section keys and all registration steps are present so hydrated payloads
// from older schema versions merge onto a complete shape.
func Defaults() DecisionLedger {
	sections := make(map[SectionKey]SectionState, len(AllSections))
	for _, key := range AllSections {
		sections[key] = SectionState{}
	}
	checklist := make(map[string]RegistrationStep, len(RegistrationStepKeys))
	for _, key := range RegistrationStepKeys {
		checklist[key] = RegistrationStep{Doer: DoerYou}
	}
	return DecisionLedger{
		UnlockedSections:      sections,
		RegistrationChecklist: checklist,
	}
}

// Clone returns a copy whose maps and slices are independent of the
// receiver. Snapshot and analysis pointers are shared: both are treated as
// immutable values and replaced, never edited in place.
func (l DecisionLedger) Clone() DecisionLedger {
	out := l
	if l.UnlockedSections != nil {
		out.UnlockedSections = make(map[SectionKey]SectionState, len(l.UnlockedSections))
		for k, v := range l.UnlockedSections {
			out.UnlockedSections[k] = v
		}
	}
	if l.RegistrationChecklist != nil {
		out.RegistrationChecklist = make(map[string]RegistrationStep, len(l.RegistrationChecklist))
		for k, v := range l.RegistrationChecklist {
			out.RegistrationChecklist[k] = v
		}
	}
	if l.Cofounders != nil {
		out.Cofounders = append([]idea.Cofounder(nil), l.Cofounders...)
	}
	if l.FounderInUS != nil {
		inUS := *l.FounderInUS
		out.FounderInUS = &inUS
	}
	return out
}
