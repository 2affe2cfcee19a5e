// File path: internal/idea/types.go
package idea

// Snapshot captures the founder's idea as entered during intake. It is
// immutable once an analysis run starts; a restart replaces it wholesale.
type Snapshot struct {
	IdeaName    string      `json:"idea_name"`
	Problem     string      `json:"problem"`
	Solution    string      `json:"solution"`
	Audience    string      `json:"audience"`
	ScaleIntent ScaleIntent `json:"scale_intent"`

	ExistingAlternatives string `json:"existing_alternatives,omitempty"`
	FounderBackground    string `json:"founder_background,omitempty"`
	Timeline             string `json:"timeline,omitempty"`
}

type ScaleIntent string

const (
	ScaleLifestyle ScaleIntent = "lifestyle"
	ScaleVenture   ScaleIntent = "venture-scale"
	ScaleNonProfit ScaleIntent = "non-profit"
)

// Verdict is the analyzer's go/no-go recommendation for an idea.
type Verdict string

const (
	VerdictYes         Verdict = "yes"
	VerdictConditional Verdict = "conditional"
	VerdictNo          Verdict = "no"
)

type ProfitType string

const (
	ProfitForProfit ProfitType = "for-profit"
	ProfitNonProfit ProfitType = "non-profit"
	ProfitMixed     ProfitType = "mixed"
)

type FundraisingIntent string

const (
	FundraisingVenture   FundraisingIntent = "venture-scale"
	FundraisingBootstrap FundraisingIntent = "bootstrap"
	FundraisingUndecided FundraisingIntent = "undecided"
)

type EntityType string

const (
	EntityDelawareCCorp EntityType = "delaware-c-corp"
	EntityLLC           EntityType = "llc"
	EntityNonProfit     EntityType = "non-profit-501c3"
)

type TargetCustomer string

const (
	CustomerB2B         TargetCustomer = "b2b"
	CustomerB2C         TargetCustomer = "b2c"
	CustomerB2B2C       TargetCustomer = "b2b2c"
	CustomerMarketplace TargetCustomer = "marketplace"
)

// VisaStatus enumerates the founder statuses the legal module reasons
// about. Anything else is treated as StatusOther by the lookup tables.
type VisaStatus string

const (
	StatusUSCitizen VisaStatus = "us-citizen"
	StatusGreenCard VisaStatus = "green-card"
	StatusH1B       VisaStatus = "h-1b"
	StatusF1        VisaStatus = "f-1"
	StatusF1OPT     VisaStatus = "f-1-opt"
	StatusF1STEMOPT VisaStatus = "f-1-stem-opt"
	StatusO1        VisaStatus = "o-1"
	StatusL1        VisaStatus = "l-1"
	StatusTN        VisaStatus = "tn"
	StatusOther     VisaStatus = "other"
)

// AllVisaStatuses lists the ten defined statuses in presentation order.
var AllVisaStatuses = []VisaStatus{
	StatusUSCitizen,
	StatusGreenCard,
	StatusH1B,
	StatusF1,
	StatusF1OPT,
	StatusF1STEMOPT,
	StatusO1,
	StatusL1,
	StatusTN,
	StatusOther,
}

type CofounderRole string

const (
	RoleTechnical CofounderRole = "technical"
	RoleBusiness  CofounderRole = "business"
)

// Cofounder is one co-founder record collected by the legal module.
type Cofounder struct {
	ID         string        `json:"id"`
	VisaStatus VisaStatus    `json:"visa_status"`
	Role       CofounderRole `json:"role"`
	InUS       bool          `json:"in_us"`
}
