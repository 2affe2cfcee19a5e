// File path: internal/wizard/modules.go
package wizard

import (
	"github.com/venturelabs/venturelens/internal/idea"
	"github.com/venturelabs/venturelens/internal/ledger"
	"github.com/venturelabs/venturelens/internal/recommend"
)

// Company setup steps. The C-Corp sub-wizard rides the same flow as
// trailing steps that only appear once a Delaware C-Corp is chosen, which
// is exactly the detour-then-return behavior: accepting any other entity
// makes the entity step terminal.
const (
	StepTargetCustomer StepID = "target-customer"
	StepProfitType     StepID = "profit-type"
	StepFundraising    StepID = "fundraising"
	StepEntityType     StepID = "entity-type"

	StepCCorpPreIncorporation StepID = "ccorp-pre-incorporation"
	StepCCorpIncorporation    StepID = "ccorp-incorporation"
	StepCCorpEquity           StepID = "ccorp-equity"
	StepCCorpEINBanking       StepID = "ccorp-ein-banking"
)

// Legal/visa steps.
const (
	StepVisaIntake          StepID = "visa-intake"
	StepCofounderIntake     StepID = "cofounder-intake"
	StepEligibilityAnalysis StepID = "eligibility-analysis"
	StepVisaGuidance        StepID = "visa-guidance"
	StepLegalPaths          StepID = "legal-paths"
	StepImmigrationHelp     StepID = "immigration-help"
)

// Registration steps.
const (
	StepRegSnapshot  StepID = "snapshot"
	StepRegBreakdown StepID = "breakdown"
	StepRegServices  StepID = "services"
	StepRegChecklist StepID = "checklist"
)

// Agents/hiring steps.
const (
	StepAgentsSnapshot  StepID = "agents-snapshot"
	StepAgentsBreakdown StepID = "agents-breakdown"
	StepAgentsServices  StepID = "agents-services"
	StepAgentsChecklist StepID = "agents-checklist"
)

// Funding steps.
const (
	StepFundingReadiness StepID = "readiness"
	StepFundingInvestors StepID = "investors"
	StepFundingChecklist StepID = "funding-checklist"
	StepFundingPitchDeck StepID = "pitch-deck"
	StepFundingEducation StepID = "education"
)

// Timeline is a single rendered view of the analysis timeline; it still
// sits behind a gate like every other section.
const StepTimelineOverview StepID = "timeline-overview"

func notForProfit(l ledger.DecisionLedger) bool {
	return l.ProfitType != idea.ProfitForProfit
}

func notDelawareCCorp(l ledger.DecisionLedger) bool {
	return l.EntityType != idea.EntityDelawareCCorp
}

func noWorkRestrictions(l ledger.DecisionLedger) bool {
	return l.FounderVisaStatus == idea.StatusUSCitizen || l.FounderVisaStatus == idea.StatusGreenCard
}

var companyFlow = Flow{
	section:   ledger.SectionCompanySetup,
	monotonic: true,
	steps: []flowStep{
		{id: StepTargetCustomer},
		{id: StepProfitType},
		{id: StepFundraising, skip: notForProfit},
		{id: StepEntityType},
		{id: StepCCorpPreIncorporation, skip: notDelawareCCorp},
		{id: StepCCorpIncorporation, skip: notDelawareCCorp},
		{id: StepCCorpEquity, skip: notDelawareCCorp},
		{id: StepCCorpEINBanking, skip: notDelawareCCorp},
	},
}

var legalFlow = Flow{
	section:   ledger.SectionLegalVisa,
	monotonic: true,
	steps: []flowStep{
		{id: StepVisaIntake},
		{id: StepCofounderIntake},
		{id: StepEligibilityAnalysis},
		{id: StepVisaGuidance},
		{id: StepLegalPaths, skip: noWorkRestrictions},
		{id: StepImmigrationHelp},
	},
}

var registrationFlow = Flow{
	section:   ledger.SectionRegistration,
	monotonic: true,
	steps: []flowStep{
		{id: StepRegSnapshot},
		{id: StepRegBreakdown, skip: func(l ledger.DecisionLedger) bool {
			return l.RegistrationMode != ledger.RegistrationExplain
		}},
		{id: StepRegServices},
		{id: StepRegChecklist},
	},
}

var agentsFlow = Flow{
	section:   ledger.SectionAgentsHiring,
	monotonic: true,
	steps: []flowStep{
		{id: StepAgentsSnapshot},
		{id: StepAgentsBreakdown, skip: func(l ledger.DecisionLedger) bool {
			return l.AgentsMode != ledger.AgentsExplain
		}},
		{id: StepAgentsServices, skip: func(l ledger.DecisionLedger) bool {
			return l.AgentsMode == ledger.AgentsDIY
		}},
		{id: StepAgentsChecklist},
	},
}

var fundingFlow = Flow{
	section:   ledger.SectionFunding,
	monotonic: false,
	escapeTo:  StepFundingEducation,
	steps: []flowStep{
		{id: StepFundingReadiness},
		{id: StepFundingInvestors},
		{id: StepFundingChecklist},
		{id: StepFundingPitchDeck},
		{id: StepFundingEducation},
	},
}

var timelineFlow = Flow{
	section:   ledger.SectionTimeline,
	monotonic: true,
	steps: []flowStep{
		{id: StepTimelineOverview},
	},
}

var flows = map[ledger.SectionKey]Flow{
	ledger.SectionCompanySetup: companyFlow,
	ledger.SectionLegalVisa:    legalFlow,
	ledger.SectionRegistration: registrationFlow,
	ledger.SectionAgentsHiring: agentsFlow,
	ledger.SectionFunding:      fundingFlow,
	ledger.SectionTimeline:     timelineFlow,
}

// FlowFor returns the flow for a section.
func FlowFor(section ledger.SectionKey) (Flow, bool) {
	f, ok := flows[section]
	return f, ok
}

// WorkAuthorizedCofounder reports whether any co-founder on the roster can
// work for the company without conditions.
func WorkAuthorizedCofounder(l ledger.DecisionLedger) bool {
	for _, c := range l.Cofounders {
		if recommend.Eligibility(c.VisaStatus).CanWork == idea.PermissionYes {
			return true
		}
	}
	return false
}
