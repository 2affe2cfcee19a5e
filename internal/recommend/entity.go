// File path: internal/recommend/entity.go
//
// Pure derivation functions for the wizard's recommended defaults. All of
// them are total over their inputs: unexpected values land in an explicit
// default branch instead of an error, because these gate live UI and must
// never break the flow.
package recommend

import (
	"github.com/venturelabs/venturelens/internal/idea"
)

// ProfitType passes through the analyzer's profit-structure
// recommendation; the analyzer is authoritative here. Returns the empty
// value when no analysis exists yet.
func ProfitType(analysis *idea.AnalysisResult) idea.ProfitType {
	if analysis == nil {
		return ""
	}
	return analysis.ProfitStructure.Recommendation
}

// EntityRecommendation pairs the suggested entity with a short
// human-readable justification.
type EntityRecommendation struct {
	Entity idea.EntityType `json:"entity"`
	Reason string          `json:"reason"`
}

// EntityType recommends a legal entity from the profit model and the
// fundraising intent. Mixed or undecided fundraising falls through to the
// Delaware C-Corp: when intent is ambiguous the venture path keeps the
// most doors open, and converting away from an LLC later is the expensive
// direction.
func EntityType(profit idea.ProfitType, fundraising idea.FundraisingIntent) EntityRecommendation {
	if profit == idea.ProfitNonProfit {
		return EntityRecommendation{
			Entity: idea.EntityNonProfit,
			Reason: "A 501(c)(3) keeps donations tax-deductible and matches a mission-first structure.",
		}
	}
	if profit == idea.ProfitForProfit {
		switch fundraising {
		case idea.FundraisingVenture:
			return EntityRecommendation{
				Entity: idea.EntityDelawareCCorp,
				Reason: "Venture investors expect Delaware C-Corp stock, board structure, and option pools.",
			}
		case idea.FundraisingBootstrap:
			return EntityRecommendation{
				Entity: idea.EntityLLC,
				Reason: "An LLC keeps paperwork and taxes light while you fund the company yourself.",
			}
		}
	}
	return EntityRecommendation{
		Entity: idea.EntityDelawareCCorp,
		Reason: "When the funding path is still open, a Delaware C-Corp preserves the venture option; an LLC-to-C-Corp conversion later costs far more than the reverse.",
	}
}
