// File path: internal/recommend/eligibility.go
package recommend

import (
	"github.com/venturelabs/venturelens/internal/idea"
)

var bothRoles = []idea.CofounderRole{idea.RoleTechnical, idea.RoleBusiness}

// eligibilityTable maps every defined visa status to its ownership and
// work-rights summary. Kept as a flat data table so the rules stay
// auditable next to an attorney's notes.
var eligibilityTable = map[idea.VisaStatus]idea.Eligibility{
	idea.StatusUSCitizen: {
		Status:       idea.StatusUSCitizen,
		CanOwn:       idea.PermissionYes,
		CanWork:      idea.PermissionYes,
		AllowedRoles: bothRoles,
		Explanation:  "No immigration restrictions. You can own any share of the company and work for it in any capacity.",
	},
	idea.StatusGreenCard: {
		Status:       idea.StatusGreenCard,
		CanOwn:       idea.PermissionYes,
		CanWork:      idea.PermissionYes,
		AllowedRoles: bothRoles,
		Explanation:  "Permanent residents can own and work for their company without restriction.",
	},
	idea.StatusH1B: {
		Status:            idea.StatusH1B,
		CanOwn:            idea.PermissionYes,
		CanWork:           idea.PermissionConditional,
		AllowedRoles:      bothRoles,
		Explanation:       "You may own equity, but working for your own company requires it to sponsor a concurrent H-1B with a genuine employer-employee relationship, usually via an independent board.",
		RecommendAttorney: true,
	},
	idea.StatusF1: {
		Status:            idea.StatusF1,
		CanOwn:            idea.PermissionYes,
		CanWork:           idea.PermissionNo,
		AllowedRoles:      nil,
		Explanation:       "On a plain F-1 you may own equity and do passive planning, but performing work for the company, paid or not, violates status until you have OPT or CPT authorization.",
		RecommendAttorney: true,
	},
	idea.StatusF1OPT: {
		Status:            idea.StatusF1OPT,
		CanOwn:            idea.PermissionYes,
		CanWork:           idea.PermissionConditional,
		AllowedRoles:      bothRoles,
		Explanation:       "OPT allows self-employment when the work relates directly to your degree and you can prove full-time engagement. Document everything.",
		RecommendAttorney: true,
	},
	idea.StatusF1STEMOPT: {
		Status:            idea.StatusF1STEMOPT,
		CanOwn:            idea.PermissionYes,
		CanWork:           idea.PermissionConditional,
		AllowedRoles:      []idea.CofounderRole{idea.RoleTechnical},
		Explanation:       "STEM OPT requires a bona fide employer-employee relationship and E-Verify enrollment; founding while on STEM OPT needs an independent supervisor who can direct your work.",
		RecommendAttorney: true,
	},
	idea.StatusO1: {
		Status:            idea.StatusO1,
		CanOwn:            idea.PermissionYes,
		CanWork:           idea.PermissionYes,
		AllowedRoles:      bothRoles,
		Explanation:       "An O-1 sponsored through your own company (with an agent or separate petitioner) lets you work for it full time.",
		RecommendAttorney: true,
	},
	idea.StatusL1: {
		Status:            idea.StatusL1,
		CanOwn:            idea.PermissionYes,
		CanWork:           idea.PermissionNo,
		AllowedRoles:      []idea.CofounderRole{idea.RoleBusiness},
		Explanation:       "L-1 status ties your work authorization to the sponsoring employer; you may hold equity and advise, but not work for the startup.",
		RecommendAttorney: true,
	},
	idea.StatusTN: {
		Status:            idea.StatusTN,
		CanOwn:            idea.PermissionYes,
		CanWork:           idea.PermissionNo,
		AllowedRoles:      []idea.CofounderRole{idea.RoleBusiness},
		Explanation:       "TN status is employer- and profession-specific; self-employment is not permitted, though passive ownership is.",
		RecommendAttorney: true,
	},
	idea.StatusOther: {
		Status:            idea.StatusOther,
		CanOwn:            idea.PermissionRestricted,
		CanWork:           idea.PermissionConditional,
		AllowedRoles:      bothRoles,
		Explanation:       "Ownership is generally permitted, but work authorization depends on your specific status. Confirm with an immigration attorney before doing any work for the company.",
		RecommendAttorney: true,
	},
}

// Eligibility returns the ownership/work summary for a visa status. Total:
// an unknown or empty status gets the conservative default rather than an
// error.
func Eligibility(status idea.VisaStatus) idea.Eligibility {
	if e, ok := eligibilityTable[status]; ok {
		return e
	}
	fallback := eligibilityTable[idea.StatusOther]
	fallback.Status = status
	return fallback
}
