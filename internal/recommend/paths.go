// File path: internal/recommend/paths.go
package recommend

import (
	"github.com/venturelabs/venturelens/internal/idea"
)

// Path IDs from the fixed legal-path catalog.
const (
	PathNoRestrictions = "no-restrictions"
	PathOPT            = "opt-stem"
	PathO1             = "o1-extraordinary"
	PathE2             = "e2-investor"
	PathH1BConcurrent  = "h1b-concurrent"
)

var pathCatalog = map[string]idea.LegalPath{
	PathNoRestrictions: {
		ID:          PathNoRestrictions,
		Name:        "No restrictions",
		Description: "You can found, own, and work for your company immediately. No immigration filings needed.",
		Timeline:    "immediate",
		Cost:        "$0",
	},
	PathOPT: {
		ID:          PathOPT,
		Name:        "OPT / STEM OPT self-employment",
		Description: "Use post-completion OPT (and the 24-month STEM extension) to work for your own startup while it relates to your degree.",
		Timeline:    "1-3 months",
		Cost:        "$410-$470 filing",
	},
	PathO1: {
		ID:          PathO1,
		Name:        "O-1 extraordinary ability",
		Description: "Build an evidence file (press, funding, awards, judging) and have the company or an agent petition for an O-1.",
		Timeline:    "3-6 months",
		Cost:        "$5k-$15k with counsel",
	},
	PathE2: {
		ID:          PathE2,
		Name:        "E-2 treaty investor",
		Description: "Invest substantial personal capital from a treaty country and run the company on an E-2.",
		Timeline:    "2-4 months",
		Cost:        "investment typically $100k+",
	},
	PathH1BConcurrent: {
		ID:          PathH1BConcurrent,
		Name:        "Concurrent H-1B through your startup",
		Description: "Keep your current H-1B job while the startup files a concurrent cap-exempt or cap-subject petition with an independent board controlling your employment.",
		Timeline:    "4-8 months",
		Cost:        "$3k-$10k with counsel",
	},
}

// pathsByStatus fixes which catalog entries each status is offered. Counts
// are part of the product contract: citizens and green-card holders see
// exactly the no-restrictions path, F-1 variants see four options, H-1B
// three, O-1 holders only their own renewal route.
var pathsByStatus = map[idea.VisaStatus][]string{
	idea.StatusUSCitizen: {PathNoRestrictions},
	idea.StatusGreenCard: {PathNoRestrictions},
	idea.StatusF1:        {PathOPT, PathO1, PathE2, PathH1BConcurrent},
	idea.StatusF1OPT:     {PathOPT, PathO1, PathE2, PathH1BConcurrent},
	idea.StatusF1STEMOPT: {PathOPT, PathO1, PathE2, PathH1BConcurrent},
	idea.StatusH1B:       {PathH1BConcurrent, PathO1, PathE2},
	idea.StatusO1:        {PathO1},
}

var fallbackPaths = []string{PathO1, PathE2}

// LegalPaths returns the 1-4 catalog paths available to a visa status.
// Total: unknown statuses get the two-path fallback.
func LegalPaths(status idea.VisaStatus) []idea.LegalPath {
	ids, ok := pathsByStatus[status]
	if !ok {
		ids = fallbackPaths
	}
	out := make([]idea.LegalPath, 0, len(ids))
	for _, id := range ids {
		out = append(out, pathCatalog[id])
	}
	return out
}

// PathByID looks up one catalog entry; ok is false for an unknown ID.
func PathByID(id string) (idea.LegalPath, bool) {
	p, ok := pathCatalog[id]
	return p, ok
}
