// File path: internal/recommend/guidance.go
package recommend

import (
	"github.com/venturelabs/venturelens/internal/idea"
)

var guidanceTable = map[idea.VisaStatus]idea.Guidance{
	idea.StatusUSCitizen: {
		Title:   "You're clear to build",
		Allowed: []string{"Own any percentage of the company", "Work full-time from day one", "Pay yourself a salary"},
		NextSteps: []string{
			"Incorporate when you're ready",
			"Set up founder equity and vesting",
			"Open a business bank account",
		},
	},
	idea.StatusGreenCard: {
		Title:   "You're clear to build",
		Allowed: []string{"Own any percentage of the company", "Work full-time from day one", "Pay yourself a salary"},
		Warnings: []string{
			"Long stretches working abroad can raise abandonment questions for your permanent residence",
		},
		NextSteps: []string{
			"Incorporate when you're ready",
			"Set up founder equity and vesting",
			"Open a business bank account",
		},
	},
	idea.StatusH1B: {
		Title:      "Own yes, work carefully",
		Allowed:    []string{"Hold equity in the startup", "Plan, research, and advise outside work hours"},
		Restricted: []string{"Performing productive work for the startup without a concurrent petition", "Taking a salary from the startup"},
		Warnings:   []string{"Unauthorized work for your own company is a status violation even if unpaid"},
		NextSteps: []string{
			"Keep your sponsoring job while you validate the idea",
			"Structure a board that can hire, supervise, and fire you",
			"File a concurrent H-1B through the startup",
		},
		Actions: []string{"Consult an immigration attorney", "Review the concurrent H-1B path"},
	},
	idea.StatusF1: {
		Title:      "Plan now, work later",
		Allowed:    []string{"Own equity", "Do coursework-adjacent research and planning"},
		Restricted: []string{"Any productive work for the company, paid or unpaid"},
		Warnings:   []string{"Working before OPT/CPT authorization can terminate your student status"},
		NextSteps: []string{
			"Stay enrolled and in status",
			"Apply for OPT as you approach graduation",
			"Line up the paperwork so the company is ready when authorization arrives",
		},
		Actions: []string{"Talk to your DSO", "Consult an immigration attorney"},
	},
	idea.StatusF1OPT: {
		Title:      "Self-employment within your field",
		Allowed:    []string{"Work for your startup when it relates to your degree", "Own equity"},
		Restricted: []string{"Work unrelated to your field of study", "Accruing more than 90 days of unemployment"},
		Warnings:   []string{"Keep contemporaneous records proving full-time, degree-related engagement"},
		NextSteps: []string{
			"Document how the startup maps to your degree",
			"Track hours from day one",
			"Plan the STEM extension or a longer-term visa before OPT runs out",
		},
		Actions: []string{"Consult an immigration attorney"},
	},
	idea.StatusF1STEMOPT: {
		Title:      "Possible, with real structure",
		Allowed:    []string{"Work for the startup under a bona fide employer-employee relationship", "Own equity"},
		Restricted: []string{"Self-supervised work", "Employment at a company not enrolled in E-Verify"},
		Warnings:   []string{"The training-plan (I-983) obligations are audited; treat them as real"},
		NextSteps: []string{
			"Enroll the company in E-Verify",
			"Appoint someone who can genuinely supervise you",
			"File and maintain the I-983 training plan",
		},
		Actions: []string{"Consult an immigration attorney"},
	},
	idea.StatusO1: {
		Title:   "Build on your O-1",
		Allowed: []string{"Work full-time for the petitioning company", "Own equity"},
		Warnings: []string{
			"Material changes in role or employer require an amended petition",
		},
		NextSteps: []string{
			"Keep the petitioner structure aligned with your actual role",
			"Maintain your evidence file for renewals",
		},
		Actions: []string{"Consult an immigration attorney for the petitioner setup"},
	},
	idea.StatusL1: {
		Title:      "Advise now, transition later",
		Allowed:    []string{"Own equity", "Advise informally outside your sponsored role"},
		Restricted: []string{"Any work for the startup while your authorization belongs to your L-1 employer"},
		Warnings:   []string{"Your status depends on the sponsoring employer relationship"},
		NextSteps: []string{
			"Validate the idea without performing work",
			"Map a transition to O-1 or another independent status",
		},
		Actions: []string{"Consult an immigration attorney"},
	},
	idea.StatusTN: {
		Title:      "Ownership only for now",
		Allowed:    []string{"Own equity", "Passive investment"},
		Restricted: []string{"Self-employment under TN", "Work outside your listed profession and employer"},
		NextSteps: []string{
			"Keep your TN employment intact",
			"Explore O-1 or E-2 as founder paths",
		},
		Actions: []string{"Consult an immigration attorney"},
	},
	idea.StatusOther: {
		Title:      "Confirm your specifics first",
		Allowed:    []string{"Ownership is generally permitted"},
		Restricted: []string{"Assume no work authorization until confirmed"},
		Warnings:   []string{"Visa categories differ sharply; generic advice is unsafe here"},
		NextSteps: []string{
			"Identify your exact status and its work rules",
			"Get a professional opinion before doing any work for the company",
		},
		Actions: []string{"Consult an immigration attorney"},
	},
}

// cofounderDelegation is the next-step rewrite applied when a founder on a
// work-restricted status has a co-founder who can legally run operations.
var cofounderDelegation = map[idea.VisaStatus]string{
	idea.StatusF1:  "Let your work-authorized co-founder run operations while you stay within student-status limits",
	idea.StatusH1B: "Let your work-authorized co-founder run day-to-day operations while your concurrent petition is pending",
	idea.StatusL1:  "Let your work-authorized co-founder operate the company while you plan your transition",
}

// VisaGuidance returns the guidance bundle for a status. When the founder
// has a work-authorized co-founder, the next-steps list for the restricted
// statuses (F-1, H-1B, L-1) leads with delegation; the allowed/restricted
// item lists are unchanged. Total over its inputs.
func VisaGuidance(status idea.VisaStatus, hasWorkAuthorizedCofounder bool) idea.Guidance {
	g, ok := guidanceTable[status]
	if !ok {
		g = guidanceTable[idea.StatusOther]
	}
	out := g
	out.Allowed = append([]string(nil), g.Allowed...)
	out.Restricted = append([]string(nil), g.Restricted...)
	out.Warnings = append([]string(nil), g.Warnings...)
	out.NextSteps = append([]string(nil), g.NextSteps...)
	out.Actions = append([]string(nil), g.Actions...)
	if hasWorkAuthorizedCofounder {
		if lead, found := cofounderDelegation[status]; found {
			out.NextSteps = append([]string{lead}, out.NextSteps...)
		}
	}
	return out
}
