// File path: internal/wizard/view.go
//
// Package wizard is the decision-state engine behind the evaluator: it
// derives the active view from the ledger, gates entry into execution
// sections, and drives each module's step sequence with its branch rules.
package wizard

import (
	"github.com/venturelabs/venturelens/internal/ledger"
)

// View names a top-level screen.
type View string

const (
	ViewIdeaInput        View = "idea-input"
	ViewVerdictSummary   View = "verdict-summary"
	ViewExecutionJourney View = "execution-journey"
)

// viewRule is one guarded case in the view decision table. Rules are
// evaluated in order; the first match wins.
type viewRule struct {
	view View
	when func(ledger.DecisionLedger) bool
}

var viewRules = []viewRule{
	// No snapshot or no analysis yet: still at intake.
	{ViewIdeaInput, func(l ledger.DecisionLedger) bool {
		return l.IdeaSnapshot == nil || l.Analysis == nil
	}},
	// Analysis exists but the user has not answered the verdict gate.
	{ViewVerdictSummary, func(l ledger.DecisionLedger) bool {
		return l.ProceedIntent == ""
	}},
	// Rejected verdict: the idea is abandoned; callers also reset.
	{ViewIdeaInput, func(l ledger.DecisionLedger) bool {
		return l.ProceedIntent == ledger.ProceedNo
	}},
}

// DeriveView computes which view belongs on screen from ledger state
// alone, so a reload or a loaded saved idea lands in the right place.
func DeriveView(l ledger.DecisionLedger) View {
	for _, rule := range viewRules {
		if rule.when(l) {
			return rule.view
		}
	}
	return ViewExecutionJourney
}
