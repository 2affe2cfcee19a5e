// File path: internal/wizard/gate.go
package wizard

import (
	"fmt"

	"github.com/venturelabs/venturelens/internal/ledger"
)

// GateChoice is the user's answer at a section gate.
type GateChoice string

const (
	GateStepByStep GateChoice = "step-by-step"
	GateChecklist  GateChoice = "checklist"
	GateSkipped    GateChoice = "skipped"
)

// GateBypassed reports whether a section's gate has already been accepted,
// which lets the entry point jump straight to the saved position. A
// skipped gate records nothing, so skip never bypasses.
func GateBypassed(l ledger.DecisionLedger, section ledger.SectionKey) bool {
	state, ok := l.UnlockedSections[section]
	if !ok {
		return false
	}
	return state.Unlocked && state.DetailLevel != ""
}

// applyGate records the gate decision. Accepting unlocks the section at
// its first step with the chosen detail level; skipping intentionally
// leaves the section locked so the gate shows again on re-entry.
func applyGate(store *ledger.Store, section ledger.SectionKey, choice GateChoice) error {
	switch choice {
	case GateStepByStep, GateChecklist:
		store.SetSectionState(section, ledger.SectionState{
			Unlocked:    true,
			DetailLevel: ledger.DetailLevel(choice),
		})
		return nil
	case GateSkipped:
		store.SetSectionState(section, ledger.SectionState{})
		return nil
	}
	return fmt.Errorf("unknown gate choice %q", choice)
}
