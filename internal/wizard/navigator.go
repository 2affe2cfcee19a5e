// File path: internal/wizard/navigator.go
package wizard

import (
	"github.com/venturelabs/venturelens/internal/common"
	"github.com/venturelabs/venturelens/internal/ledger"
	"github.com/venturelabs/venturelens/internal/recommend"
)

// Navigator is the single source of truth for "what is on screen". It
// reads the ledger before every transition, so state and navigation can
// never disagree after a reload or a loaded saved idea.
type Navigator struct {
	store *ledger.Store
}

func NewNavigator(store *ledger.Store) *Navigator {
	return &Navigator{store: store}
}

// Entry describes where an interaction landed: at a gate, at a step, or
// back on the journey screen.
type Entry struct {
	Section  ledger.SectionKey `json:"section,omitempty"`
	ShowGate bool              `json:"show_gate,omitempty"`
	Step     StepID            `json:"step,omitempty"`
	Done     bool              `json:"done,omitempty"`
}

// View derives the active top-level view.
func (n *Navigator) View() View {
	return DeriveView(n.store.Get())
}

// EnterSection is the journey-screen entry point: an accepted gate jumps
// straight to the section's saved position, anything else shows the gate.
func (n *Navigator) EnterSection(section ledger.SectionKey) (Entry, error) {
	flow, ok := FlowFor(section)
	if !ok {
		return Entry{}, ErrUnknownSection
	}
	l := n.store.Get()
	if !GateBypassed(l, section) {
		return Entry{Section: section, ShowGate: true}, nil
	}
	cur, _ := n.position(l, section)
	step, idx := flow.At(l, cur)
	n.setPosition(section, idx)
	n.arrive(section, step)
	return Entry{Section: section, Step: step}, nil
}

// Gate records the user's gate choice. Accepting enters the section at its
// first step; skipping returns to the journey without unlocking anything.
func (n *Navigator) Gate(section ledger.SectionKey, choice GateChoice) (Entry, error) {
	flow, ok := FlowFor(section)
	if !ok {
		return Entry{}, ErrUnknownSection
	}
	if err := applyGate(n.store, section, choice); err != nil {
		return Entry{}, err
	}
	if choice == GateSkipped {
		return Entry{Section: section, Done: true}, nil
	}
	l := n.store.Get()
	step, idx := flow.First(l)
	n.setPosition(section, idx)
	n.arrive(section, step)
	return Entry{Section: section, Step: step}, nil
}

// Advance moves to the next step under the current branch state, or
// completes the section and hands control back to the journey.
func (n *Navigator) Advance(section ledger.SectionKey) (Entry, error) {
	flow, ok := FlowFor(section)
	if !ok {
		return Entry{}, ErrUnknownSection
	}
	l := n.store.Get()
	if !GateBypassed(l, section) {
		return Entry{}, ErrSectionGated
	}
	cur, _ := n.position(l, section)
	current, _ := flow.At(l, cur)
	next, idx, more := flow.Next(l, current)
	if !more {
		return Entry{Section: section, Done: true}, nil
	}
	n.setPosition(section, idx)
	n.arrive(section, next)
	return Entry{Section: section, Step: next}, nil
}

// Jump moves to a named step. Monotonic flows clamp any target beyond the
// high-water mark to the nearest reached step instead of failing; skipped
// steps clamp to the nearest visible one. The funding flow jumps freely.
func (n *Navigator) Jump(section ledger.SectionKey, target StepID) (Entry, error) {
	flow, ok := FlowFor(section)
	if !ok {
		return Entry{}, ErrUnknownSection
	}
	l := n.store.Get()
	if !GateBypassed(l, section) {
		return Entry{}, ErrSectionGated
	}
	idx := flow.index(target)
	if idx < 0 {
		return Entry{}, ErrUnknownStep
	}
	if flow.monotonic {
		_, maxStep := n.position(l, section)
		if idx > maxStep {
			common.Logger().Debug("wizard: jump clamped", "section", string(section), "target", string(target), "max", maxStep)
			idx = maxStep
		}
	}
	step, at := flow.At(l, idx)
	n.setPosition(section, at)
	n.arrive(section, step)
	return Entry{Section: section, Step: step}, nil
}

// Escape takes the funding module's standing shortcut to its education
// step. Sections without an escape step reject it.
func (n *Navigator) Escape(section ledger.SectionKey) (Entry, error) {
	flow, ok := FlowFor(section)
	if !ok {
		return Entry{}, ErrUnknownSection
	}
	if flow.escapeTo == "" {
		return Entry{}, ErrUnknownStep
	}
	l := n.store.Get()
	if !GateBypassed(l, section) {
		return Entry{}, ErrSectionGated
	}
	idx := flow.index(flow.escapeTo)
	step, at := flow.At(l, idx)
	n.setPosition(section, at)
	return Entry{Section: section, Step: step}, nil
}

// position returns the current and high-water step indexes for a section.
// Company setup rides the ledger's global step cursor; every other module
// keeps its own cursor in its section state.
func (n *Navigator) position(l ledger.DecisionLedger, section ledger.SectionKey) (int, int) {
	if section == ledger.SectionCompanySetup {
		return l.CurrentStep, l.MaxUnlockedStep
	}
	state := l.UnlockedSections[section]
	return state.SavedStep, state.MaxStep
}

func (n *Navigator) setPosition(section ledger.SectionKey, idx int) {
	if section == ledger.SectionCompanySetup {
		n.store.SetStep(idx)
		return
	}
	l := n.store.Get()
	state := l.UnlockedSections[section]
	state.SavedStep = idx
	if idx > state.MaxStep {
		state.MaxStep = idx
	}
	n.store.SetSectionState(section, state)
}

// arrive runs step side effects. The only one is eligibility memoization:
// reaching the analysis step caches the lookup result in the ledger so
// later screens read the same answer the user was shown.
func (n *Navigator) arrive(section ledger.SectionKey, step StepID) {
	if section != ledger.SectionLegalVisa || step != StepEligibilityAnalysis {
		return
	}
	l := n.store.Get()
	if l.VisaEligibility != nil || l.FounderVisaStatus == "" {
		return
	}
	eligibility := recommend.Eligibility(l.FounderVisaStatus)
	n.store.Update(ledger.Patch{VisaEligibility: &eligibility})
}
