// File path: internal/wizard/flow.go
package wizard

import (
	"errors"

	"github.com/venturelabs/venturelens/internal/ledger"
)

var (
	ErrUnknownSection = errors.New("unknown section")
	ErrUnknownStep    = errors.New("unknown step")
	ErrSectionGated   = errors.New("section gate not passed")
)

// StepID names one step inside a module flow.
type StepID string

// flowStep couples a step with its skip predicate. A nil predicate means
// the step always appears.
type flowStep struct {
	id   StepID
	skip func(ledger.DecisionLedger) bool
}

// Flow is one module's linear-with-branches step sequence. Monotonic flows
// enforce the "jump only to steps already reached" rule; the funding flow
// deliberately does not and instead offers a standing escape step.
type Flow struct {
	section   ledger.SectionKey
	steps     []flowStep
	monotonic bool
	escapeTo  StepID
}

// Section returns the execution section this flow belongs to.
func (f Flow) Section() ledger.SectionKey { return f.section }

// Monotonic reports whether the flow locks forward jumps.
func (f Flow) Monotonic() bool { return f.monotonic }

// Steps returns the full step order, including steps a given ledger state
// would skip.
func (f Flow) Steps() []StepID {
	out := make([]StepID, len(f.steps))
	for i, s := range f.steps {
		out[i] = s.id
	}
	return out
}

// Visible returns the steps reachable under the current ledger state, in
// order.
func (f Flow) Visible(l ledger.DecisionLedger) []StepID {
	var out []StepID
	for _, s := range f.steps {
		if s.skip != nil && s.skip(l) {
			continue
		}
		out = append(out, s.id)
	}
	return out
}

func (f Flow) index(id StepID) int {
	for i, s := range f.steps {
		if s.id == id {
			return i
		}
	}
	return -1
}

// At returns the step at a raw index, clamped into range and shifted off
// skipped steps (backwards first, then forwards).
func (f Flow) At(l ledger.DecisionLedger, idx int) (StepID, int) {
	if len(f.steps) == 0 {
		return "", 0
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(f.steps) {
		idx = len(f.steps) - 1
	}
	for i := idx; i >= 0; i-- {
		s := f.steps[i]
		if s.skip == nil || !s.skip(l) {
			return s.id, i
		}
	}
	for i := idx + 1; i < len(f.steps); i++ {
		s := f.steps[i]
		if s.skip == nil || !s.skip(l) {
			return s.id, i
		}
	}
	return f.steps[0].id, 0
}

// First returns the first visible step.
func (f Flow) First(l ledger.DecisionLedger) (StepID, int) {
	return f.At(l, 0)
}

// Next returns the step after current under the ledger's branch state; ok
// is false when current is terminal.
func (f Flow) Next(l ledger.DecisionLedger, current StepID) (StepID, int, bool) {
	idx := f.index(current)
	if idx < 0 {
		return "", 0, false
	}
	for i := idx + 1; i < len(f.steps); i++ {
		s := f.steps[i]
		if s.skip != nil && s.skip(l) {
			continue
		}
		return s.id, i, true
	}
	return "", 0, false
}

// Terminal reports whether current has no following visible step.
func (f Flow) Terminal(l ledger.DecisionLedger, current StepID) bool {
	_, _, ok := f.Next(l, current)
	return !ok
}
