// File path: internal/ledger/store.go
package ledger

import (
	"errors"
	"fmt"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/venturelabs/venturelens/internal/blob"
	"github.com/venturelabs/venturelens/internal/common"
	"github.com/venturelabs/venturelens/internal/common/telemetry"
)

// Store owns the decision ledger for one session. Every mutation is
// shallow-merged through Update and synchronously persisted to the blob
// store; persistence failure is logged and the in-memory ledger stays
// authoritative for the rest of the session.
type Store struct {
	mu     sync.RWMutex
	ledger DecisionLedger
	blobs  *blob.Store
	key    string
}

// Open hydrates a Store for the given session key. A stored payload is
// merged onto the defaults so fields added since the payload was written
// default safely; a corrupt payload falls back to the empty ledger with a
// warning.
func Open(blobs *blob.Store, sessionKey string) (*Store, error) {
	if blobs == nil {
		return nil, errors.New("blob store required")
	}
	if sessionKey == "" {
		return nil, errors.New("session key required")
	}
	s := &Store{blobs: blobs, key: sessionKey, ledger: Defaults()}
	logger := common.Logger()
	data, err := blobs.Load(sessionKey)
	if err != nil {
		logger.Warn("ledger: stored session unreadable, starting fresh", "session", sessionKey, "error", err)
		return s, nil
	}
	if len(data) == 0 {
		return s, nil
	}
	hydrated := Defaults()
	if err := json.Unmarshal(data, &hydrated); err != nil {
		logger.Warn("ledger: stored session corrupt, starting fresh", "session", sessionKey, "error", err)
		return s, nil
	}
	normalize(&hydrated)
	s.ledger = hydrated
	logger.Debug("ledger: session hydrated", "session", sessionKey)
	return s, nil
}

// Get returns a copy of the current ledger.
func (s *Store) Get() DecisionLedger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Clone()
}

// Update shallow-merges the patch into the ledger and persists.
func (s *Store) Update(p Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.apply(&s.ledger)
	s.persistLocked()
}

// SetStep moves the active step cursor. The high-water mark only ever
// moves forward; Reset is the single way down.
func (s *Store) SetStep(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.CurrentStep = n
	if n > s.ledger.MaxUnlockedStep {
		s.ledger.MaxUnlockedStep = n
	}
	s.persistLocked()
}

// Reset restores the initial ledger and purges the durable blob for this
// session.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = Defaults()
	if err := s.blobs.Clear(s.key); err != nil {
		common.Logger().Warn("ledger: reset could not purge storage", "session", s.key, "error", err)
	}
}

// SetSectionState records gate/progress state for one section, performing
// the read-modify-write the shallow-merge contract requires.
func (s *Store) SetSectionState(section SectionKey, state SectionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sections := make(map[SectionKey]SectionState, len(s.ledger.UnlockedSections))
	for k, v := range s.ledger.UnlockedSections {
		sections[k] = v
	}
	sections[section] = state
	s.ledger.UnlockedSections = sections
	s.persistLocked()
}

// SetCCorpItem flips one named checkbox inside the C-Corp setup checklist.
func (s *Store) SetCCorpItem(category, item string, done bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	setup := s.ledger.CCorpSetup
	if err := setCCorpField(&setup, category, item, done); err != nil {
		return err
	}
	s.ledger.CCorpSetup = setup
	s.persistLocked()
	return nil
}

// SetRegistrationStep updates one row of the registration checklist.
func (s *Store) SetRegistrationStep(key string, done bool, doer Doer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ledger.RegistrationChecklist[key]; !ok {
		return fmt.Errorf("unknown registration step %q", key)
	}
	if doer == "" {
		doer = s.ledger.RegistrationChecklist[key].Doer
	}
	checklist := make(map[string]RegistrationStep, len(s.ledger.RegistrationChecklist))
	for k, v := range s.ledger.RegistrationChecklist {
		checklist[k] = v
	}
	checklist[key] = RegistrationStep{Done: done, Doer: doer}
	s.ledger.RegistrationChecklist = checklist
	s.persistLocked()
	return nil
}

// Restore replaces the ledger with a saved dump merged onto the defaults,
// so fields the dump predates keep their zero values. Used when loading a
// saved idea; the navigator re-derives the view from the merged state.
func (s *Store) Restore(data []byte) error {
	hydrated := Defaults()
	if err := json.Unmarshal(data, &hydrated); err != nil {
		return fmt.Errorf("decode saved ledger: %w", err)
	}
	normalize(&hydrated)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = hydrated
	s.persistLocked()
	return nil
}

// Export dumps the current ledger as JSON for saving or sharing.
func (s *Store) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.Marshal(s.ledger)
}

// SessionKey returns the durable storage key this store owns.
func (s *Store) SessionKey() string {
	return s.key
}

func (s *Store) persistLocked() {
	data, err := json.Marshal(s.ledger)
	if err == nil {
		err = s.blobs.Save(s.key, data)
	}
	telemetry.RecordLedgerWrite(err)
	if err != nil {
		common.Logger().Warn("ledger: persist failed, session continues in memory", "session", s.key, "error", err)
	}
}

func setCCorpField(setup *CCorpSetup, category, item string, done bool) error {
	switch category {
	case "pre-incorporation":
		switch item {
		case "choose-name":
			setup.PreIncorporation.ChooseName = done
		case "reserve-domain":
			setup.PreIncorporation.ReserveDomain = done
		case "confirm-founders":
			setup.PreIncorporation.ConfirmFounders = done
		default:
			return fmt.Errorf("unknown pre-incorporation item %q", item)
		}
	case "incorporation":
		switch item {
		case "file-certificate":
			setup.Incorporation.FileCertificate = done
		case "appoint-agent":
			setup.Incorporation.AppointAgent = done
		case "adopt-bylaws":
			setup.Incorporation.AdoptBylaws = done
		default:
			return fmt.Errorf("unknown incorporation item %q", item)
		}
	case "equity":
		switch item {
		case "issue-founder-shares":
			setup.Equity.IssueFounderShares = done
		case "file-83b":
			setup.Equity.FileEightyThreeB = done
		default:
			return fmt.Errorf("unknown equity item %q", item)
		}
	case "ein-banking":
		switch item {
		case "obtain-ein":
			setup.EINBanking.ObtainEIN = done
		case "open-bank-account":
			setup.EINBanking.OpenBankAccount = done
		default:
			return fmt.Errorf("unknown ein-banking item %q", item)
		}
	default:
		return fmt.Errorf("unknown ccorp category %q", category)
	}
	return nil
}
