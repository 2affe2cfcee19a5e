// File path: internal/api/sessions.go
package api

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/venturelabs/venturelens/internal/blob"
	"github.com/venturelabs/venturelens/internal/common"
	"github.com/venturelabs/venturelens/internal/ledger"
	"github.com/venturelabs/venturelens/internal/wizard"
)

var (
	errSessionNotFound = errors.New("session not found")
	errRegistryFull    = errors.New("session registry full")
)

// session pairs one ledger store with the navigator that drives it.
type session struct {
	store *ledger.Store
	nav   *wizard.Navigator
}

// sessionRegistry caches live sessions by ID. Sessions are durable in the
// blob store, so an ID minted before a restart rehydrates on first use
// instead of failing.
type sessionRegistry struct {
	mu    sync.Mutex
	blobs *blob.Store
	live  map[string]*session
	max   int
}

func newSessionRegistry(blobs *blob.Store, max int) *sessionRegistry {
	return &sessionRegistry{
		blobs: blobs,
		live:  make(map[string]*session),
		max:   max,
	}
}

// Create mints a fresh session and opens its store.
func (r *sessionRegistry) Create() (string, *session, error) {
	id := uuid.NewString()
	sess, err := r.open(id)
	if err != nil {
		return "", nil, err
	}
	common.Logger().Info("api: session created", "session", id)
	return id, sess, nil
}

// Get returns the live session for an ID, rehydrating from the blob store
// when the process has not seen it yet.
func (r *sessionRegistry) Get(id string) (*session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errSessionNotFound
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, errSessionNotFound
	}
	return r.open(id)
}

func (r *sessionRegistry) open(id string) (*session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sess, ok := r.live[id]; ok {
		return sess, nil
	}
	if r.max > 0 && len(r.live) >= r.max {
		return nil, errRegistryFull
	}
	store, err := ledger.Open(r.blobs, id)
	if err != nil {
		return nil, fmt.Errorf("open session %s: %w", id, err)
	}
	sess := &session{store: store, nav: wizard.NewNavigator(store)}
	r.live[id] = sess
	return sess, nil
}
