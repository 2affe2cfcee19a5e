// File path: internal/catalog/ideas.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venturelabs/venturelens/internal/common/telemetry"
)

// ErrIdeaNotFound is returned when a lookup misses.
var ErrIdeaNotFound = errors.New("idea not found")

// SavedIdea is one persisted idea row. Snapshot, analysis, and ledger are
// stored as opaque JSON so the catalog never needs to track the wizard's
// schema.
type SavedIdea struct {
	ID        string          `db:"id" json:"id"`
	OwnerID   string          `db:"owner_id" json:"-"`
	IdeaName  string          `db:"idea_name" json:"idea_name"`
	Snapshot  json.RawMessage `db:"snapshot" json:"idea_snapshot"`
	Analysis  json.RawMessage `db:"analysis" json:"analysis,omitempty"`
	Ledger    json.RawMessage `db:"ledger" json:"ledger,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// SharedIdea is a public, owner-less clone readable by share ID.
type SharedIdea struct {
	ShareID   string          `db:"share_id" json:"share_id"`
	IdeaName  string          `db:"idea_name" json:"idea_name"`
	Snapshot  json.RawMessage `db:"snapshot" json:"idea_snapshot"`
	Analysis  json.RawMessage `db:"analysis" json:"analysis,omitempty"`
	Ledger    json.RawMessage `db:"ledger" json:"ledger,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// Save inserts or updates one idea row for an owner. A blank record ID
// creates a new row.
func (s *Store) Save(ctx context.Context, record SavedIdea) (saved SavedIdea, err error) {
	defer func() { telemetry.RecordCatalogOp("save", err) }()
	if s == nil || s.db == nil {
		return SavedIdea{}, errors.New("catalog store not initialised")
	}
	if strings.TrimSpace(record.OwnerID) == "" {
		return SavedIdea{}, errors.New("owner id required")
	}
	if len(record.Snapshot) == 0 {
		return SavedIdea{}, errors.New("idea snapshot required")
	}
	now := time.Now().UTC()
	record.UpdatedAt = now
	if strings.TrimSpace(record.ID) == "" {
		record.ID = uuid.NewString()
		record.CreatedAt = now
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO saved_ideas (id, owner_id, idea_name, snapshot, analysis, ledger, created_at, updated_at)
                         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			record.ID, record.OwnerID, record.IdeaName, string(record.Snapshot),
			nullable(record.Analysis), nullable(record.Ledger), record.CreatedAt, record.UpdatedAt)
		if err != nil {
			return SavedIdea{}, fmt.Errorf("insert idea: %w", err)
		}
		return record, nil
	}
	res, execErr := s.db.ExecContext(ctx,
		`UPDATE saved_ideas SET idea_name = ?, snapshot = ?, analysis = ?, ledger = ?, updated_at = ?
                 WHERE id = ? AND owner_id = ?`,
		record.IdeaName, string(record.Snapshot), nullable(record.Analysis),
		nullable(record.Ledger), record.UpdatedAt, record.ID, record.OwnerID)
	if execErr != nil {
		err = fmt.Errorf("update idea: %w", execErr)
		return SavedIdea{}, err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		err = ErrIdeaNotFound
		return SavedIdea{}, err
	}
	return record, nil
}

// List returns an owner's saved ideas, most recently updated first.
func (s *Store) List(ctx context.Context, ownerID string) (ideas []SavedIdea, err error) {
	defer func() { telemetry.RecordCatalogOp("list", err) }()
	if s == nil || s.db == nil {
		return nil, errors.New("catalog store not initialised")
	}
	ideas = []SavedIdea{}
	if err = s.db.SelectContext(ctx, &ideas,
		`SELECT * FROM saved_ideas WHERE owner_id = ? ORDER BY updated_at DESC`, ownerID); err != nil {
		return nil, fmt.Errorf("select ideas: %w", err)
	}
	return ideas, nil
}

// Get fetches one idea scoped to its owner.
func (s *Store) Get(ctx context.Context, ownerID, id string) (saved *SavedIdea, err error) {
	defer func() { telemetry.RecordCatalogOp("get", err) }()
	if s == nil || s.db == nil {
		return nil, errors.New("catalog store not initialised")
	}
	var record SavedIdea
	if err = s.db.GetContext(ctx, &record,
		`SELECT * FROM saved_ideas WHERE id = ? AND owner_id = ?`, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrIdeaNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Delete removes one idea; it reports whether a row existed.
func (s *Store) Delete(ctx context.Context, ownerID, id string) (deleted bool, err error) {
	defer func() { telemetry.RecordCatalogOp("delete", err) }()
	if s == nil || s.db == nil {
		return false, errors.New("catalog store not initialised")
	}
	res, execErr := s.db.ExecContext(ctx,
		`DELETE FROM saved_ideas WHERE id = ? AND owner_id = ?`, id, ownerID)
	if execErr != nil {
		err = fmt.Errorf("delete idea: %w", execErr)
		return false, err
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

// Share clones a snapshot into the public table and returns its share ID.
// Shared rows carry no owner and are readable by anyone with the ID.
func (s *Store) Share(ctx context.Context, record SharedIdea) (shareID string, err error) {
	defer func() { telemetry.RecordCatalogOp("share", err) }()
	if s == nil || s.db == nil {
		return "", errors.New("catalog store not initialised")
	}
	if len(record.Snapshot) == 0 {
		return "", errors.New("idea snapshot required")
	}
	record.ShareID = uuid.NewString()
	record.CreatedAt = time.Now().UTC()
	if _, err = s.db.ExecContext(ctx,
		`INSERT INTO shared_ideas (share_id, idea_name, snapshot, analysis, ledger, created_at)
                 VALUES (?, ?, ?, ?, ?, ?)`,
		record.ShareID, record.IdeaName, string(record.Snapshot),
		nullable(record.Analysis), nullable(record.Ledger), record.CreatedAt); err != nil {
		return "", fmt.Errorf("insert shared idea: %w", err)
	}
	return record.ShareID, nil
}

// Shared reads a public share by ID.
func (s *Store) Shared(ctx context.Context, shareID string) (shared *SharedIdea, err error) {
	defer func() { telemetry.RecordCatalogOp("shared", err) }()
	if s == nil || s.db == nil {
		return nil, errors.New("catalog store not initialised")
	}
	var record SharedIdea
	if err = s.db.GetContext(ctx, &record,
		`SELECT * FROM shared_ideas WHERE share_id = ?`, shareID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrIdeaNotFound
		}
		return nil, err
	}
	return &record, nil
}

func nullable(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
