package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ndtran/shoutbox/internal/model"
)

// SaveDraft inserts or replaces a shout-out draft.
func (s *SQLiteStore) SaveDraft(ctx context.Context, draft model.Draft) error {
	recipients, err := json.Marshal(draft.RecipientIDs)
	if err != nil {
		return fmt.Errorf("marshaling draft recipients: %w", err)
	}

	const query = `
		INSERT OR REPLACE INTO drafts (id, message, recipient_ids, updated_at)
		VALUES (?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		draft.ID, draft.Message, string(recipients), draft.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving draft %s: %w", draft.ID, err)
	}
	return nil
}

// GetDrafts returns all saved drafts, most recently edited first.
func (s *SQLiteStore) GetDrafts(ctx context.Context) ([]model.Draft, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, message, recipient_ids, updated_at
		FROM drafts
		ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying drafts: %w", err)
	}
	defer rows.Close()

	var drafts []model.Draft
	for rows.Next() {
		var d model.Draft
		var recipients string
		if err := rows.Scan(&d.ID, &d.Message, &recipients, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning draft row: %w", err)
		}
		if err := json.Unmarshal([]byte(recipients), &d.RecipientIDs); err != nil {
			return nil, fmt.Errorf("unmarshaling draft recipients: %w", err)
		}
		drafts = append(drafts, d)
	}

	return drafts, rows.Err()
}

// DeleteDraft removes a draft, typically after it has been posted.
func (s *SQLiteStore) DeleteDraft(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM drafts WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting draft %s: %w", id, err)
	}
	return nil
}
