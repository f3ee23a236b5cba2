// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/tabdeck/internal/core/tabstrip"
	"github.com/example/tabdeck/internal/ports/secondary"
)

// withTx runs fn in a transaction, committing only when fn succeeds.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// loadStrip reads a window's tabs in position order.
func loadStrip(ctx context.Context, tx *sql.Tx, windowID int) (*tabstrip.Strip, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT id, pinned, group_id FROM tabs WHERE window_id = ? ORDER BY position, id",
		windowID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load window %d: %w", windowID, err)
	}
	defer rows.Close()

	var tabs []tabstrip.Tab
	for rows.Next() {
		var (
			t       tabstrip.Tab
			groupID sql.NullInt64
		)
		if err := rows.Scan(&t.ID, &t.Pinned, &groupID); err != nil {
			return nil, fmt.Errorf("failed to scan tab: %w", err)
		}
		t.GroupID = fromNullGroup(groupID)
		tabs = append(tabs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load window %d: %w", windowID, err)
	}
	return tabstrip.New(tabs), nil
}

// saveStrip writes positions, pinned flags and memberships back, then drops
// groups that lost their last member.
func saveStrip(ctx context.Context, tx *sql.Tx, windowID int, s *tabstrip.Strip) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("refusing to save window %d: %w", windowID, err)
	}
	for i, t := range s.Tabs() {
		_, err := tx.ExecContext(ctx,
			"UPDATE tabs SET window_id = ?, position = ?, pinned = ?, group_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			windowID, i, t.Pinned, toNullGroup(t.GroupID), t.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to save tab %d: %w", t.ID, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM tab_groups WHERE id NOT IN (SELECT DISTINCT group_id FROM tabs WHERE group_id IS NOT NULL)",
	); err != nil {
		return fmt.Errorf("failed to drop empty groups: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM workspace_assignments WHERE subject = 'group' AND subject_id NOT IN (SELECT id FROM tab_groups)",
	); err != nil {
		return fmt.Errorf("failed to drop stale group assignments: %w", err)
	}
	return nil
}

// mutateWindow loads a window, applies fn and saves the result.
func mutateWindow(ctx context.Context, tx *sql.Tx, windowID int, fn func(s *tabstrip.Strip) error) error {
	s, err := loadStrip(ctx, tx, windowID)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return translateStripError(err)
	}
	return saveStrip(ctx, tx, windowID, s)
}

func windowOfTab(ctx context.Context, tx *sql.Tx, id int) (int, error) {
	var windowID int
	err := tx.QueryRowContext(ctx, "SELECT window_id FROM tabs WHERE id = ?", id).Scan(&windowID)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("tab %d not found", id)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get tab: %w", err)
	}
	return windowID, nil
}

func windowOfGroup(ctx context.Context, tx *sql.Tx, id int) (int, error) {
	var windowID int
	err := tx.QueryRowContext(ctx, "SELECT window_id FROM tab_groups WHERE id = ?", id).Scan(&windowID)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("group %d not found", id)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get group: %w", err)
	}
	return windowID, nil
}

func windowExists(ctx context.Context, tx *sql.Tx, id int) error {
	var found int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM windows WHERE id = ?", id).Scan(&found)
	if err == sql.ErrNoRows {
		return fmt.Errorf("window %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("failed to get window: %w", err)
	}
	return nil
}

func translateStripError(err error) error {
	if errors.Is(err, tabstrip.ErrMiddleOfGroup) {
		return fmt.Errorf("%w: %v", secondary.ErrMiddleOfGroup, err)
	}
	return err
}

func toNullGroup(gid int) sql.NullInt64 {
	if gid == tabstrip.NoGroup {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(gid), Valid: true}
}

func fromNullGroup(v sql.NullInt64) int {
	if !v.Valid {
		return secondary.NoGroup
	}
	return int(v.Int64)
}
