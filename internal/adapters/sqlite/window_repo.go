package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tabdeck/internal/core/tabstrip"
	"github.com/example/tabdeck/internal/ports/secondary"
)

// WindowRepository implements secondary.WindowStore with SQLite.
type WindowRepository struct {
	db *sql.DB
}

// NewWindowRepository creates a new SQLite window repository.
func NewWindowRepository(db *sql.DB) *WindowRepository {
	return &WindowRepository{db: db}
}

// CreateWindow opens a new empty window.
func (r *WindowRepository) CreateWindow(ctx context.Context) (*secondary.WindowRecord, error) {
	res, err := r.db.ExecContext(ctx, "INSERT INTO windows (focused) VALUES (0)")
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	return &secondary.WindowRecord{ID: int(id)}, nil
}

// GetWindow retrieves a window by ID.
func (r *WindowRepository) GetWindow(ctx context.Context, id int) (*secondary.WindowRecord, error) {
	record := &secondary.WindowRecord{}
	err := r.db.QueryRowContext(ctx, "SELECT id, focused FROM windows WHERE id = ?", id).
		Scan(&record.ID, &record.Focused)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("window %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get window: %w", err)
	}
	return record, nil
}

// ListWindows retrieves all windows in creation order.
func (r *WindowRepository) ListWindows(ctx context.Context) ([]*secondary.WindowRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, focused FROM windows ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}
	defer rows.Close()

	var records []*secondary.WindowRecord
	for rows.Next() {
		record := &secondary.WindowRecord{}
		if err := rows.Scan(&record.ID, &record.Focused); err != nil {
			return nil, fmt.Errorf("failed to scan window: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// MoveItemToWindow relocates a tab to the end of another window, unpinned and ungrouped.
func (r *WindowRepository) MoveItemToWindow(ctx context.Context, itemID, windowID int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		source, err := windowOfTab(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if err := windowExists(ctx, tx, windowID); err != nil {
			return err
		}

		if source == windowID {
			return mutateWindow(ctx, tx, windowID, func(s *tabstrip.Strip) error {
				tab, err := s.Remove(itemID)
				if err != nil {
					return err
				}
				tab.Pinned = false
				s.Add(tab)
				return nil
			})
		}

		src, err := loadStrip(ctx, tx, source)
		if err != nil {
			return err
		}
		tab, err := src.Remove(itemID)
		if err != nil {
			return err
		}
		dst, err := loadStrip(ctx, tx, windowID)
		if err != nil {
			return err
		}
		tab.Pinned = false
		dst.Add(tab)
		if err := saveStrip(ctx, tx, windowID, dst); err != nil {
			return err
		}
		return saveStrip(ctx, tx, source, src)
	})
}

// MoveGroupToWindow relocates a whole group to the end of another window.
func (r *WindowRepository) MoveGroupToWindow(ctx context.Context, groupID, windowID int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		source, err := windowOfGroup(ctx, tx, groupID)
		if err != nil {
			return err
		}
		if err := windowExists(ctx, tx, windowID); err != nil {
			return err
		}
		if source == windowID {
			return mutateWindow(ctx, tx, windowID, func(s *tabstrip.Strip) error {
				block, err := s.RemoveGroup(groupID)
				if err != nil {
					return err
				}
				s.AddGroup(block)
				return nil
			})
		}

		src, err := loadStrip(ctx, tx, source)
		if err != nil {
			return err
		}
		block, err := src.RemoveGroup(groupID)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, "UPDATE tab_groups SET window_id = ? WHERE id = ?", windowID, groupID); err != nil {
			return fmt.Errorf("failed to move group: %w", err)
		}
		dst, err := loadStrip(ctx, tx, windowID)
		if err != nil {
			return err
		}
		dst.AddGroup(block)
		if err := saveStrip(ctx, tx, windowID, dst); err != nil {
			return err
		}
		return saveStrip(ctx, tx, source, src)
	})
}

// FocusWindow marks one window as focused and clears the flag on the others.
func (r *WindowRepository) FocusWindow(ctx context.Context, windowID int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := windowExists(ctx, tx, windowID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "UPDATE windows SET focused = (id = ?)", windowID); err != nil {
			return fmt.Errorf("failed to focus window: %w", err)
		}
		return nil
	})
}

var _ secondary.WindowStore = (*WindowRepository)(nil)
