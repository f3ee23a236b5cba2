package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/tabdeck/internal/core/tabstrip"
	"github.com/example/tabdeck/internal/ports/secondary"
)

// TabRepository implements secondary.TabStore with SQLite.
// Every mutation reloads the window, applies the ordered-collection operation
// and rewrites the window in one transaction.
type TabRepository struct {
	db *sql.DB
}

// NewTabRepository creates a new SQLite tab repository.
func NewTabRepository(db *sql.DB) *TabRepository {
	return &TabRepository{db: db}
}

const itemColumns = `t.id, t.window_id, t.position, t.pinned, t.group_id, t.title, t.url,
	COALESCE(wa.workspace_id, 0)`

const itemJoin = `FROM tabs t
	LEFT JOIN workspace_assignments wa ON wa.subject = 'item' AND wa.subject_id = t.id`

func scanItem(scan func(dest ...any) error) (*secondary.ItemRecord, error) {
	var (
		r       secondary.ItemRecord
		groupID sql.NullInt64
	)
	if err := scan(&r.ID, &r.WindowID, &r.Index, &r.Pinned, &groupID, &r.Title, &r.URL, &r.WorkspaceID); err != nil {
		return nil, err
	}
	r.GroupID = fromNullGroup(groupID)
	return &r, nil
}

// GetItem retrieves a tab with its current index.
func (r *TabRepository) GetItem(ctx context.Context, id int) (*secondary.ItemRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+itemColumns+" "+itemJoin+" WHERE t.id = ?", id)
	record, err := scanItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tab %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tab: %w", err)
	}
	return record, nil
}

// QueryItems retrieves tabs matching the filter, ordered by window then position.
func (r *TabRepository) QueryItems(ctx context.Context, filter secondary.ItemFilter) ([]*secondary.ItemRecord, error) {
	var (
		where []string
		args  []any
	)
	if filter.WindowID != 0 {
		where = append(where, "t.window_id = ?")
		args = append(args, filter.WindowID)
	}
	switch {
	case filter.GroupID == secondary.NoGroup:
		where = append(where, "t.group_id IS NULL")
	case filter.GroupID > 0:
		where = append(where, "t.group_id = ?")
		args = append(args, filter.GroupID)
	}
	if filter.Pinned != nil {
		where = append(where, "t.pinned = ?")
		args = append(args, *filter.Pinned)
	}

	query := "SELECT " + itemColumns + " " + itemJoin
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY t.window_id, t.position"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tabs: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ItemRecord
	for rows.Next() {
		record, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tab: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// GetGroup retrieves a group with its current index and members.
func (r *TabRepository) GetGroup(ctx context.Context, id int) (*secondary.GroupRecord, error) {
	record := &secondary.GroupRecord{ID: id, Index: -1}
	err := r.db.QueryRowContext(ctx,
		`SELECT g.window_id, g.title, g.color, COALESCE(wa.workspace_id, 0)
		FROM tab_groups g
		LEFT JOIN workspace_assignments wa ON wa.subject = 'group' AND wa.subject_id = g.id
		WHERE g.id = ?`,
		id,
	).Scan(&record.WindowID, &record.Title, &record.Color, &record.WorkspaceID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, "SELECT id, position FROM tabs WHERE group_id = ? ORDER BY position", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var memberID, position int
		if err := rows.Scan(&memberID, &position); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		if record.Index < 0 {
			record.Index = position
		}
		record.MemberIDs = append(record.MemberIDs, memberID)
	}
	return record, rows.Err()
}

// ListGroups retrieves the groups of a window in position order.
func (r *TabRepository) ListGroups(ctx context.Context, windowID int) ([]*secondary.GroupRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT group_id FROM tabs
		WHERE window_id = ? AND group_id IS NOT NULL
		GROUP BY group_id ORDER BY MIN(position)`,
		windowID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	groups := make([]*secondary.GroupRecord, 0, len(ids))
	for _, id := range ids {
		g, err := r.GetGroup(ctx, id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// MoveItem repositions a tab within its window.
func (r *TabRepository) MoveItem(ctx context.Context, id, index int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		windowID, err := windowOfTab(ctx, tx, id)
		if err != nil {
			return err
		}
		return mutateWindow(ctx, tx, windowID, func(s *tabstrip.Strip) error {
			return s.Move(id, index)
		})
	})
}

// MoveGroup repositions a whole group.
func (r *TabRepository) MoveGroup(ctx context.Context, groupID, index int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		windowID, err := windowOfGroup(ctx, tx, groupID)
		if err != nil {
			return err
		}
		return mutateWindow(ctx, tx, windowID, func(s *tabstrip.Strip) error {
			return s.MoveGroup(groupID, index)
		})
	})
}

// GroupItems adds tabs to a group at its tail. groupID 0 creates a new group
// in the tabs' window.
func (r *TabRepository) GroupItems(ctx context.Context, ids []int, groupID int) (int, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("no tabs to group")
	}
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		windowID, err := windowOfTab(ctx, tx, ids[0])
		if err != nil {
			return err
		}
		for _, id := range ids[1:] {
			other, err := windowOfTab(ctx, tx, id)
			if err != nil {
				return err
			}
			if other != windowID {
				return fmt.Errorf("tab %d is in window %d, not %d", id, other, windowID)
			}
		}

		if groupID == 0 {
			res, err := tx.ExecContext(ctx, "INSERT INTO tab_groups (window_id) VALUES (?)", windowID)
			if err != nil {
				return fmt.Errorf("failed to create group: %w", err)
			}
			newID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to create group: %w", err)
			}
			groupID = int(newID)
		} else {
			groupWindow, err := windowOfGroup(ctx, tx, groupID)
			if err != nil {
				return err
			}
			if groupWindow != windowID {
				return fmt.Errorf("group %d is in window %d, not %d", groupID, groupWindow, windowID)
			}
		}

		return mutateWindow(ctx, tx, windowID, func(s *tabstrip.Strip) error {
			return s.Group(ids, groupID)
		})
	})
	if err != nil {
		return 0, err
	}
	return groupID, nil
}

// UngroupItem removes a tab from its group.
func (r *TabRepository) UngroupItem(ctx context.Context, id int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		windowID, err := windowOfTab(ctx, tx, id)
		if err != nil {
			return err
		}
		return mutateWindow(ctx, tx, windowID, func(s *tabstrip.Strip) error {
			return s.Ungroup(id)
		})
	})
}

// SetPinned pins or unpins a tab.
func (r *TabRepository) SetPinned(ctx context.Context, id int, pinned bool) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		windowID, err := windowOfTab(ctx, tx, id)
		if err != nil {
			return err
		}
		return mutateWindow(ctx, tx, windowID, func(s *tabstrip.Strip) error {
			return s.SetPinned(id, pinned)
		})
	})
}

// UpdateGroup sets a group's title and colour.
func (r *TabRepository) UpdateGroup(ctx context.Context, groupID int, title, color string) error {
	if color == "" {
		color = "grey"
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE tab_groups SET title = ?, color = ? WHERE id = ?",
		title, color, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("group %d not found", groupID)
	}
	return nil
}

// CreateTab appends a tab to a window, or to the end of its pinned strip.
// The record's ID and Index are filled in.
func (r *TabRepository) CreateTab(ctx context.Context, record *secondary.ItemRecord) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := windowExists(ctx, tx, record.WindowID); err != nil {
			return err
		}
		s, err := loadStrip(ctx, tx, record.WindowID)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			"INSERT INTO tabs (window_id, position, pinned, title, url) VALUES (?, ?, ?, ?, ?)",
			record.WindowID, s.Len(), record.Pinned, record.Title, record.URL,
		)
		if err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}

		record.ID = int(id)
		record.GroupID = secondary.NoGroup
		s.Add(tabstrip.Tab{ID: record.ID, Pinned: record.Pinned, GroupID: tabstrip.NoGroup})
		record.Index = s.IndexOf(record.ID)
		return saveStrip(ctx, tx, record.WindowID, s)
	})
}

var _ secondary.TabStore = (*TabRepository)(nil)
