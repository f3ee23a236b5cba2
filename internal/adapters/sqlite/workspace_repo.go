package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/example/tabdeck/internal/core/tabstrip"
	"github.com/example/tabdeck/internal/ports/secondary"
)

// WorkspaceRepository implements secondary.WorkspaceStore with SQLite.
type WorkspaceRepository struct {
	db *sql.DB
}

// NewWorkspaceRepository creates a new SQLite workspace repository.
func NewWorkspaceRepository(db *sql.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// CreateWorkspace adds a workspace at the end of the list.
func (r *WorkspaceRepository) CreateWorkspace(ctx context.Context, name string) (*secondary.WorkspaceRecord, error) {
	record := &secondary.WorkspaceRecord{Name: name}
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(position) + 1, 0) FROM workspaces").Scan(&record.Position); err != nil {
			return fmt.Errorf("failed to get next workspace position: %w", err)
		}
		res, err := tx.ExecContext(ctx, "INSERT INTO workspaces (name, position) VALUES (?, ?)", name, record.Position)
		if err != nil {
			return fmt.Errorf("failed to create workspace: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to create workspace: %w", err)
		}
		record.ID = int(id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListWorkspaces retrieves workspaces by position.
func (r *WorkspaceRepository) ListWorkspaces(ctx context.Context) ([]*secondary.WorkspaceRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, position FROM workspaces ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	var records []*secondary.WorkspaceRecord
	for rows.Next() {
		record := &secondary.WorkspaceRecord{}
		if err := rows.Scan(&record.ID, &record.Name, &record.Position); err != nil {
			return nil, fmt.Errorf("failed to scan workspace: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// AssignToWorkspace assigns a tab or group to a workspace, replacing any
// earlier assignment.
func (r *WorkspaceRepository) AssignToWorkspace(ctx context.Context, subject string, id, workspaceID int) error {
	if err := validateSubject(subject); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO workspace_assignments (subject, subject_id, workspace_id) VALUES (?, ?, ?)
		ON CONFLICT (subject, subject_id) DO UPDATE SET workspace_id = excluded.workspace_id`,
		subject, id, workspaceID,
	)
	if err != nil {
		return fmt.Errorf("failed to assign %s %d to workspace %d: %w", subject, id, workspaceID, err)
	}
	return nil
}

// ClearWorkspaceAssignment removes a tab's or group's assignment.
func (r *WorkspaceRepository) ClearWorkspaceAssignment(ctx context.Context, subject string, id int) error {
	if err := validateSubject(subject); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM workspace_assignments WHERE subject = ? AND subject_id = ?",
		subject, id,
	)
	if err != nil {
		return fmt.Errorf("failed to clear assignment: %w", err)
	}
	return nil
}

// ReorderByWorkspace re-sorts a window's free tabs and groups by workspace
// position. Unassigned units keep their relative order after assigned ones.
func (r *WorkspaceRepository) ReorderByWorkspace(ctx context.Context, windowID int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := windowExists(ctx, tx, windowID); err != nil {
			return err
		}
		keys, err := assignmentPositions(ctx, tx)
		if err != nil {
			return err
		}
		return mutateWindow(ctx, tx, windowID, func(s *tabstrip.Strip) error {
			s.SortUnits(func(u tabstrip.Unit) int {
				k := assignmentKey{subject: "item", id: u.TabID}
				if u.IsGroup() {
					k = assignmentKey{subject: "group", id: u.GroupID}
				}
				if pos, ok := keys[k]; ok {
					return pos
				}
				return math.MaxInt
			})
			return nil
		})
	})
}

type assignmentKey struct {
	subject string
	id      int
}

// assignmentPositions maps each assigned subject to its workspace's position.
func assignmentPositions(ctx context.Context, tx *sql.Tx) (map[assignmentKey]int, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT wa.subject, wa.subject_id, w.position
		FROM workspace_assignments wa
		JOIN workspaces w ON w.id = wa.workspace_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read assignments: %w", err)
	}
	defer rows.Close()

	keys := make(map[assignmentKey]int)
	for rows.Next() {
		var (
			k   assignmentKey
			pos int
		)
		if err := rows.Scan(&k.subject, &k.id, &pos); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		keys[k] = pos
	}
	return keys, rows.Err()
}

func validateSubject(subject string) error {
	if subject != "item" && subject != "group" {
		return fmt.Errorf("unknown assignment subject %q", subject)
	}
	return nil
}

var _ secondary.WorkspaceStore = (*WorkspaceRepository)(nil)
