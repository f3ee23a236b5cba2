package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/tabdeck/internal/ctxutil"
	"github.com/example/tabdeck/internal/ports/secondary"
)

// GestureEventRepository implements secondary.GestureEventRepository with SQLite.
type GestureEventRepository struct {
	db *sql.DB
}

// NewGestureEventRepository creates a new SQLite gesture event repository.
func NewGestureEventRepository(db *sql.DB) *GestureEventRepository {
	return &GestureEventRepository{db: db}
}

// Create persists a new event.
func (r *GestureEventRepository) Create(ctx context.Context, record *secondary.GestureEventRecord) error {
	data := record.Data
	if data == "" {
		data = "{}"
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO gesture_events (gesture_id, phase, data) VALUES (?, ?, ?)",
		record.GestureID, record.Phase, data,
	)
	if err != nil {
		return fmt.Errorf("failed to create gesture event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to create gesture event: %w", err)
	}
	record.ID = int(id)
	return nil
}

// List retrieves the most recent events, newest first.
func (r *GestureEventRepository) List(ctx context.Context, gestureID string, limit int) ([]*secondary.GestureEventRecord, error) {
	query := "SELECT id, gesture_id, phase, data, created_at FROM gesture_events"
	var args []any
	if gestureID != "" {
		query += " WHERE gesture_id = ?"
		args = append(args, gestureID)
	}
	query += " ORDER BY id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list gesture events: %w", err)
	}
	defer rows.Close()

	var records []*secondary.GestureEventRecord
	for rows.Next() {
		var (
			record    secondary.GestureEventRecord
			createdAt time.Time
		)
		if err := rows.Scan(&record.ID, &record.GestureID, &record.Phase, &record.Data, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan gesture event: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		records = append(records, &record)
	}
	return records, rows.Err()
}

// EventLog implements secondary.EventSink by persisting events to the audit table.
// Write failures are dropped: the audit log never fails a gesture.
type EventLog struct {
	repo secondary.GestureEventRepository
}

// NewEventLog creates a new EventLog.
func NewEventLog(repo secondary.GestureEventRepository) *EventLog {
	return &EventLog{repo: repo}
}

// Record writes one event under the gesture id carried by ctx.
func (l *EventLog) Record(ctx context.Context, phase string, data map[string]any) {
	encoded, err := json.Marshal(data)
	if err != nil {
		encoded = []byte(fmt.Sprintf(`{"marshal_error":%q}`, err.Error()))
	}
	_ = l.repo.Create(ctx, &secondary.GestureEventRecord{
		GestureID: ctxutil.GestureFromContext(ctx),
		Phase:     phase,
		Data:      string(encoded),
	})
}

var (
	_ secondary.GestureEventRepository = (*GestureEventRepository)(nil)
	_ secondary.EventSink              = (*EventLog)(nil)
)
