package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vaultpass/batpass-go/internal/model"
)

var ErrInvalidLimit = errors.New("limit must be positive")

// EventRepository handles generation event persistence operations.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a generation event and sets the generated ID on the event struct.
func (r *EventRepository) Create(ctx context.Context, event *model.GenerationEvent) error {
	query := `INSERT INTO generation_events (length, upper, lower, digits, symbols, strength)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		event.Length,
		event.Upper,
		event.Lower,
		event.Digits,
		event.Symbols,
		event.Strength,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	event.ID = id
	return nil
}

// Summary aggregates all recorded events.
func (r *EventRepository) Summary(ctx context.Context) (*model.Stats, error) {
	query := `SELECT COUNT(*), COALESCE(AVG(length), 0), COALESCE(AVG(strength), 0), MAX(created_at)
		FROM generation_events`

	stats := &model.Stats{}
	var last sql.NullTime
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.Total, &stats.AvgLength, &stats.AvgStrength, &last,
	)
	if err != nil {
		return nil, err
	}

	if last.Valid {
		stats.LastGenerated = &last.Time
	}
	return stats, nil
}

// CountByStrength returns the number of events per strength score.
// Scores with no events are absent from the map.
func (r *EventRepository) CountByStrength(ctx context.Context) (map[int]int64, error) {
	query := `SELECT strength, COUNT(*) FROM generation_events GROUP BY strength ORDER BY strength`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int64)
	for rows.Next() {
		var strength int
		var n int64
		if err := rows.Scan(&strength, &n); err != nil {
			return nil, err
		}
		counts[strength] = n
	}

	return counts, rows.Err()
}

// ListRecent retrieves the most recent events, newest first.
func (r *EventRepository) ListRecent(ctx context.Context, limit int) ([]model.GenerationEvent, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	query := `SELECT id, length, upper, lower, digits, symbols, strength, created_at
		FROM generation_events ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.GenerationEvent
	for rows.Next() {
		var e model.GenerationEvent
		if err := rows.Scan(
			&e.ID, &e.Length, &e.Upper, &e.Lower,
			&e.Digits, &e.Symbols, &e.Strength, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
