package repository

import (
	"context"
	"database/sql"
	"fmt"

	"outreach-data/internal/domain"
)

// PostgresEventsRepository 活动Repository实现
type PostgresEventsRepository struct {
	db *sql.DB
}

// NewPostgresEventsRepository 创建活动Repository
func NewPostgresEventsRepository(db *sql.DB) *PostgresEventsRepository {
	return &PostgresEventsRepository{db: db}
}

var _ EventsRepository = (*PostgresEventsRepository)(nil)

const eventColumns = `
	event_id,
	event_name,
	event_date,
	COALESCE(location, '') as location,
	COALESCE(description, '') as description,
	created_at
`

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	var e domain.Event
	var eventDate sql.NullTime
	err := row.Scan(
		&e.EventID,
		&e.EventName,
		&eventDate,
		&e.Location,
		&e.Description,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if eventDate.Valid {
		e.EventDate = &eventDate.Time
	}
	return &e, nil
}

// GetEvent 根据event_id获取活动
func (r *PostgresEventsRepository) GetEvent(ctx context.Context, eventID int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE event_id = $1`
	e, err := scanEvent(r.db.QueryRowContext(ctx, query, eventID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return e, nil
}

// ListEvents 分页查询（按活动日期倒序，最近的在前）
func (r *PostgresEventsRepository) ListEvents(ctx context.Context, page, size int) ([]*domain.Event, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	query := `SELECT ` + eventColumns + `
		FROM events
		ORDER BY event_date DESC NULLS LAST, event_id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, size, (page-1)*size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read events: %w", err)
	}
	return events, total, nil
}

// CreateEvent 创建活动，返回新主键
func (r *PostgresEventsRepository) CreateEvent(ctx context.Context, event *domain.Event) (int64, error) {
	if event == nil {
		return 0, fmt.Errorf("event is required")
	}
	query := `
		INSERT INTO events (event_name, event_date, location, description)
		VALUES ($1, $2, $3, $4)
		RETURNING event_id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		event.EventName,
		nullTime(event.EventDate),
		event.Location,
		event.Description,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}
	return id, nil
}

// UpdateEvent 整条更新
func (r *PostgresEventsRepository) UpdateEvent(ctx context.Context, eventID int64, event *domain.Event) error {
	if event == nil {
		return fmt.Errorf("event is required")
	}
	query := `
		UPDATE events SET
			event_name = $1, event_date = $2, location = $3, description = $4
		WHERE event_id = $5`

	res, err := r.db.ExecContext(ctx, query,
		event.EventName,
		nullTime(event.EventDate),
		event.Location,
		event.Description,
		eventID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return requireRowAffected(res)
}
