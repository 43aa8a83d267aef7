package domain

import "time"

// Event 活动领域模型（对应 events 表）
type Event struct {
	EventID     int64      `db:"event_id"` // BIGSERIAL, PRIMARY KEY
	EventName   string     `db:"event_name"`
	EventDate   *time.Time `db:"event_date"` // DATE, nullable
	Location    string     `db:"location"`
	Description string     `db:"description"`
	CreatedAt   time.Time  `db:"created_at"`
}
