package repository

import (
	"context"

	"outreach-data/internal/domain"
)

// EventsRepository 活动Repository接口
type EventsRepository interface {
	GetEvent(ctx context.Context, eventID int64) (*domain.Event, error)
	ListEvents(ctx context.Context, page, size int) ([]*domain.Event, int, error)
	CreateEvent(ctx context.Context, event *domain.Event) (int64, error)
	UpdateEvent(ctx context.Context, eventID int64, event *domain.Event) error
}
