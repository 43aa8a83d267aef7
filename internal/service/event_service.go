package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"outreach-data/internal/domain"
	"outreach-data/internal/repository"

	"go.uber.org/zap"
)

// ListEventsResponse 活动列表响应
type ListEventsResponse struct {
	Items []*domain.Event
	Total int
	Page  int
	Size  int
}

// EventService 活动CRUD服务
type EventService interface {
	ListEvents(ctx context.Context, page, size int) (*ListEventsResponse, error)
	GetEvent(ctx context.Context, eventID int64) (*domain.Event, error)
	CreateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error)
	UpdateEvent(ctx context.Context, eventID int64, event *domain.Event) (*domain.Event, error)
	// ListAttendance 活动签到名单
	ListAttendance(ctx context.Context, eventID int64) ([]*domain.AttendanceRecord, error)
}

type eventService struct {
	events     repository.EventsRepository
	attendance repository.AttendanceRepository
	logger     *zap.Logger
}

// NewEventService 创建 EventService 实例
func NewEventService(events repository.EventsRepository, attendance repository.AttendanceRepository, logger *zap.Logger) EventService {
	return &eventService{
		events:     events,
		attendance: attendance,
		logger:     logger,
	}
}

func (s *eventService) ListEvents(ctx context.Context, page, size int) (*ListEventsResponse, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	if size > 200 {
		size = 200
	}
	items, total, err := s.events.ListEvents(ctx, page, size)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if items == nil {
		items = []*domain.Event{}
	}
	return &ListEventsResponse{Items: items, Total: total, Page: page, Size: size}, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID int64) (*domain.Event, error) {
	e, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: event %d", ErrNotFound, eventID)
		}
		return nil, err
	}
	return e, nil
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if event == nil || strings.TrimSpace(event.EventName) == "" {
		return nil, fmt.Errorf("%w: event name is required", ErrValidation)
	}
	id, err := s.events.CreateEvent(ctx, event)
	if err != nil {
		return nil, err
	}
	return s.GetEvent(ctx, id)
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID int64, event *domain.Event) (*domain.Event, error) {
	if event == nil || strings.TrimSpace(event.EventName) == "" {
		return nil, fmt.Errorf("%w: event name is required", ErrValidation)
	}
	if err := s.events.UpdateEvent(ctx, eventID, event); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: event %d", ErrNotFound, eventID)
		}
		return nil, err
	}
	return s.GetEvent(ctx, eventID)
}

func (s *eventService) ListAttendance(ctx context.Context, eventID int64) ([]*domain.AttendanceRecord, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	records, err := s.attendance.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*domain.AttendanceRecord{}
	}
	return records, nil
}
