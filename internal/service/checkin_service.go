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

// LookupStatus 号码解析结果状态
type LookupStatus string

const (
	LookupFound    LookupStatus = "found"
	LookupNotFound LookupStatus = "not_found"
)

// LookupResult 号码解析结果
// not_found 时 NormalizedPhone 交给新建联系人表单预填
type LookupResult struct {
	Status          LookupStatus
	NormalizedPhone string
	Contact         *domain.Contact
}

// CheckinResult 签到结果
// AlreadyPresent=true 表示该 (contact, event) 对已有记录，本次为幂等成功
type CheckinResult struct {
	ContactID      int64
	EventID        int64
	AlreadyPresent bool
}

// RegisterCheckinRequest 未找到联系人时的"建档+签到"请求
type RegisterCheckinRequest struct {
	EventID  int64
	Name     string
	Phone    string
	Email    string
	Category string
	Priority string
	Status   string
	City     string
}

// CheckinService 签到解析流程
// 失败一律原样上抛给调用方，由用户重新提交重试；本层不做重试
type CheckinService interface {
	// LookupByPhone 归一化原始号码并查找联系人
	// 非10位在任何存储访问之前拒绝（ErrValidation）
	LookupByPhone(ctx context.Context, rawPhone string) (*LookupResult, error)
	// CheckIn 为 (contact, event) 幂等记录签到
	CheckIn(ctx context.Context, contactID, eventID int64) (*CheckinResult, error)
	// RegisterAndCheckIn 创建联系人后立即为其签到
	RegisterAndCheckIn(ctx context.Context, req RegisterCheckinRequest) (*CheckinResult, error)
}

type checkinService struct {
	contacts   repository.ContactsRepository
	events     repository.EventsRepository
	attendance repository.AttendanceRepository
	logger     *zap.Logger
}

// NewCheckinService 创建 CheckinService 实例
func NewCheckinService(
	contacts repository.ContactsRepository,
	events repository.EventsRepository,
	attendance repository.AttendanceRepository,
	logger *zap.Logger,
) CheckinService {
	return &checkinService{
		contacts:   contacts,
		events:     events,
		attendance: attendance,
		logger:     logger,
	}
}

// LookupByPhone 归一化 + 按号码精确查找
func (s *checkinService) LookupByPhone(ctx context.Context, rawPhone string) (*LookupResult, error) {
	normalized, err := domain.NormalizePhone(rawPhone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	contact, err := s.contacts.GetContactByPhone(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &LookupResult{Status: LookupNotFound, NormalizedPhone: normalized}, nil
		}
		if errors.Is(err, repository.ErrAmbiguousPhone) {
			// 数据完整性问题：不选择任何一个，交外部处理
			s.logger.Warn("ambiguous phone lookup", zap.String("phone", normalized))
			return nil, fmt.Errorf("%w: phone %s matches multiple contacts", ErrAmbiguousPhone, normalized)
		}
		return nil, fmt.Errorf("failed to look up contact: %w", err)
	}
	return &LookupResult{Status: LookupFound, NormalizedPhone: normalized, Contact: contact}, nil
}

// CheckIn 幂等签到：已存在的 (contact, event) 对按成功处理，不产生第二条记录
func (s *checkinService) CheckIn(ctx context.Context, contactID, eventID int64) (*CheckinResult, error) {
	if contactID <= 0 || eventID <= 0 {
		return nil, fmt.Errorf("%w: contact_id and event_id are required", ErrValidation)
	}
	if _, err := s.events.GetEvent(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: event %d", ErrNotFound, eventID)
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}

	created, err := s.attendance.CreateIfAbsent(ctx, contactID, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: contact %d", ErrNotFound, contactID)
		}
		return nil, fmt.Errorf("failed to record attendance: %w", err)
	}
	if !created {
		s.logger.Info("duplicate check-in absorbed",
			zap.Int64("contact_id", contactID),
			zap.Int64("event_id", eventID),
		)
	}
	return &CheckinResult{ContactID: contactID, EventID: eventID, AlreadyPresent: !created}, nil
}

// RegisterAndCheckIn 建档+签到：not_found 分支的延续
func (s *checkinService) RegisterAndCheckIn(ctx context.Context, req RegisterCheckinRequest) (*CheckinResult, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: contact name is required", ErrValidation)
	}
	if _, err := domain.NormalizePhone(req.Phone); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	for field, value := range map[string]string{
		domain.FieldCategory: req.Category,
		domain.FieldPriority: req.Priority,
		domain.FieldStatus:   req.Status,
	} {
		if value != "" && !domain.IsValidFieldValue(field, value) {
			return nil, fmt.Errorf("%w: invalid %s %q", ErrValidation, field, value)
		}
	}

	contact := &domain.Contact{
		Name:     strings.TrimSpace(req.Name),
		Phone:    req.Phone,
		Email:    req.Email,
		Category: req.Category,
		Priority: req.Priority,
		Status:   req.Status,
		City:     req.City,
	}
	contactID, err := s.contacts.CreateContact(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	s.logger.Info("contact created via check-in",
		zap.Int64("contact_id", contactID),
		zap.Int64("event_id", req.EventID),
	)
	return s.CheckIn(ctx, contactID, req.EventID)
}
