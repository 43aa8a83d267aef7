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

// ListContactsRequest 联系人列表请求
type ListContactsRequest struct {
	Filters  repository.ContactFilters
	Page     int
	PageSize int
}

// ListContactsResponse 联系人列表响应
type ListContactsResponse struct {
	Items []*domain.Contact
	Total int
	Page  int
	Size  int
}

// ContactService 联系人CRUD服务（薄封装，决策逻辑在批量/签到/活动服务里）
type ContactService interface {
	ListContacts(ctx context.Context, req ListContactsRequest) (*ListContactsResponse, error)
	GetContact(ctx context.Context, contactID int64) (*domain.Contact, error)
	CreateContact(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
	UpdateContact(ctx context.Context, contactID int64, contact *domain.Contact) (*domain.Contact, error)
	DeleteContact(ctx context.Context, contactID int64) error
}

type contactService struct {
	contacts  repository.ContactsRepository
	directory StaffDirectory
	logger    *zap.Logger
}

// NewContactService 创建 ContactService 实例
func NewContactService(contacts repository.ContactsRepository, directory StaffDirectory, logger *zap.Logger) ContactService {
	return &contactService{
		contacts:  contacts,
		directory: directory,
		logger:    logger,
	}
}

func (s *contactService) ListContacts(ctx context.Context, req ListContactsRequest) (*ListContactsResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.PageSize
	if size < 1 {
		size = 20
	}
	if size > 200 {
		size = 200
	}

	items, total, err := s.contacts.ListContacts(ctx, req.Filters, page, size)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	if items == nil {
		items = []*domain.Contact{}
	}
	return &ListContactsResponse{Items: items, Total: total, Page: page, Size: size}, nil
}

func (s *contactService) GetContact(ctx context.Context, contactID int64) (*domain.Contact, error) {
	c, err := s.contacts.GetContact(ctx, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: contact %d", ErrNotFound, contactID)
		}
		return nil, err
	}
	return c, nil
}

func (s *contactService) CreateContact(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	if err := s.validateContact(ctx, contact); err != nil {
		return nil, err
	}
	id, err := s.contacts.CreateContact(ctx, contact)
	if err != nil {
		return nil, err
	}
	return s.GetContact(ctx, id)
}

func (s *contactService) UpdateContact(ctx context.Context, contactID int64, contact *domain.Contact) (*domain.Contact, error) {
	if err := s.validateContact(ctx, contact); err != nil {
		return nil, err
	}
	if err := s.contacts.UpdateContact(ctx, contactID, contact); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: contact %d", ErrNotFound, contactID)
		}
		return nil, err
	}
	return s.GetContact(ctx, contactID)
}

func (s *contactService) DeleteContact(ctx context.Context, contactID int64) error {
	if err := s.contacts.DeleteContact(ctx, contactID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: contact %d", ErrNotFound, contactID)
		}
		return err
	}
	s.logger.Info("contact deleted", zap.Int64("contact_id", contactID))
	return nil
}

// validateContact 表单级校验：姓名必填、枚举字段取值合法、分配的员工存在
func (s *contactService) validateContact(ctx context.Context, contact *domain.Contact) error {
	if contact == nil || strings.TrimSpace(contact.Name) == "" {
		return fmt.Errorf("%w: contact name is required", ErrValidation)
	}
	for field, value := range map[string]string{
		domain.FieldCategory:   contact.Category,
		domain.FieldPriority:   contact.Priority,
		domain.FieldStatus:     contact.Status,
		domain.FieldTeam:       contact.Team,
		domain.FieldOccupation: contact.Occupation,
		domain.FieldSex:        contact.Sex,
	} {
		if value != "" && !domain.IsValidFieldValue(field, value) {
			return fmt.Errorf("%w: invalid %s %q", ErrValidation, field, value)
		}
	}
	contact.AssignedTo = contact.AssignedTo.Dedup()
	if len(contact.AssignedTo) > 0 {
		missing, err := s.directory.MissingStaff(ctx, contact.AssignedTo)
		if err != nil {
			return fmt.Errorf("failed to validate staff ids: %w", err)
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: unknown staff ids: %s", ErrValidation, missing.String())
		}
	}
	return nil
}
