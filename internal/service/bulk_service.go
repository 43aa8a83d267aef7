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

// BulkUpdateRequest 批量字段更新请求
// Value 用于标量字段；Assignees/Mode 仅用于 assignedTo
type BulkUpdateRequest struct {
	ContactIDs []int64
	Field      string
	Value      string
	Assignees  domain.StaffIDList
	Mode       domain.MergeMode
}

// BulkUpdateResult 按记录的成败分类
// Succeeded ∪ Failed.keys 恰好等于（去重后的）输入ID集合
type BulkUpdateResult struct {
	Succeeded []int64
	Failed    map[int64]ErrorKind
}

// BulkUpdateService 批量字段更新编排
type BulkUpdateService interface {
	BulkUpdate(ctx context.Context, req BulkUpdateRequest) (*BulkUpdateResult, error)
}

type bulkUpdateService struct {
	contacts  repository.ContactsRepository
	directory StaffDirectory
	logger    *zap.Logger
}

// NewBulkUpdateService 创建 BulkUpdateService 实例
func NewBulkUpdateService(contacts repository.ContactsRepository, directory StaffDirectory, logger *zap.Logger) BulkUpdateService {
	return &bulkUpdateService{
		contacts:  contacts,
		directory: directory,
		logger:    logger,
	}
}

// BulkUpdate 在选中的联系人集合上应用单字段变更
// 逐条处理：单条失败只记录该条，不中断整批（部分失败语义，非整批事务）
func (s *bulkUpdateService) BulkUpdate(ctx context.Context, req BulkUpdateRequest) (*BulkUpdateResult, error) {
	ids := dedupIDs(req.ContactIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: contact id set is empty", ErrValidation)
	}
	if !domain.IsBulkEditableField(req.Field) {
		return nil, fmt.Errorf("%w: field %q is not bulk-editable", ErrValidation, req.Field)
	}

	result := &BulkUpdateResult{
		Succeeded: make([]int64, 0, len(ids)),
		Failed:    make(map[int64]ErrorKind),
	}

	switch req.Field {
	case domain.FieldAssignedTo:
		if err := s.bulkAssign(ctx, ids, req, result); err != nil {
			return nil, err
		}
	case domain.FieldCity:
		value := strings.TrimSpace(req.Value)
		if value == "" {
			return nil, fmt.Errorf("%w: city value is empty", ErrValidation)
		}
		s.bulkScalar(ctx, ids, req.Field, value, result)
	default:
		if req.Value == "" {
			return nil, fmt.Errorf("%w: value is empty", ErrValidation)
		}
		if !domain.IsValidFieldValue(req.Field, req.Value) {
			// 枚举取值非法：每个目标联系人都按 InvalidValue 失败，不产生任何写入
			for _, id := range ids {
				result.Failed[id] = ErrorKindInvalidValue
			}
			return result, nil
		}
		s.bulkScalar(ctx, ids, req.Field, req.Value, result)
	}

	s.logger.Info("bulk update finished",
		zap.String("field", req.Field),
		zap.Int("requested", len(ids)),
		zap.Int("succeeded", len(result.Succeeded)),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

// bulkAssign assignedTo 路径：合并模式默认 replace，员工ID先过目录校验
// 每条都在写入时刻读取自己的现值做合并，不复用整批快照
func (s *bulkUpdateService) bulkAssign(ctx context.Context, ids []int64, req BulkUpdateRequest, result *BulkUpdateResult) error {
	assignees := req.Assignees.Dedup()
	if len(assignees) == 0 {
		return fmt.Errorf("%w: %s", ErrValidation, domain.ErrNoAssignees)
	}
	mode := req.Mode
	if mode == "" {
		mode = domain.MergeReplace
	}
	if !domain.IsValidMergeMode(mode) {
		return fmt.Errorf("%w: unknown merge mode %q", ErrValidation, string(req.Mode))
	}

	missing, err := s.directory.MissingStaff(ctx, assignees)
	if err != nil {
		return fmt.Errorf("failed to validate staff ids: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: unknown staff ids: %s", ErrValidation, missing.String())
	}

	for _, id := range ids {
		current, err := s.contacts.GetContact(ctx, id)
		if err != nil {
			result.Failed[id] = classifyRepoError(err)
			continue
		}
		merged, err := domain.MergeAssignees(current.AssignedTo, assignees, mode)
		if err != nil {
			// assignees 已校验非空，正常流程不会走到这里
			result.Failed[id] = ErrorKindInvalidValue
			continue
		}
		if err := s.contacts.UpdateAssignedTo(ctx, id, merged); err != nil {
			result.Failed[id] = classifyRepoError(err)
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return nil
}

// bulkScalar 标量字段路径：每条一次写入
func (s *bulkUpdateService) bulkScalar(ctx context.Context, ids []int64, field, value string, result *BulkUpdateResult) {
	for _, id := range ids {
		if err := s.contacts.UpdateContactField(ctx, id, field, value); err != nil {
			result.Failed[id] = classifyRepoError(err)
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
}

func classifyRepoError(err error) ErrorKind {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrorKindNotFound
	}
	return ErrorKindPersistence
}

func dedupIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
