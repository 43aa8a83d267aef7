package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"outreach-data/internal/domain"
	"outreach-data/internal/repository"

	"go.uber.org/zap"
)

// CreateCampaignRequest 活动创建请求
type CreateCampaignRequest struct {
	ContactIDs  []int64
	Name        string
	Description string
	DueDate     *time.Time
}

// CreateCampaignResponse 活动创建结果
// Tasks: 每位归属员工一条；SkippedContactIDs: 无分配员工或已不存在、未参与分发的联系人
type CreateCampaignResponse struct {
	Tasks             []*domain.Task
	SkippedContactIDs []int64
}

// CampaignService 活动分发编排
type CampaignService interface {
	CreateCampaign(ctx context.Context, req CreateCampaignRequest) (*CreateCampaignResponse, error)
	ListTasks(ctx context.Context, assigneeID string) ([]*domain.Task, error)
}

type campaignService struct {
	contacts repository.ContactsRepository
	tasks    repository.TasksRepository
	logger   *zap.Logger
}

// NewCampaignService 创建 CampaignService 实例
func NewCampaignService(contacts repository.ContactsRepository, tasks repository.TasksRepository, logger *zap.Logger) CampaignService {
	return &campaignService{
		contacts: contacts,
		tasks:    tasks,
		logger:   logger,
	}
}

// CreateCampaign 活动创建：按当前 assignedTo 首位员工分发，每位员工写一条任务
// 分发计划为空（无联系人或全部无分配）不是错误：返回零任务
func (s *campaignService) CreateCampaign(ctx context.Context, req CreateCampaignRequest) (*CreateCampaignResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: campaign name is required", ErrValidation)
	}

	ids := dedupIDs(req.ContactIDs)
	resp := &CreateCampaignResponse{
		Tasks:             []*domain.Task{},
		SkippedContactIDs: []int64{},
	}

	// 用写入时刻的现值分发，不信任调用方快照
	var contacts []*domain.Contact
	for _, id := range ids {
		c, err := s.contacts.GetContact(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				resp.SkippedContactIDs = append(resp.SkippedContactIDs, id)
				continue
			}
			return nil, fmt.Errorf("failed to load contact %d: %w", id, err)
		}
		if _, ok := c.AssignedTo.Owner(); !ok {
			resp.SkippedContactIDs = append(resp.SkippedContactIDs, id)
			continue
		}
		contacts = append(contacts, c)
	}

	plan := domain.DistributeByOwner(contacts)
	if len(plan) == 0 {
		// 没有可创建的任务
		s.logger.Info("campaign produced empty distribution",
			zap.String("campaign", req.Name),
			zap.Int("requested", len(ids)),
		)
		return resp, nil
	}

	// 固定遍历顺序，任务创建顺序可复现
	owners := make([]domain.StaffID, 0, len(plan))
	for owner := range plan {
		owners = append(owners, owner)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })

	for _, owner := range owners {
		owned := plan[owner]
		contactIDs := make([]int64, len(owned))
		for i, c := range owned {
			contactIDs[i] = c.ContactID
		}
		task := &domain.Task{
			CampaignName: req.Name,
			Description:  req.Description,
			DueDate:      req.DueDate,
			AssigneeID:   owner,
			ContactIDs:   contactIDs,
		}
		taskID, err := s.tasks.CreateTask(ctx, task)
		if err != nil {
			return nil, fmt.Errorf("failed to create task for %s: %w", owner, err)
		}
		task.TaskID = taskID
		resp.Tasks = append(resp.Tasks, task)
	}

	s.logger.Info("campaign created",
		zap.String("campaign", req.Name),
		zap.Int("tasks", len(resp.Tasks)),
		zap.Int("skipped_contacts", len(resp.SkippedContactIDs)),
	)
	return resp, nil
}

// ListTasks 列出任务（assigneeID 非空时按归属员工过滤）
func (s *campaignService) ListTasks(ctx context.Context, assigneeID string) ([]*domain.Task, error) {
	return s.tasks.ListTasks(ctx, assigneeID)
}
