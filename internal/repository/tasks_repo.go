package repository

import (
	"context"

	"outreach-data/internal/domain"
)

// TasksRepository 任务Repository接口
// 活动分发的消费端：分发计划中每位员工写入一条任务
type TasksRepository interface {
	// CreateTask 创建任务；task.TaskID 为空时生成UUID，返回最终ID
	CreateTask(ctx context.Context, task *domain.Task) (string, error)
	// ListTasks 列出任务；assigneeID 非空时按归属员工过滤
	ListTasks(ctx context.Context, assigneeID string) ([]*domain.Task, error)
}
