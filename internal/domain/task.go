package domain

import "time"

// Task 活动分发产生的任务（对应 tasks 表）
// 每个活动为每位归属员工生成一条，携带其名下的联系人列表
type Task struct {
	TaskID       string     `db:"task_id"` // UUID, PRIMARY KEY
	CampaignName string     `db:"campaign_name"`
	Description  string     `db:"description"`
	DueDate      *time.Time `db:"due_date"` // DATE, nullable
	AssigneeID   StaffID    `db:"assignee_id"`
	ContactIDs   []int64    `db:"contact_ids"` // BIGINT[]，保持分发时的顺序
	CreatedAt    time.Time  `db:"created_at"`
}
