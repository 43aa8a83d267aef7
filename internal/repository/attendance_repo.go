package repository

import (
	"context"

	"outreach-data/internal/domain"
)

// AttendanceRepository 签到记录Repository接口
type AttendanceRepository interface {
	// CreateIfAbsent 为 (contact, event) 对创建签到记录（不存在时）
	// 已存在时返回 created=false 且不报错（幂等签到）
	// contact/event 不存在（外键失败）返回 ErrNotFound
	CreateIfAbsent(ctx context.Context, contactID, eventID int64) (created bool, err error)

	// Exists 判断 (contact, event) 对是否已有签到记录
	Exists(ctx context.Context, contactID, eventID int64) (bool, error)

	// ListByEvent 按活动列出签到记录（带联系人姓名/电话联查）
	ListByEvent(ctx context.Context, eventID int64) ([]*domain.AttendanceRecord, error)
}
