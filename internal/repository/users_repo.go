package repository

import (
	"context"

	"outreach-data/internal/domain"
)

// UsersRepository 员工目录Repository接口（本服务只读）
type UsersRepository interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// FilterExisting 返回给定ID中实际存在（且active）的集合
	FilterExisting(ctx context.Context, ids domain.StaffIDList) (map[domain.StaffID]bool, error)
}
