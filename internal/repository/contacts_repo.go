package repository

import (
	"context"

	"outreach-data/internal/domain"
)

// ContactsRepository 联系人Repository接口
// 使用强类型领域模型，不使用map[string]any
// 设计原则：Repository层只负责数据访问，合并/分发等决策逻辑在上层
type ContactsRepository interface {
	// 查询接口
	GetContact(ctx context.Context, contactID int64) (*domain.Contact, error)
	// GetContactByPhone 按归一化号码（10位数字）精确查询
	// 无命中返回 ErrNotFound；多于一个命中返回 ErrAmbiguousPhone
	GetContactByPhone(ctx context.Context, normalizedPhone string) (*domain.Contact, error)
	ListContacts(ctx context.Context, filters ContactFilters, page, size int) ([]*domain.Contact, int, error)

	// 创建/更新接口
	CreateContact(ctx context.Context, contact *domain.Contact) (int64, error)
	UpdateContact(ctx context.Context, contactID int64, contact *domain.Contact) error

	// 批量更新使用的单字段写入
	// field 为 API 层字段名（category/priority/.../city），内部映射到列名
	UpdateContactField(ctx context.Context, contactID int64, field, value string) error
	UpdateAssignedTo(ctx context.Context, contactID int64, assignees domain.StaffIDList) error

	// 删除接口（薄外部操作）
	DeleteContact(ctx context.Context, contactID int64) error
}

// ContactFilters 联系人查询过滤器
type ContactFilters struct {
	Category string
	Priority string
	Status   string
	Team     string
	City     string
	// AssignedTo 过滤出分配列表中包含该员工的联系人
	AssignedTo string
	// Search 模糊搜索：name / phone / email
	Search string
}
