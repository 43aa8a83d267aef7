package domain

// User 员工目录条目（对应 users 表）
// 本服务只读：用于校验员工ID存在、以及员工列表展示
type User struct {
	UserID   StaffID `db:"user_id"`
	UserName string  `db:"user_name"`
	Role     string  `db:"role"`
	Status   string  `db:"status"` // active/inactive
}
