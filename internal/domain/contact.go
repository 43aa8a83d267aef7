package domain

import (
	"time"
)

// Contact 联系人领域模型（对应 contacts 表）
type Contact struct {
	// 主键（自增，创建后不可变）
	ContactID int64 `db:"contact_id"`

	// 基本信息
	Name string `db:"name"` // VARCHAR(200), NOT NULL

	// 分类字段（封闭枚举，见 FieldValues）
	Category   string `db:"category"`   // VARCHAR(50)
	Priority   string `db:"priority"`   // VARCHAR(20) (high/medium/low)
	Status     string `db:"status"`     // VARCHAR(20) (active/inactive/prospect)
	Team       string `db:"team"`       // VARCHAR(50)
	Occupation string `db:"occupation"` // VARCHAR(50)
	Sex        string `db:"sex"`        // VARCHAR(20)

	// 自由文本
	City  string `db:"city"`  // VARCHAR(100)
	Area  string `db:"area"`  // VARCHAR(100)
	Notes string `db:"notes"` // TEXT

	// 联系方式
	// phone 原样存储（可带格式字符），按归一化后的10位数字查询
	Phone string `db:"phone"` // VARCHAR(50)
	Email string `db:"email"` // VARCHAR(200)

	// 多值分配字段（有序员工ID列表，库内以逗号分隔存储）
	AssignedTo StaffIDList `db:"assigned_to"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// 批量编辑字段名（与 API 层字段名一致）
const (
	FieldCategory   = "category"
	FieldPriority   = "priority"
	FieldStatus     = "status"
	FieldTeam       = "team"
	FieldOccupation = "occupation"
	FieldSex        = "sex"
	FieldCity       = "city"
	FieldAssignedTo = "assignedTo"
)

// FieldValues 各枚举字段的合法取值
// city 为自由文本、assignedTo 为多值字段，均不在此表中
var FieldValues = map[string][]string{
	FieldCategory:   {"member", "volunteer", "donor", "partner"},
	FieldPriority:   {"high", "medium", "low"},
	FieldStatus:     {"active", "inactive", "prospect"},
	FieldTeam:       {"outreach", "events", "fundraising", "admin"},
	FieldOccupation: {"student", "employed", "self_employed", "retired", "other"},
	FieldSex:        {"male", "female", "other"},
}

// IsBulkEditableField 判断字段是否允许批量编辑
func IsBulkEditableField(field string) bool {
	if field == FieldCity || field == FieldAssignedTo {
		return true
	}
	_, ok := FieldValues[field]
	return ok
}

// IsValidFieldValue 判断枚举字段取值是否合法
func IsValidFieldValue(field, value string) bool {
	values, ok := FieldValues[field]
	if !ok {
		return false
	}
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
