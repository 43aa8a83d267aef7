package domain

import (
	"errors"
	"strings"
)

// StaffID 员工标识
type StaffID string

// StaffIDList 有序员工ID列表（重复ID无意义，合并时去重）
type StaffIDList []StaffID

// MergeMode 批量分配的合并策略
type MergeMode string

const (
	// MergeReplace 结果完全等于请求集合
	MergeReplace MergeMode = "replace"
	// MergeAdd 结果为现值与请求集合的并集（保持现有顺序）
	MergeAdd MergeMode = "add"
)

// ErrNoAssignees 请求的员工集合为空（批量路径下视为错误，不静默跳过）
var ErrNoAssignees = errors.New("requested assignee set is empty")

// IsValidMergeMode 判断合并策略取值是否合法
func IsValidMergeMode(mode MergeMode) bool {
	return mode == MergeReplace || mode == MergeAdd
}

// Contains 判断列表中是否已包含某员工ID
func (l StaffIDList) Contains(id StaffID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Dedup 去重，保持首次出现的顺序
func (l StaffIDList) Dedup() StaffIDList {
	out := make(StaffIDList, 0, len(l))
	for _, id := range l {
		if id == "" || out.Contains(id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// Owner 联系人在一次活动分发中的归属人：列表首位员工
// 空列表没有归属人（该联系人不参与分发）
func (l StaffIDList) Owner() (StaffID, bool) {
	if len(l) == 0 {
		return "", false
	}
	return l[0], true
}

// MergeAssignees 计算多值分配字段的新值
// - replace: 结果为 requested（保持调用方给定的顺序，顺序在下游无语义）
// - add: 结果为 current ∪ requested，current 中已有的ID保持原位不动
// requested 为空时返回 ErrNoAssignees
func MergeAssignees(current, requested StaffIDList, mode MergeMode) (StaffIDList, error) {
	requested = requested.Dedup()
	if len(requested) == 0 {
		return nil, ErrNoAssignees
	}

	switch mode {
	case MergeReplace:
		return requested, nil
	case MergeAdd:
		out := current.Dedup()
		for _, id := range requested {
			if !out.Contains(id) {
				out = append(out, id)
			}
		}
		return out, nil
	default:
		return nil, errors.New("unknown merge mode: " + string(mode))
	}
}

// ParseStaffIDList 解析库内逗号分隔的存储形式
func ParseStaffIDList(s string) StaffIDList {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make(StaffIDList, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, StaffID(p))
	}
	return out.Dedup()
}

// String 序列化为库内逗号分隔的存储形式
func (l StaffIDList) String() string {
	parts := make([]string, len(l))
	for i, id := range l {
		parts[i] = string(id)
	}
	return strings.Join(parts, ",")
}

// DistributeByOwner 活动分发计划：员工ID -> 其归属的联系人（保持输入顺序）
// 归属规则：assignedTo 首位员工；assignedTo 为空的联系人不参与分发。
// 结果中不含空分组：key 集合即"本批次归属联系人数 ≥1 的员工"。
// 只读纯函数，不产生任何副作用。
func DistributeByOwner(contacts []*Contact) map[StaffID][]*Contact {
	plan := make(map[StaffID][]*Contact)
	for _, c := range contacts {
		if c == nil {
			continue
		}
		owner, ok := c.AssignedTo.Owner()
		if !ok {
			continue
		}
		plan[owner] = append(plan[owner], c)
	}
	return plan
}
