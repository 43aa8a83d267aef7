package repository

import (
	"database/sql"
	"errors"
	"time"
)

// 仓储层错误：上层据此做按记录的结果分类
var (
	// ErrNotFound 目标记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrAmbiguousPhone 同一归一化号码命中多个联系人（数据完整性问题，查询不返回任何一个）
	ErrAmbiguousPhone = errors.New("multiple contacts match the normalized phone number")
)

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
