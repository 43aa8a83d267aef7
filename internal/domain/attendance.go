package domain

import "time"

// AttendanceRecord 签到记录（对应 attendance 表）
// 每个 (contact, event) 对至多一条，重复签到幂等
type AttendanceRecord struct {
	AttendanceID int64     `db:"attendance_id"`
	ContactID    int64     `db:"contact_id"`
	EventID      int64     `db:"event_id"`
	CreatedAt    time.Time `db:"created_at"`

	// 联查字段（列表展示用，非表内列）
	ContactName  string `db:"contact_name"`
	ContactPhone string `db:"contact_phone"`
}
