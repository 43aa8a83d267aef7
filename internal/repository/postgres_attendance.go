package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"outreach-data/internal/domain"

	"github.com/lib/pq"
)

// PostgresAttendanceRepository 签到记录Repository实现
type PostgresAttendanceRepository struct {
	db *sql.DB
}

// NewPostgresAttendanceRepository 创建签到记录Repository
func NewPostgresAttendanceRepository(db *sql.DB) *PostgresAttendanceRepository {
	return &PostgresAttendanceRepository{db: db}
}

var _ AttendanceRepository = (*PostgresAttendanceRepository)(nil)

// pq 错误码
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// CreateIfAbsent 幂等创建：依赖 UNIQUE(contact_id, event_id) 约束
// ON CONFLICT DO NOTHING 吸收并发下的重复签到，约束冲突按成功处理
func (r *PostgresAttendanceRepository) CreateIfAbsent(ctx context.Context, contactID, eventID int64) (bool, error) {
	query := `
		INSERT INTO attendance (contact_id, event_id)
		VALUES ($1, $2)
		ON CONFLICT (contact_id, event_id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, contactID, eventID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch string(pqErr.Code) {
			case pqUniqueViolation:
				// 并发重复签到：与已存在同样对待
				return false, nil
			case pqForeignKeyViolation:
				return false, ErrNotFound
			}
		}
		return false, fmt.Errorf("failed to create attendance record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// Exists 判断 (contact, event) 对是否已有签到记录
func (r *PostgresAttendanceRepository) Exists(ctx context.Context, contactID, eventID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM attendance WHERE contact_id = $1 AND event_id = $2)`,
		contactID, eventID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check attendance: %w", err)
	}
	return exists, nil
}

// ListByEvent 按活动列出签到记录，联查联系人姓名/电话
func (r *PostgresAttendanceRepository) ListByEvent(ctx context.Context, eventID int64) ([]*domain.AttendanceRecord, error) {
	query := `
		SELECT
			a.attendance_id,
			a.contact_id,
			a.event_id,
			a.created_at,
			c.name as contact_name,
			COALESCE(c.phone, '') as contact_phone
		FROM attendance a
		JOIN contacts c ON c.contact_id = a.contact_id
		WHERE a.event_id = $1
		ORDER BY a.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []*domain.AttendanceRecord
	for rows.Next() {
		var rec domain.AttendanceRecord
		if err := rows.Scan(
			&rec.AttendanceID,
			&rec.ContactID,
			&rec.EventID,
			&rec.CreatedAt,
			&rec.ContactName,
			&rec.ContactPhone,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance records: %w", err)
	}
	return records, nil
}
