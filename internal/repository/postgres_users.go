package repository

import (
	"context"
	"database/sql"
	"fmt"

	"outreach-data/internal/domain"

	"github.com/lib/pq"
)

// PostgresUsersRepository 员工目录Repository实现
type PostgresUsersRepository struct {
	db *sql.DB
}

// NewPostgresUsersRepository 创建员工目录Repository
func NewPostgresUsersRepository(db *sql.DB) *PostgresUsersRepository {
	return &PostgresUsersRepository{db: db}
}

var _ UsersRepository = (*PostgresUsersRepository)(nil)

// ListUsers 列出active员工
func (r *PostgresUsersRepository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT user_id, user_name, COALESCE(role, '') as role, status
		FROM users
		WHERE status = 'active'
		ORDER BY user_name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u domain.User
		var userID string
		if err := rows.Scan(&userID, &u.UserName, &u.Role, &u.Status); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.UserID = domain.StaffID(userID)
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return users, nil
}

// FilterExisting 返回给定ID中实际存在（且active）的集合
func (r *PostgresUsersRepository) FilterExisting(ctx context.Context, ids domain.StaffIDList) (map[domain.StaffID]bool, error) {
	existing := make(map[domain.StaffID]bool, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = string(id)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM users WHERE status = 'active' AND user_id = ANY($1)`,
		pq.Array(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to filter users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		existing[domain.StaffID(id)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user ids: %w", err)
	}
	return existing, nil
}
