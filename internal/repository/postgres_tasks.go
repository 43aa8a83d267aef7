package repository

import (
	"context"
	"database/sql"
	"fmt"

	"outreach-data/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresTasksRepository 任务Repository实现
type PostgresTasksRepository struct {
	db *sql.DB
}

// NewPostgresTasksRepository 创建任务Repository
func NewPostgresTasksRepository(db *sql.DB) *PostgresTasksRepository {
	return &PostgresTasksRepository{db: db}
}

var _ TasksRepository = (*PostgresTasksRepository)(nil)

// CreateTask 创建任务
func (r *PostgresTasksRepository) CreateTask(ctx context.Context, task *domain.Task) (string, error) {
	if task == nil {
		return "", fmt.Errorf("task is required")
	}
	taskID := task.TaskID
	if taskID == "" {
		taskID = uuid.New().String()
	}

	query := `
		INSERT INTO tasks (task_id, campaign_name, description, due_date, assignee_id, contact_ids)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		taskID,
		task.CampaignName,
		task.Description,
		nullTime(task.DueDate),
		string(task.AssigneeID),
		pq.Array(task.ContactIDs),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create task: %w", err)
	}
	return taskID, nil
}

// ListTasks 列出任务（最近的在前）
func (r *PostgresTasksRepository) ListTasks(ctx context.Context, assigneeID string) ([]*domain.Task, error) {
	query := `
		SELECT
			task_id,
			campaign_name,
			COALESCE(description, '') as description,
			due_date,
			assignee_id,
			contact_ids,
			created_at
		FROM tasks`
	var args []any
	if assigneeID != "" {
		query += ` WHERE assignee_id = $1`
		args = append(args, assigneeID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		var dueDate sql.NullTime
		var assignee string
		var contactIDs pq.Int64Array
		if err := rows.Scan(
			&t.TaskID,
			&t.CampaignName,
			&t.Description,
			&dueDate,
			&assignee,
			&contactIDs,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		if dueDate.Valid {
			t.DueDate = &dueDate.Time
		}
		t.AssigneeID = domain.StaffID(assignee)
		t.ContactIDs = []int64(contactIDs)
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	return tasks, nil
}
