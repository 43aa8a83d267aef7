package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"outreach-data/internal/domain"
)

// PostgresContactsRepository 联系人Repository实现
type PostgresContactsRepository struct {
	db *sql.DB
}

// NewPostgresContactsRepository 创建联系人Repository
func NewPostgresContactsRepository(db *sql.DB) *PostgresContactsRepository {
	return &PostgresContactsRepository{db: db}
}

// 确保实现了接口
var _ ContactsRepository = (*PostgresContactsRepository)(nil)

// contactColumns 查询列（与 scanContact 一一对应）
const contactColumns = `
	contact_id,
	name,
	COALESCE(category, '') as category,
	COALESCE(priority, '') as priority,
	COALESCE(status, '') as status,
	COALESCE(team, '') as team,
	COALESCE(occupation, '') as occupation,
	COALESCE(sex, '') as sex,
	COALESCE(city, '') as city,
	COALESCE(area, '') as area,
	COALESCE(notes, '') as notes,
	COALESCE(phone, '') as phone,
	COALESCE(email, '') as email,
	COALESCE(assigned_to, '') as assigned_to,
	created_at,
	updated_at
`

// bulkFieldColumns 批量更新字段名 -> 列名白名单
// assignedTo 不在此表中（走 UpdateAssignedTo）
var bulkFieldColumns = map[string]string{
	domain.FieldCategory:   "category",
	domain.FieldPriority:   "priority",
	domain.FieldStatus:     "status",
	domain.FieldTeam:       "team",
	domain.FieldOccupation: "occupation",
	domain.FieldSex:        "sex",
	domain.FieldCity:       "city",
}

func scanContact(row interface{ Scan(...any) error }) (*domain.Contact, error) {
	var c domain.Contact
	var assignedTo string
	err := row.Scan(
		&c.ContactID,
		&c.Name,
		&c.Category,
		&c.Priority,
		&c.Status,
		&c.Team,
		&c.Occupation,
		&c.Sex,
		&c.City,
		&c.Area,
		&c.Notes,
		&c.Phone,
		&c.Email,
		&assignedTo,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.AssignedTo = domain.ParseStaffIDList(assignedTo)
	return &c, nil
}

// GetContact 根据contact_id获取联系人
func (r *PostgresContactsRepository) GetContact(ctx context.Context, contactID int64) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE contact_id = $1`
	c, err := scanContact(r.db.QueryRowContext(ctx, query, contactID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return c, nil
}

// GetContactByPhone 按归一化号码精确查询
// LIMIT 2：命中多于一个时视为数据完整性问题，不选择任何一个
func (r *PostgresContactsRepository) GetContactByPhone(ctx context.Context, normalizedPhone string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + `
		FROM contacts
		WHERE regexp_replace(COALESCE(phone, ''), '[^0-9]', '', 'g') = $1
		ORDER BY contact_id
		LIMIT 2`

	rows, err := r.db.QueryContext(ctx, query, normalizedPhone)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact by phone: %w", err)
	}
	defer rows.Close()

	var matches []*domain.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		matches = append(matches, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contacts: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, ErrAmbiguousPhone
	}
}

// ListContacts 过滤 + 分页查询
func (r *PostgresContactsRepository) ListContacts(ctx context.Context, filters ContactFilters, page, size int) ([]*domain.Contact, int, error) {
	var conds []string
	var args []any

	addCond := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filters.Category != "" {
		addCond("category = $%d", filters.Category)
	}
	if filters.Priority != "" {
		addCond("priority = $%d", filters.Priority)
	}
	if filters.Status != "" {
		addCond("status = $%d", filters.Status)
	}
	if filters.Team != "" {
		addCond("team = $%d", filters.Team)
	}
	if filters.City != "" {
		addCond("city = $%d", filters.City)
	}
	if filters.AssignedTo != "" {
		addCond("(',' || COALESCE(assigned_to, '') || ',') LIKE ('%%,' || $%d || ',%%')", filters.AssignedTo)
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR phone ILIKE $%d OR email ILIKE $%d)", n, n, n))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM contacts` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	args = append(args, size, (page-1)*size)
	query := `SELECT ` + contactColumns + ` FROM contacts` + where +
		fmt.Sprintf(` ORDER BY contact_id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*domain.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read contacts: %w", err)
	}
	return contacts, total, nil
}

// CreateContact 创建联系人，返回新主键
func (r *PostgresContactsRepository) CreateContact(ctx context.Context, contact *domain.Contact) (int64, error) {
	if contact == nil {
		return 0, fmt.Errorf("contact is required")
	}
	query := `
		INSERT INTO contacts (
			name, category, priority, status, team, occupation, sex,
			city, area, notes, phone, email, assigned_to
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING contact_id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		contact.Name,
		contact.Category,
		contact.Priority,
		contact.Status,
		contact.Team,
		contact.Occupation,
		contact.Sex,
		contact.City,
		contact.Area,
		contact.Notes,
		contact.Phone,
		contact.Email,
		contact.AssignedTo.String(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create contact: %w", err)
	}
	return id, nil
}

// UpdateContact 整条更新（单联系人编辑表单，记录级 last-write-wins）
func (r *PostgresContactsRepository) UpdateContact(ctx context.Context, contactID int64, contact *domain.Contact) error {
	if contact == nil {
		return fmt.Errorf("contact is required")
	}
	query := `
		UPDATE contacts SET
			name = $1, category = $2, priority = $3, status = $4,
			team = $5, occupation = $6, sex = $7, city = $8, area = $9,
			notes = $10, phone = $11, email = $12, assigned_to = $13,
			updated_at = NOW()
		WHERE contact_id = $14`

	res, err := r.db.ExecContext(ctx, query,
		contact.Name,
		contact.Category,
		contact.Priority,
		contact.Status,
		contact.Team,
		contact.Occupation,
		contact.Sex,
		contact.City,
		contact.Area,
		contact.Notes,
		contact.Phone,
		contact.Email,
		contact.AssignedTo.String(),
		contactID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	return requireRowAffected(res)
}

// UpdateContactField 批量更新路径的单字段写入
func (r *PostgresContactsRepository) UpdateContactField(ctx context.Context, contactID int64, field, value string) error {
	column, ok := bulkFieldColumns[field]
	if !ok {
		return fmt.Errorf("field %q is not bulk-editable", field)
	}
	// column 取自白名单，拼接安全
	query := `UPDATE contacts SET ` + column + ` = $1, updated_at = NOW() WHERE contact_id = $2`
	res, err := r.db.ExecContext(ctx, query, value, contactID)
	if err != nil {
		return fmt.Errorf("failed to update contact %s: %w", field, err)
	}
	return requireRowAffected(res)
}

// UpdateAssignedTo 写入合并后的分配列表
func (r *PostgresContactsRepository) UpdateAssignedTo(ctx context.Context, contactID int64, assignees domain.StaffIDList) error {
	query := `UPDATE contacts SET assigned_to = $1, updated_at = NOW() WHERE contact_id = $2`
	res, err := r.db.ExecContext(ctx, query, assignees.String(), contactID)
	if err != nil {
		return fmt.Errorf("failed to update assigned_to: %w", err)
	}
	return requireRowAffected(res)
}

// DeleteContact 删除联系人（签到记录随外键级联删除）
func (r *PostgresContactsRepository) DeleteContact(ctx context.Context, contactID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE contact_id = $1`, contactID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return requireRowAffected(res)
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
