package service

import (
	"context"
	"fmt"
	"time"

	"outreach-data/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// directoryUser 远端目录服务的用户条目
type directoryUser struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// directoryResponse 远端目录服务 GET /users 响应
type directoryResponse struct {
	Users []directoryUser `json:"users"`
}

// HTTPStaffDirectory 远端员工目录客户端
// 部署上员工目录由统一账号服务提供时使用（DIRECTORY_URL 配置）
type HTTPStaffDirectory struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewHTTPStaffDirectory 创建远端目录客户端
func NewHTTPStaffDirectory(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPStaffDirectory {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Accept", "application/json")

	return &HTTPStaffDirectory{
		httpClient: client,
		logger:     logger,
	}
}

var _ StaffDirectory = (*HTTPStaffDirectory)(nil)

func (d *HTTPStaffDirectory) ListStaff(ctx context.Context) ([]*domain.User, error) {
	var out directoryResponse
	resp, err := d.httpClient.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/users")
	if err != nil {
		return nil, fmt.Errorf("staff directory request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("staff directory returned status %d", resp.StatusCode())
	}

	users := make([]*domain.User, 0, len(out.Users))
	for _, u := range out.Users {
		if u.Status != "" && u.Status != "active" {
			continue
		}
		users = append(users, &domain.User{
			UserID:   domain.StaffID(u.UserID),
			UserName: u.UserName,
			Role:     u.Role,
			Status:   u.Status,
		})
	}
	return users, nil
}

func (d *HTTPStaffDirectory) MissingStaff(ctx context.Context, ids domain.StaffIDList) (domain.StaffIDList, error) {
	users, err := d.ListStaff(ctx)
	if err != nil {
		return nil, err
	}
	existing := make(map[domain.StaffID]bool, len(users))
	for _, u := range users {
		existing[u.UserID] = true
	}
	var missing domain.StaffIDList
	for _, id := range ids {
		if !existing[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
