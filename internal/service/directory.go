package service

import (
	"context"
	"encoding/json"
	"time"

	"outreach-data/internal/domain"
	"outreach-data/internal/repository"
	"outreach-data/internal/store"

	"go.uber.org/zap"
)

// StaffDirectory 员工目录协作方（只读）
// 用于批量分配前校验员工ID存在；可由本库 users 表或远端目录服务提供
type StaffDirectory interface {
	ListStaff(ctx context.Context) ([]*domain.User, error)
	// MissingStaff 返回给定ID中目录里不存在的那部分
	MissingStaff(ctx context.Context, ids domain.StaffIDList) (domain.StaffIDList, error)
}

// ---- DB 实现 ----

type repoStaffDirectory struct {
	users repository.UsersRepository
}

// NewRepoStaffDirectory 基于本库 users 表的员工目录
func NewRepoStaffDirectory(users repository.UsersRepository) StaffDirectory {
	return &repoStaffDirectory{users: users}
}

func (d *repoStaffDirectory) ListStaff(ctx context.Context) ([]*domain.User, error) {
	return d.users.ListUsers(ctx)
}

func (d *repoStaffDirectory) MissingStaff(ctx context.Context, ids domain.StaffIDList) (domain.StaffIDList, error) {
	existing, err := d.users.FilterExisting(ctx, ids)
	if err != nil {
		return nil, err
	}
	var missing domain.StaffIDList
	for _, id := range ids {
		if !existing[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// ---- 缓存包装 ----

const (
	staffDirectoryCacheKey = "outreach:staff-directory"
	staffDirectoryCacheTTL = 60 * time.Second
)

type cachedStaffDirectory struct {
	inner  StaffDirectory
	kv     store.KV
	logger *zap.Logger
}

// NewCachedStaffDirectory 给目录加一层短TTL缓存
// 员工目录读多写少；缓存或redis故障时静默回源
func NewCachedStaffDirectory(inner StaffDirectory, kv store.KV, logger *zap.Logger) StaffDirectory {
	return &cachedStaffDirectory{inner: inner, kv: kv, logger: logger}
}

func (d *cachedStaffDirectory) ListStaff(ctx context.Context) ([]*domain.User, error) {
	if raw, err := d.kv.Get(ctx, staffDirectoryCacheKey); err == nil {
		var users []*domain.User
		if jsonErr := json.Unmarshal([]byte(raw), &users); jsonErr == nil {
			return users, nil
		}
		// 缓存内容损坏：删掉后回源
		_ = d.kv.Delete(ctx, staffDirectoryCacheKey)
	} else if err != store.ErrMiss {
		d.logger.Warn("staff directory cache read failed", zap.Error(err))
	}

	users, err := d.inner.ListStaff(ctx)
	if err != nil {
		return nil, err
	}
	if raw, jsonErr := json.Marshal(users); jsonErr == nil {
		if setErr := d.kv.Set(ctx, staffDirectoryCacheKey, string(raw), staffDirectoryCacheTTL); setErr != nil {
			d.logger.Warn("staff directory cache write failed", zap.Error(setErr))
		}
	}
	return users, nil
}

func (d *cachedStaffDirectory) MissingStaff(ctx context.Context, ids domain.StaffIDList) (domain.StaffIDList, error) {
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
