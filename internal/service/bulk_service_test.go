package service

import (
	"context"
	"errors"
	"testing"

	"outreach-data/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func staffList(ids ...string) domain.StaffIDList {
	out := make(domain.StaffIDList, len(ids))
	for i, id := range ids {
		out[i] = domain.StaffID(id)
	}
	return out
}

func newBulkService(repo *fakeContactsRepo, dir StaffDirectory) BulkUpdateService {
	if dir == nil {
		dir = newFakeDirectory("alice", "bob", "carol")
	}
	return NewBulkUpdateService(repo, dir, zap.NewNop())
}

func TestBulkUpdate_ScalarMissingContact(t *testing.T) {
	repo := newFakeContactsRepo(
		&domain.Contact{ContactID: 1, Name: "A"},
		&domain.Contact{ContactID: 3, Name: "C"},
	)
	svc := newBulkService(repo, nil)

	result, err := svc.BulkUpdate(context.Background(), BulkUpdateRequest{
		ContactIDs: []int64{1, 2, 3},
		Field:      domain.FieldPriority,
		Value:      "high",
	})
	require.NoError(t, err)

	// id 2 不存在：只记失败，不中断整批
	assert.Equal(t, []int64{1, 3}, result.Succeeded)
	assert.Equal(t, map[int64]ErrorKind{2: ErrorKindNotFound}, result.Failed)
	assert.Equal(t, "high", repo.contacts[1].Priority)
	assert.Equal(t, "high", repo.contacts[3].Priority)
}

func TestBulkUpdate_InvalidEnumValue(t *testing.T) {
	repo := newFakeContactsRepo(
		&domain.Contact{ContactID: 1, Priority: "low"},
		&domain.Contact{ContactID: 2, Priority: "low"},
	)
	svc := newBulkService(repo, nil)

	result, err := svc.BulkUpdate(context.Background(), BulkUpdateRequest{
		ContactIDs: []int64{1, 2},
		Field:      domain.FieldPriority,
		Value:      "urgent",
	})
	require.NoError(t, err)

	// 每个目标联系人都按 InvalidValue 失败，且没有任何写入
	assert.Empty(t, result.Succeeded)
	assert.Equal(t, map[int64]ErrorKind{1: ErrorKindInvalidValue, 2: ErrorKindInvalidValue}, result.Failed)
	assert.Equal(t, "low", repo.contacts[1].Priority)
}

func TestBulkUpdate_EmptyValueRejected(t *testing.T) {
	repo := newFakeContactsRepo(&domain.Contact{ContactID: 1})
	svc := newBulkService(repo, nil)

	_, err := svc.BulkUpdate(context.Background(), BulkUpdateRequest{
		ContactIDs: []int64{1},
		Field:      domain.FieldStatus,
		Value:      "",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.BulkUpdate(context.Background(), BulkUpdateRequest{
		ContactIDs: []int64{1},
		Field:      domain.FieldCity,
		Value:      "   ",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBulkUpdate_UnknownFieldRejected(t *testing.T) {
	repo := newFakeContactsRepo(&domain.Contact{ContactID: 1})
	svc := newBulkService(repo, nil)

	_, err := svc.BulkUpdate(context.Background(), BulkUpdateRequest{
		ContactIDs: []int64{1},
		Field:      "phone",
		Value:      "123",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBulkUpdate_EmptyIDSetRejected(t *testing.T) {
	svc := newBulkService(newFakeContactsRepo(), nil)
	_, err := svc.BulkUpdate(context.Background(), BulkUpdateRequest{
		Field: domain.FieldStatus,
		Value: "active",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBulkUpdate_City(t *testing.T) {
	repo := newFakeContactsRepo(&domain.Contact{ContactID: 1, City: "Pune"})
	svc := newBulkService(repo, nil)

	result, err := svc.BulkUpdate(context.Background(), BulkUpdateRequest{
		ContactIDs: []int64{1},
		Field:      domain.FieldCity,
		Value:      "  Mumbai ",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, result.Succeeded)
	assert.Equal(t, "Mumbai", repo.contacts[1].City)
}

func TestBulkUpdate_AssignReplaceIsDefault(t *testing.T) {
	repo := newFakeContactsRepo(
		&domain.Contact{ContactID: 1, AssignedTo: staffList("alice")},
	)
	svc := newBulkService(repo, nil)

	result, err := svc.BulkUpdate(context.Background(), BulkUpdateRequest{
		ContactIDs: []int64{1},
		Field:      domain.FieldAssignedTo,
		Assignees:  staffList("bob", "carol"),
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, result.Succeeded)
	assert.Equal(t, staffList("bob", "carol"), repo.contacts[1].AssignedTo)
}

func TestBulkUpdate_AssignAddUsesLiveCurrentValue(t *testing.T) {
	// 每条用写入时刻自己的现值合并
	repo := newFakeContactsRepo(
		&domain.Contact{ContactID: 1, AssignedTo: staffList("alice")},
		&domain.Contact{ContactID: 2, AssignedTo: staffList("bob")},
		&domain.Contact{ContactID: 3},
	)
	svc := newBulkService(repo, nil)

	result, err := svc.BulkUpdate(context.Background(), BulkUpdateRequest{
		ContactIDs: []int64{1, 2, 3},
		Field:      domain.FieldAssignedTo,
		Assignees:  staffList("carol", "alice"),
		Mode:       domain.MergeAdd,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, result.Succeeded)
	assert.Equal(t, staffList("alice", "carol"), repo.contacts[1].AssignedTo)
	assert.Equal(t, staffList("bob", "carol", "alice"), repo.contacts[2].AssignedTo)
	assert.Equal(t, staffList("carol", "alice"), repo.contacts[3].AssignedTo)
}

func TestBulkUpdate_AssignEmptySetRejected(t *testing.T) {
	svc := newBulkService(newFakeContactsRepo(&domain.Contact{ContactID: 1}), nil)
	_, err := svc.BulkUpdate(context.Background(), BulkUpdateRequest{
		ContactIDs: []int64{1},
		Field:      domain.FieldAssignedTo,
		Mode:       domain.MergeAdd,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBulkUpdate_AssignUnknownStaffRejected(t *testing.T) {
	repo := newFakeContactsRepo(&domain.Contact{ContactID: 1})
	svc := newBulkService(repo, newFakeDirectory("alice"))

	_, err := svc.BulkUpdate(context.Background(), BulkUpdateRequest{
		ContactIDs: []int64{1},
		Field:      domain.FieldAssignedTo,
		Assignees:  staffList("alice", "mallory"),
	})
	assert.ErrorIs(t, err, ErrValidation)
	// 请求被整体拒绝：没有写入
	assert.Empty(t, repo.contacts[1].AssignedTo)
}

func TestBulkUpdate_PersistenceFailureIsolated(t *testing.T) {
	repo := newFakeContactsRepo(
		&domain.Contact{ContactID: 1},
		&domain.Contact{ContactID: 2},
	)
	repo.failUpdate[1] = errors.New("connection reset")
	svc := newBulkService(repo, nil)

	result, err := svc.BulkUpdate(context.Background(), BulkUpdateRequest{
		ContactIDs: []int64{1, 2},
		Field:      domain.FieldStatus,
		Value:      "active",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, result.Succeeded)
	assert.Equal(t, map[int64]ErrorKind{1: ErrorKindPersistence}, result.Failed)
}

func TestBulkUpdate_DuplicateIDsCountedOnce(t *testing.T) {
	repo := newFakeContactsRepo(&domain.Contact{ContactID: 1})
	svc := newBulkService(repo, nil)

	result, err := svc.BulkUpdate(context.Background(), BulkUpdateRequest{
		ContactIDs: []int64{1, 1, 1},
		Field:      domain.FieldStatus,
		Value:      "active",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, result.Succeeded)
	assert.Empty(t, result.Failed)
}
