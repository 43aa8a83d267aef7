package service

import (
	"context"
	"testing"
	"time"

	"outreach-data/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateCampaign_OneTaskPerOwner(t *testing.T) {
	repo := newFakeContactsRepo(
		&domain.Contact{ContactID: 1, AssignedTo: staffList("alice", "bob")},
		&domain.Contact{ContactID: 2, AssignedTo: staffList("bob")},
		&domain.Contact{ContactID: 3}, // 无分配：跳过
		&domain.Contact{ContactID: 4, AssignedTo: staffList("alice")},
	)
	tasks := &fakeTasksRepo{}
	svc := NewCampaignService(repo, tasks, zap.NewNop())

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	resp, err := svc.CreateCampaign(context.Background(), CreateCampaignRequest{
		ContactIDs:  []int64{1, 2, 3, 4},
		Name:        "September outreach",
		Description: "Call before the 15th",
		DueDate:     &due,
	})
	require.NoError(t, err)

	// owner按字典序创建：alice, bob
	require.Len(t, resp.Tasks, 2)
	alice, bob := resp.Tasks[0], resp.Tasks[1]
	assert.Equal(t, domain.StaffID("alice"), alice.AssigneeID)
	assert.Equal(t, []int64{1, 4}, alice.ContactIDs) // 1归alice（首位），bob的任务不含1
	assert.Equal(t, domain.StaffID("bob"), bob.AssigneeID)
	assert.Equal(t, []int64{2}, bob.ContactIDs)

	for _, task := range resp.Tasks {
		assert.NotEmpty(t, task.TaskID)
		assert.Equal(t, "September outreach", task.CampaignName)
		assert.Equal(t, "Call before the 15th", task.Description)
		require.NotNil(t, task.DueDate)
		assert.Equal(t, due, *task.DueDate)
	}

	assert.Equal(t, []int64{3}, resp.SkippedContactIDs)
	assert.Len(t, tasks.created, 2)
}

func TestCreateCampaign_EmptyPlanIsNotAnError(t *testing.T) {
	repo := newFakeContactsRepo(
		&domain.Contact{ContactID: 1},
		&domain.Contact{ContactID: 2},
	)
	tasks := &fakeTasksRepo{}
	svc := NewCampaignService(repo, tasks, zap.NewNop())

	resp, err := svc.CreateCampaign(context.Background(), CreateCampaignRequest{
		ContactIDs: []int64{1, 2},
		Name:       "Empty drive",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Tasks)
	assert.Equal(t, []int64{1, 2}, resp.SkippedContactIDs)
	assert.Empty(t, tasks.created)

	// 空联系人集合同样是"无可创建"
	resp, err = svc.CreateCampaign(context.Background(), CreateCampaignRequest{
		Name: "No contacts",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Tasks)
}

func TestCreateCampaign_MissingContactsSkipped(t *testing.T) {
	repo := newFakeContactsRepo(
		&domain.Contact{ContactID: 1, AssignedTo: staffList("alice")},
	)
	tasks := &fakeTasksRepo{}
	svc := NewCampaignService(repo, tasks, zap.NewNop())

	resp, err := svc.CreateCampaign(context.Background(), CreateCampaignRequest{
		ContactIDs: []int64{1, 99},
		Name:       "Drive",
	})
	require.NoError(t, err)
	require.Len(t, resp.Tasks, 1)
	assert.Equal(t, []int64{1}, resp.Tasks[0].ContactIDs)
	assert.Equal(t, []int64{99}, resp.SkippedContactIDs)
}

func TestCreateCampaign_NameRequired(t *testing.T) {
	svc := NewCampaignService(newFakeContactsRepo(), &fakeTasksRepo{}, zap.NewNop())
	_, err := svc.CreateCampaign(context.Background(), CreateCampaignRequest{
		ContactIDs: []int64{1},
		Name:       "  ",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateCampaign_UsesLiveAssignment(t *testing.T) {
	// 分发用的是存储里的现值，不是调用方快照
	repo := newFakeContactsRepo(
		&domain.Contact{ContactID: 1, AssignedTo: staffList("carol")},
	)
	tasks := &fakeTasksRepo{}
	svc := NewCampaignService(repo, tasks, zap.NewNop())

	resp, err := svc.CreateCampaign(context.Background(), CreateCampaignRequest{
		ContactIDs: []int64{1},
		Name:       "Drive",
	})
	require.NoError(t, err)
	require.Len(t, resp.Tasks, 1)
	assert.Equal(t, domain.StaffID("carol"), resp.Tasks[0].AssigneeID)
}

func TestListTasks_FilterByAssignee(t *testing.T) {
	tasks := &fakeTasksRepo{}
	_, _ = tasks.CreateTask(context.Background(), &domain.Task{AssigneeID: "alice"})
	_, _ = tasks.CreateTask(context.Background(), &domain.Task{AssigneeID: "bob"})
	svc := NewCampaignService(newFakeContactsRepo(), tasks, zap.NewNop())

	got, err := svc.ListTasks(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.StaffID("alice"), got[0].AssigneeID)

	all, err := svc.ListTasks(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
