package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staffList(ids ...string) StaffIDList {
	out := make(StaffIDList, len(ids))
	for i, id := range ids {
		out[i] = StaffID(id)
	}
	return out
}

func TestMergeAssignees_Replace(t *testing.T) {
	// replace 无视现值
	got, err := MergeAssignees(staffList("alice", "bob"), staffList("carol"), MergeReplace)
	require.NoError(t, err)
	assert.Equal(t, staffList("carol"), got)

	// 现值为空也一样
	got, err = MergeAssignees(nil, staffList("carol", "dave"), MergeReplace)
	require.NoError(t, err)
	assert.Equal(t, staffList("carol", "dave"), got)
}

func TestMergeAssignees_Add(t *testing.T) {
	got, err := MergeAssignees(staffList("alice", "bob"), staffList("bob", "carol"), MergeAdd)
	require.NoError(t, err)
	// 已有ID保持原位，新ID追加在后
	assert.Equal(t, staffList("alice", "bob", "carol"), got)
}

func TestMergeAssignees_AddIsSupersetAndDedup(t *testing.T) {
	current := staffList("alice", "bob")
	requested := staffList("carol", "alice")

	got, err := MergeAssignees(current, requested, MergeAdd)
	require.NoError(t, err)

	// 结果是 current 和 requested 的超集
	for _, id := range current {
		assert.True(t, got.Contains(id), "missing current id %s", id)
	}
	for _, id := range requested {
		assert.True(t, got.Contains(id), "missing requested id %s", id)
	}

	// 无重复
	seen := map[StaffID]bool{}
	for _, id := range got {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestMergeAssignees_AddIsIdempotent(t *testing.T) {
	requested := staffList("carol", "alice")

	once, err := MergeAssignees(staffList("alice", "bob"), requested, MergeAdd)
	require.NoError(t, err)
	twice, err := MergeAssignees(once, requested, MergeAdd)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestMergeAssignees_EmptyRequestedRejected(t *testing.T) {
	_, err := MergeAssignees(staffList("alice"), nil, MergeAdd)
	assert.ErrorIs(t, err, ErrNoAssignees)

	_, err = MergeAssignees(staffList("alice"), StaffIDList{}, MergeReplace)
	assert.ErrorIs(t, err, ErrNoAssignees)

	// 全空白等价于空
	_, err = MergeAssignees(nil, staffList(""), MergeReplace)
	assert.ErrorIs(t, err, ErrNoAssignees)
}

func TestMergeAssignees_UnknownMode(t *testing.T) {
	_, err := MergeAssignees(nil, staffList("alice"), MergeMode("append"))
	assert.Error(t, err)
}

func TestDistributeByOwner_Empty(t *testing.T) {
	assert.Empty(t, DistributeByOwner(nil))
	assert.Empty(t, DistributeByOwner([]*Contact{}))

	// 全部无分配：同样是空计划
	contacts := []*Contact{
		{ContactID: 1},
		{ContactID: 2},
	}
	assert.Empty(t, DistributeByOwner(contacts))
}

func TestDistributeByOwner_FirstAssigneeOwns(t *testing.T) {
	a := &Contact{ContactID: 1, AssignedTo: staffList("alice", "bob")}
	b := &Contact{ContactID: 2, AssignedTo: staffList("bob")}
	c := &Contact{ContactID: 3} // 无分配，不参与

	plan := DistributeByOwner([]*Contact{a, b, c})

	require.Len(t, plan, 2)
	assert.Equal(t, []*Contact{a}, plan["alice"])
	assert.Equal(t, []*Contact{b}, plan["bob"]) // bob 的分组不含 A
}

func TestDistributeByOwner_PreservesInputOrder(t *testing.T) {
	c1 := &Contact{ContactID: 1, AssignedTo: staffList("alice")}
	c2 := &Contact{ContactID: 2, AssignedTo: staffList("alice")}
	c3 := &Contact{ContactID: 3, AssignedTo: staffList("alice", "bob")}

	plan := DistributeByOwner([]*Contact{c1, c2, c3})
	require.Len(t, plan, 1)
	assert.Equal(t, []*Contact{c1, c2, c3}, plan["alice"])
}

func TestStaffIDList_ParseAndString(t *testing.T) {
	assert.Nil(t, ParseStaffIDList(""))
	assert.Nil(t, ParseStaffIDList("  "))
	assert.Equal(t, staffList("alice", "bob"), ParseStaffIDList("alice, bob"))
	// 存储值里的重复在解析时去掉
	assert.Equal(t, staffList("alice", "bob"), ParseStaffIDList("alice,bob,alice"))
	assert.Equal(t, "alice,bob", staffList("alice", "bob").String())
}

func TestStaffIDList_Owner(t *testing.T) {
	owner, ok := staffList("alice", "bob").Owner()
	require.True(t, ok)
	assert.Equal(t, StaffID("alice"), owner)

	_, ok = StaffIDList{}.Owner()
	assert.False(t, ok)
}
