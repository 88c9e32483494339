package department

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func TestBuildTree(t *testing.T) {
	depts := []Department{
		{ID: 1, Name: "Operations"},
		{ID: 2, Name: "Engineering"},
		{ID: 3, Name: "Platform", ParentID: ptr(2)},
		{ID: 4, Name: "Backend", ParentID: ptr(3)},
		{ID: 5, Name: "Apps", ParentID: ptr(2)},
		{ID: 6, Name: "Orphan", ParentID: ptr(99)},
	}

	tree := BuildTree(depts)

	require.Len(t, tree, 3)
	assert.Equal(t, "Engineering", tree[0].Name)
	assert.Equal(t, "Operations", tree[1].Name)
	assert.Equal(t, "Orphan", tree[2].Name)

	eng := tree[0]
	require.Len(t, eng.Children, 2)
	assert.Equal(t, "Apps", eng.Children[0].Name)
	assert.Equal(t, "Platform", eng.Children[1].Name)
	require.Len(t, eng.Children[1].Children, 1)
	assert.Equal(t, "Backend", eng.Children[1].Children[0].Name)
}

func TestBuildTree_Empty(t *testing.T) {
	assert.Empty(t, BuildTree(nil))
}

func TestIsDescendant(t *testing.T) {
	depts := []Department{
		{ID: 1, Name: "Root"},
		{ID: 2, Name: "Child", ParentID: ptr(1)},
		{ID: 3, Name: "Grandchild", ParentID: ptr(2)},
		{ID: 4, Name: "Other"},
	}

	assert.True(t, IsDescendant(depts, 1, 3))
	assert.True(t, IsDescendant(depts, 2, 2))
	assert.False(t, IsDescendant(depts, 3, 1))
	assert.False(t, IsDescendant(depts, 1, 4))
}

func TestUpdateDepartmentRequest_Validate(t *testing.T) {
	req := UpdateDepartmentRequest{ID: 5, ParentID: ptr(5)}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parentId")
}
