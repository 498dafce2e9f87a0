package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDListValue(t *testing.T) {
	v, err := IDList{"a", "b"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, v)

	// nil 목록도 유효한 JSON 배열로 저장
	v, err = IDList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestIDListScan(t *testing.T) {
	var l IDList
	require.NoError(t, l.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, IDList{"a", "b"}, l)

	require.NoError(t, l.Scan(`["c"]`))
	assert.Equal(t, IDList{"c"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Empty(t, l)

	assert.Error(t, l.Scan(42))
}

func TestIDListContains(t *testing.T) {
	l := IDList{"a", "b"}
	assert.True(t, l.Contains("a"))
	assert.False(t, l.Contains("c"))
	assert.False(t, IDList{}.Contains("a"))
}

func TestIDListWithout(t *testing.T) {
	l := IDList{"a", "b", "c"}
	assert.Equal(t, IDList{"a", "c"}, l.Without("b"))
	// 원본은 그대로
	assert.Equal(t, IDList{"a", "b", "c"}, l)
	assert.Equal(t, IDList{"a", "b", "c"}, l.Without("missing"))
}

func TestRoleIsMember(t *testing.T) {
	assert.True(t, RoleEditor.IsMember())
	assert.True(t, RoleViewer.IsMember())
	assert.False(t, RoleNone.IsMember())
}
