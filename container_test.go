package aclhelper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainerExactLookup(t *testing.T) {
	c := NewContainer[string, int]()
	c.Insert("example.com", 1)
	c.Insert("other.com", 2)

	v, ok := c.Find("example.com")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Find("missing.com")
	assert.False(t, ok)
}

func TestContainerFindOrInsert(t *testing.T) {
	c := NewContainer[string, *int]()
	calls := 0
	mk := func() *int {
		calls++
		n := 42
		return &n
	}

	v1, inserted := c.FindOrInsert("host", mk)
	require.True(t, inserted)
	require.Equal(t, 42, *v1)

	v2, inserted := c.FindOrInsert("host", mk)
	assert.False(t, inserted)
	assert.Same(t, v1, v2)
	assert.Equal(t, 1, calls)
}

func TestContainerLinearScan(t *testing.T) {
	c := NewContainer[string, string]()
	c.AppendLinear("*.example.com", "suffix-match")
	c.AppendLinear("*.other.com", "other")

	v, ok := c.ScanLinear(func(pattern, _ string) bool {
		return strings.HasSuffix(pattern, ".example.com")
	})
	require.True(t, ok)
	assert.Equal(t, "suffix-match", v)

	_, ok = c.ScanLinear(func(pattern, _ string) bool { return pattern == "nope" })
	assert.False(t, ok)
}

func TestContainerLen(t *testing.T) {
	c := NewContainer[string, int]()
	c.Insert("a", 1)
	c.AppendLinear("b", 2)
	assert.Equal(t, 2, c.Len())
}
