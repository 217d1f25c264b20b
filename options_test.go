package aclhelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawScope(t *testing.T, name, raw string) *OptionScope {
	t.Helper()
	src, err := NewSource("raw", []string{raw})
	require.NoError(t, err)
	scope, err := NewOptionScope(name, src)
	require.NoError(t, err)
	return scope
}

func TestSubstScopedLookup(t *testing.T) {
	table := NewOptionTable()
	table.Add(rawScope(t, "net", "gw=10.0.0.1"))

	assert.Equal(t, "route via 10.0.0.1", Subst("route via %{net&gw}", table))
}

func TestSubstCrossScopeFallback(t *testing.T) {
	table := NewOptionTable()
	table.Add(rawScope(t, "a", "x=1"))
	table.Add(rawScope(t, "b", "y=2"))

	assert.Equal(t, "1 2", Subst("%{x} %{y}", table))
}

func TestSubstDefaultValue(t *testing.T) {
	table := NewOptionTable()
	assert.Equal(t, "fallback", Subst("%{net&gw|fallback}", table))
}

func TestSubstNoMatchNoDefaultIsEmpty(t *testing.T) {
	table := NewOptionTable()
	assert.Equal(t, "[]", Subst("[%{missing}]", table))
}

func TestSubstUnmatchedBraceLeavesInputUnchanged(t *testing.T) {
	table := NewOptionTable()
	in := "broken %{net&gw"
	assert.Equal(t, in, Subst(in, table))
}
