package aclhelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringDriver(t *testing.T) {
	d := newStringDriver(false)
	require.NoError(t, d.Build([]string{"example.com", "other.com"}))

	_, ok := d.Match("example.com")
	assert.True(t, ok)
	_, ok = d.Match("EXAMPLE.COM")
	assert.False(t, ok)
	_, ok = d.Match("missing.com")
	assert.False(t, ok)
}

func TestStringDriverCaseInsensitive(t *testing.T) {
	d := newStringDriver(true)
	require.NoError(t, d.Build([]string{"Example.COM"}))
	_, ok := d.Match("example.com")
	assert.True(t, ok)
}

func TestShellDriver(t *testing.T) {
	d := newShellDriver(false)
	require.NoError(t, d.Build([]string{"*.example.com", "static.site"}))

	_, ok := d.Match("www.example.com")
	assert.True(t, ok)
	_, ok = d.Match("static.site")
	assert.True(t, ok)
	_, ok = d.Match("www.other.com")
	assert.False(t, ok)
}

func TestRegexDriverPOSIX(t *testing.T) {
	d := newRegexDriver(true, false)
	require.NoError(t, d.Build([]string{`^[a-z]+\.example\.com$`}))

	_, ok := d.Match("www.example.com")
	assert.True(t, ok)
	_, ok = d.Match("WWW.example.com")
	assert.False(t, ok)
}

func TestRegexDriverCaseInsensitive(t *testing.T) {
	d := newRegexDriver(false, true)
	require.NoError(t, d.Build([]string{`^ads\.`}))
	_, ok := d.Match("ADS.tracker.com")
	assert.True(t, ok)
}

func TestIPDriverExactAndCIDR(t *testing.T) {
	d := newIPDriver()
	require.NoError(t, d.Build([]string{"10.0.0.1", "192.168.1.0/24"}))

	_, ok := d.Match("10.0.0.1")
	assert.True(t, ok)
	_, ok = d.Match("192.168.1.42")
	assert.True(t, ok)
	_, ok = d.Match("192.168.2.1")
	assert.False(t, ok)
}

func TestDummyDriverAlwaysMatches(t *testing.T) {
	d := newDummyDriver()
	require.NoError(t, d.Build(nil))
	_, ok := d.Match("anything")
	assert.True(t, ok)
}
