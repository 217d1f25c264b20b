package aclhelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLDecodeNoPercentIsUnchanged(t *testing.T) {
	in := "plain-host.example.com"
	assert.Equal(t, in, URLDecode(in))
}

func TestURLDecodePercentEscapes(t *testing.T) {
	assert.Equal(t, "a b/c", URLDecode("a%20b%2Fc"))
	assert.Equal(t, "100%", URLDecode("100%"))
}

func TestURLDecodeIdempotent(t *testing.T) {
	in := "host with spaces"
	once := URLDecode(in)
	twice := URLDecode(once)
	assert.Equal(t, once, twice)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"123", "GET", "example.com"}, Tokenize("123 GET example.com"))
	assert.Equal(t, []string{"a", "b"}, Tokenize("a++b"))
}
