package main

import (
	"bufio"
	"strings"
	"testing"

	aclhelper "github.com/maxb-odessa/aclhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allowChain(t *testing.T, allowed string) *aclhelper.Chain {
	t.Helper()
	chain := aclhelper.NewChain()
	driver, err := aclhelper.NewDriver("string", aclhelper.DriverConfig{}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, driver.Build([]string{allowed}))
	chain.Add(&aclhelper.Checker{
		ID: "allow", FieldIdx: 0, Driver: driver, Action: aclhelper.ActionMiss, Notes: "", Enabled: true,
	})
	return chain
}

func TestRunLoopConcurrencyZeroHasNoSequenceID(t *testing.T) {
	chain := allowChain(t, "good.example")
	in := strings.NewReader("good.example\nbad.example\n")
	var out strings.Builder

	err := runLoop(in, &out, chain, 0)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `OK  message="(none)"`, lines[0])
	assert.Equal(t, `ERR  message="(none)"`, lines[1])
}

func TestRunLoopConcurrencyEchoesSequenceID(t *testing.T) {
	chain := allowChain(t, "good.example")
	in := strings.NewReader("1 good.example\n2 bad.example\n")
	var out strings.Builder

	err := runLoop(in, &out, chain, 4)
	require.NoError(t, err)

	results := map[string]string{}
	scanner := bufio.NewScanner(strings.NewReader(out.String()))
	for scanner.Scan() {
		line := scanner.Text()
		seq, rest, ok := strings.Cut(line, " ")
		require.True(t, ok)
		results[seq] = rest
	}
	require.Len(t, results, 2)
	assert.Equal(t, `OK  message="(none)"`, results["1"])
	assert.Equal(t, `ERR  message="(none)"`, results["2"])
}

func TestRunLoopConcurrentOrderingPreservesSequenceIDMultiset(t *testing.T) {
	chain := allowChain(t, "good.example")
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, "id good.example")
	}
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out strings.Builder

	err := runLoop(in, &out, chain, 8)
	require.NoError(t, err)

	scanner := bufio.NewScanner(strings.NewReader(out.String()))
	count := 0
	for scanner.Scan() {
		assert.True(t, strings.HasPrefix(scanner.Text(), "id "))
		count++
	}
	assert.Equal(t, 50, count)
}

func TestRunLoopDecodesURLEscapedTokens(t *testing.T) {
	chain := allowChain(t, "a b")
	in := strings.NewReader("a%20b\n")
	var out strings.Builder

	err := runLoop(in, &out, chain, 0)
	require.NoError(t, err)
	assert.Equal(t, `OK  message="(none)"`, strings.TrimRight(out.String(), "\n"))
}
