package main

import (
	"testing"

	"github.com/coveshell/cove/internal/completion"
	"github.com/coveshell/cove/internal/completion/completers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAdapter(t *testing.T, opts completion.Options, names ...string) *readlineCompleter {
	t.Helper()
	reg := completers.NewRegistry()
	for _, n := range names {
		reg.Register(completers.Definition{Name: n, Kind: completers.KindBuiltin})
	}
	return &readlineCompleter{
		engine: completion.NewEngine(completion.Config{
			Options:  opts,
			Registry: reg,
		}),
	}
}

func TestReadlineDoUniqueSuffix(t *testing.T) {
	c := testAdapter(t, completion.DefaultOptions(), "grep")

	line := []rune("gr")
	cands, length := c.Do(line, len(line))

	require.Len(t, cands, 1)
	assert.Equal(t, "ep ", string(cands[0]))
	assert.Equal(t, 2, length)
}

func TestReadlineDoCommonPrefix(t *testing.T) {
	c := testAdapter(t, completion.DefaultOptions(), "gstash", "gstatus")

	line := []rune("gs")
	cands, length := c.Do(line, len(line))

	require.Len(t, cands, 1)
	assert.Equal(t, "ta", string(cands[0]))
	assert.Equal(t, 2, length)
}

func TestReadlineDoList(t *testing.T) {
	opts := completion.DefaultOptions()
	opts.AutoList = true
	opts.CycleCutoff = 1
	c := testAdapter(t, opts, "make", "man", "mv")

	line := []rune("m")
	cands, length := c.Do(line, len(line))

	require.Len(t, cands, 3)
	assert.Equal(t, "ake", string(cands[0]))
	assert.Equal(t, "an", string(cands[1]))
	assert.Equal(t, "v", string(cands[2]))
	assert.Equal(t, 1, length)
}

func TestReadlineDoNoMatch(t *testing.T) {
	c := testAdapter(t, completion.DefaultOptions(), "grep")

	line := []rune("xyz")
	cands, length := c.Do(line, len(line))

	assert.Empty(t, cands)
	assert.Equal(t, 0, length)
}
