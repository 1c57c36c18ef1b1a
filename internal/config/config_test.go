package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coveshell/cove/internal/completion"
)

const yamlConfig = `
ignore_case: true
auto_list: true
cycle_cutoff: 8
use_paring: false
show_symbolic: when-empty
file_ignore: '~$'
dir_ignore: '^\.git/$'
aliases:
  gst: git status
  gd: git diff
symbols:
  - my-func
rules:
  - command: gcc
    filter: '\.c(c|pp)?$'
  - pattern: '^g?tar$'
    filter: '\.tar(\.gz)?$'
`

func TestLoadBytes_YAML(t *testing.T) {
	cfg, err := LoadBytes([]byte(yamlConfig), "yaml")
	require.NoError(t, err)

	assert.True(t, cfg.IgnoreCase)
	assert.True(t, cfg.AutoList)
	assert.Equal(t, 8, cfg.CycleCutoff)
	assert.False(t, cfg.UseParing)
	assert.Equal(t, "when-empty", cfg.ShowSymbolic)
	assert.Equal(t, "git status", cfg.Aliases["gst"])
	assert.Equal(t, []string{"my-func"}, cfg.Symbols)
	require.Len(t, cfg.Rules, 2)
}

func TestLoadBytes_JSON(t *testing.T) {
	cfg, err := LoadBytes([]byte(`{"cycle_cutoff": 3, "suffix_char": ""}`), "json")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.CycleCutoff)
}

func TestLoadBytes_TOML(t *testing.T) {
	cfg, err := LoadBytes([]byte("ignore_case = true\ncycle_cutoff = 7\n"), "toml")
	require.NoError(t, err)
	assert.True(t, cfg.IgnoreCase)
	assert.Equal(t, 7, cfg.CycleCutoff)
}

func TestLoadBytes_UnsupportedFormat(t *testing.T) {
	_, err := LoadBytes(nil, "ini")
	assert.Error(t, err)
}

func TestLoad_ChoosesParserByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cove.yml")
	require.NoError(t, os.WriteFile(path, []byte("cycle_cutoff: 9\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.CycleCutoff)

	// Unconfigured fields keep their defaults.
	assert.True(t, cfg.UseParing)
	assert.Equal(t, " ", cfg.SuffixChar)
}

func TestCompletionOptions(t *testing.T) {
	cfg, err := LoadBytes([]byte(yamlConfig), "yaml")
	require.NoError(t, err)

	opts, err := cfg.CompletionOptions()
	require.NoError(t, err)

	assert.True(t, opts.IgnoreCase)
	assert.Equal(t, completion.SymbolicWhenEmpty, opts.Symbolic)
	assert.True(t, opts.FileIgnore.MatchString("main.go~"))
	assert.True(t, opts.DirIgnore.MatchString(".git/"))
}

func TestCompletionOptions_BadSymbolicMode(t *testing.T) {
	cfg := Default()
	cfg.ShowSymbolic = "sometimes"
	_, err := cfg.CompletionOptions()
	assert.Error(t, err)
}

func TestCompletionOptions_BadPattern(t *testing.T) {
	cfg := Default()
	cfg.FileIgnore = "("
	_, err := cfg.CompletionOptions()
	assert.Error(t, err)
}

func TestRuleTable(t *testing.T) {
	cfg, err := LoadBytes([]byte(yamlConfig), "yaml")
	require.NoError(t, err)

	table, err := cfg.RuleTable()
	require.NoError(t, err)

	rule, ok := table.Find("gcc")
	require.True(t, ok)
	assert.True(t, rule.Filter.MatchString("a.cpp"))

	rule, ok = table.Find("gtar")
	require.True(t, ok)
	assert.True(t, rule.Filter.MatchString("a.tar.gz"))

	_, ok = table.Find("ls")
	assert.False(t, ok)
}

func TestRegistry_SortedAndDeterministic(t *testing.T) {
	cfg, err := LoadBytes([]byte(yamlConfig), "yaml")
	require.NoError(t, err)

	registry := cfg.Registry()
	assert.Equal(t, []string{"gd", "gst"}, registry.Match("g", false))

	def, ok := registry.Lookup("gst")
	require.True(t, ok)
	assert.Equal(t, "git status", def.Expansion)
}
