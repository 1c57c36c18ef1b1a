// Package config loads the cove configuration bundle from YAML, TOML or
// JSON files and turns it into the engine's option and rule structures.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/coveshell/cove/internal/completion"
	"github.com/coveshell/cove/internal/completion/completers"
)

// Rule configures an argument-completion rule for one command.
type Rule struct {
	// Command keys the rule exactly; Pattern keys it by regex instead.
	Command string `koanf:"command"`
	Pattern string `koanf:"pattern"`
	// Filter constrains the filenames offered as arguments.
	Filter string `koanf:"filter"`
}

// Config is the on-disk configuration bundle.
type Config struct {
	IgnoreCase     bool   `koanf:"ignore_case"`
	AutoList       bool   `koanf:"auto_list"`
	CycleCutoff    int    `koanf:"cycle_cutoff"`
	UseParing      bool   `koanf:"use_paring"`
	ShowSymbolic   string `koanf:"show_symbolic"`
	ForceExecution bool   `koanf:"force_execution"`
	FileIgnore     string `koanf:"file_ignore"`
	DirIgnore      string `koanf:"dir_ignore"`
	SuffixChar     string `koanf:"suffix_char"`

	Aliases map[string]string `koanf:"aliases"`
	Symbols []string          `koanf:"symbols"`
	Rules   []Rule            `koanf:"rules"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		CycleCutoff:  5,
		UseParing:    true,
		ShowSymbolic: "off",
		SuffixChar:   " ",
	}
}

// Load reads a configuration file, choosing the parser by extension.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return LoadBytes(data, strings.TrimPrefix(filepath.Ext(path), "."))
}

// LoadBytes parses configuration data in the given format (yml, yaml, toml
// or json), layered over the defaults.
func LoadBytes(data []byte, format string) (Config, error) {
	var parser koanf.Parser
	switch strings.ToLower(format) {
	case "yml", "yaml":
		parser = yaml.Parser()
	case "toml":
		parser = toml.Parser()
	case "json":
		parser = json.Parser()
	default:
		return Config{}, fmt.Errorf("unsupported config format: %s", format)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// CompletionOptions compiles the bundle into engine options.
func (c Config) CompletionOptions() (completion.Options, error) {
	opts := completion.Options{
		IgnoreCase:     c.IgnoreCase,
		AutoList:       c.AutoList,
		CycleCutoff:    c.CycleCutoff,
		UseParing:      c.UseParing,
		ForceExecution: c.ForceExecution,
		SuffixChar:     c.SuffixChar,
	}

	switch c.ShowSymbolic {
	case "", "off":
		opts.Symbolic = completion.SymbolicOff
	case "when-empty":
		opts.Symbolic = completion.SymbolicWhenEmpty
	case "always":
		opts.Symbolic = completion.SymbolicAlways
	default:
		return opts, fmt.Errorf("unknown show_symbolic value: %q", c.ShowSymbolic)
	}

	var err error
	if c.FileIgnore != "" {
		if opts.FileIgnore, err = regexp.Compile(c.FileIgnore); err != nil {
			return opts, fmt.Errorf("compiling file_ignore: %w", err)
		}
	}
	if c.DirIgnore != "" {
		if opts.DirIgnore, err = regexp.Compile(c.DirIgnore); err != nil {
			return opts, fmt.Errorf("compiling dir_ignore: %w", err)
		}
	}
	return opts, nil
}

// RuleTable compiles the configured argument rules, in file order.
func (c Config) RuleTable() (*completers.RuleTable, error) {
	table := completers.NewRuleTable()
	for _, r := range c.Rules {
		rule := completers.ArgRule{Command: r.Command}
		if r.Pattern != "" {
			re, err := regexp.Compile(r.Pattern)
			if err != nil {
				return nil, fmt.Errorf("compiling rule pattern %q: %w", r.Pattern, err)
			}
			rule.Command = ""
			rule.CommandPattern = re
		}
		if r.Filter != "" {
			re, err := regexp.Compile(r.Filter)
			if err != nil {
				return nil, fmt.Errorf("compiling rule filter %q: %w", r.Filter, err)
			}
			rule.Filter = re
		}
		table.Add(rule)
	}
	return table, nil
}

// Registry builds the named-command registry from the configured aliases.
// Map iteration order is not stable, so names are registered sorted to keep
// the documented first-registered tie-break deterministic across runs.
func (c Config) Registry() *completers.Registry {
	registry := completers.NewRegistry()
	for _, name := range sortedKeys(c.Aliases) {
		registry.Register(completers.Definition{
			Name:      name,
			Kind:      completers.KindAlias,
			Expansion: c.Aliases[name],
		})
	}
	return registry
}

// SymbolMap builds the callable-symbol source from the configured names.
func (c Config) SymbolMap() *completers.SymbolMap {
	return completers.NewSymbolMap(c.Symbols...)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
