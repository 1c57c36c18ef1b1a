package completers

import (
	"os"
	"regexp"
)

// ArgRule narrows argument completion for a command to filenames matching a
// pattern or predicate. Either Command (exact) or CommandPattern (regex)
// keys the rule; either Filter or Predicate constrains the filenames.
type ArgRule struct {
	Command        string
	CommandPattern *regexp.Regexp
	Filter         *regexp.Regexp
	Predicate      func(name string) bool
}

func (r ArgRule) keyedBy(command string) bool {
	if r.Command != "" {
		return r.Command == command
	}
	if r.CommandPattern != nil {
		return r.CommandPattern.MatchString(command)
	}
	return false
}

func (r ArgRule) allows(name string) bool {
	if r.Filter != nil {
		return r.Filter.MatchString(name)
	}
	if r.Predicate != nil {
		return r.Predicate(name)
	}
	return true
}

// RuleTable is the static per-command rule table. It is read-only during a
// session and safe to share across sessions. Lookup is first-match-wins, so
// tables are authored in priority order.
type RuleTable struct {
	rules []ArgRule
}

// NewRuleTable creates a RuleTable from rules in priority order.
func NewRuleTable(rules ...ArgRule) *RuleTable {
	return &RuleTable{rules: rules}
}

// Add appends a rule at the lowest priority.
func (t *RuleTable) Add(rule ArgRule) {
	t.rules = append(t.rules, rule)
}

// Find returns the first rule keyed by command.
func (t *RuleTable) Find(command string) (ArgRule, bool) {
	for _, rule := range t.rules {
		if rule.keyedBy(command) {
			return rule, true
		}
	}
	return ArgRule{}, false
}

// ArgCompleter completes argument positions from the filesystem, constrained
// by the rule registered for the command. Without a rule it falls back to a
// plain directories-plus-files listing.
type ArgCompleter struct {
	Rules *RuleTable
	Pwd   func() string
	List  ListDirFunc
}

// NewArgCompleter creates an ArgCompleter wired to the real filesystem.
func NewArgCompleter(rules *RuleTable) *ArgCompleter {
	return &ArgCompleter{
		Rules: rules,
		Pwd: func() string {
			pwd, err := os.Getwd()
			if err != nil {
				return "."
			}
			return pwd
		},
		List: OSListDir,
	}
}

// Complete returns argument candidates for command with the given stub.
// Directories always pass the rule filter (with a trailing slash) so the
// user can keep descending; files must match the rule when one exists.
func (c *ArgCompleter) Complete(command, stub string, ignoreCase bool) []string {
	dir, base := splitStubPath(stub)
	entries, err := c.List(resolveDir(dir, c.Pwd()))
	if err != nil {
		return nil
	}

	var rule ArgRule
	haveRule := false
	if c.Rules != nil {
		rule, haveRule = c.Rules.Find(command)
	}

	var out []string
	for _, entry := range entries {
		if !matchesPrefix(entry.Name, base, ignoreCase) || hiddenEntry(entry.Name, base) {
			continue
		}
		if entry.IsDir {
			out = append(out, dir+entry.Name+"/")
			continue
		}
		if haveRule && !rule.allows(entry.Name) {
			continue
		}
		out = append(out, dir+entry.Name)
	}
	return out
}
