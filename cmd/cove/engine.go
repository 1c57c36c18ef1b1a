package main

import (
	"github.com/coveshell/cove/internal/completion"
	"github.com/coveshell/cove/internal/completion/completers"
	"github.com/coveshell/cove/internal/config"
	"github.com/coveshell/cove/internal/subshell"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/interp"
)

// shellBuiltins are the interpreter's built-in commands, offered alongside
// config aliases at command position.
var shellBuiltins = []string{
	"alias", "bg", "break", "cd", "command", "continue", "echo", "eval",
	"exec", "exit", "export", "false", "fg", "getopts", "jobs", "printf",
	"pwd", "read", "readonly", "return", "set", "shift", "source", "test",
	"times", "trap", "true", "type", "umask", "unalias", "unset", "wait",
}

// buildEngine assembles a completion engine from the loaded config and a
// shared interpreter. The same runner backs both substitution expansion
// during completion and command execution in the repl, so completions see
// the session's environment.
func buildEngine(cfg config.Config, runner *interp.Runner, logger *zap.Logger) (*completion.Engine, error) {
	opts, err := cfg.CompletionOptions()
	if err != nil {
		return nil, err
	}
	rules, err := cfg.RuleTable()
	if err != nil {
		return nil, err
	}
	eval, err := subshell.New(runner, logger)
	if err != nil {
		return nil, err
	}

	registry := cfg.Registry()
	for _, name := range shellBuiltins {
		registry.Register(completers.Definition{Name: name, Kind: completers.KindBuiltin})
	}

	return completion.NewEngine(completion.Config{
		Options:     opts,
		Registry:    registry,
		Executables: completers.NewExecutableCompleter(),
		Args:        completers.NewArgCompleter(rules),
		Symbols:     cfg.SymbolMap(),
		Evaluator:   eval,
		Logger:      logger,
	}), nil
}
