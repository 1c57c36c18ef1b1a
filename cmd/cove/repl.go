package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/coveshell/cove/internal/completion"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// replCmd runs an interactive shell with the completion engine wired into
// readline's tab handler. Lines are executed by the same interpreter that
// expands substitutions during completion.
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive shell with live completion",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := initLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		runner, err := interp.New(
			interp.Interactive(true),
			interp.Env(expand.ListEnviron(os.Environ()...)),
			interp.StdIO(os.Stdin, os.Stdout, os.Stderr),
		)
		if err != nil {
			return err
		}

		engine, err := buildEngine(cfg, runner, logger)
		if err != nil {
			return err
		}

		logger.Info("-------- new cove session --------", zap.Any("args", os.Args))
		return runREPL(cmd.Context(), runner, engine, logger)
	},
}

func runREPL(ctx context.Context, runner *interp.Runner, engine *completion.Engine, logger *zap.Logger) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "cove> ",
		HistoryFile:     historyFile(),
		AutoComplete:    &readlineCompleter{engine: engine},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	errStyle := color.New(color.FgRed)
	parser := syntax.NewParser()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				engine.Cancel()
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		engine.Cancel()

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			return nil
		}

		file, err := parser.Parse(strings.NewReader(line), "cove")
		if err != nil {
			errStyle.Fprintf(os.Stderr, "cove: %v\n", err)
			continue
		}
		if err := runner.Run(ctx, file); err != nil {
			var status interp.ExitStatus
			if !errors.As(err, &status) {
				errStyle.Fprintf(os.Stderr, "cove: %v\n", err)
				logger.Debug("command failed", zap.String("line", line), zap.Error(err))
			}
		}

		rl.SaveHistory(line)
	}
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cove", "history")
}
