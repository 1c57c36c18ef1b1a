// Package subshell evaluates embedded sub-expressions for the tokenizer
// using a mvdan.cc/sh interpreter. Each evaluation runs in a subshell of the
// host runner so captured output never leaks into the interactive session.
package subshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Evaluator implements parser.Evaluator on top of an interp.Runner.
type Evaluator struct {
	runner *interp.Runner
	logger *zap.Logger
}

// New creates an Evaluator sharing the given runner's environment. A nil
// runner gets a fresh one seeded from the process environment; a nil logger
// falls back to a no-op logger.
func New(runner *interp.Runner, logger *zap.Logger) (*Evaluator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if runner == nil {
		var err error
		runner, err = interp.New(
			interp.Env(expand.ListEnviron(os.Environ()...)),
			interp.StdIO(nil, io.Discard, io.Discard),
		)
		if err != nil {
			return nil, fmt.Errorf("creating sub-expression runner: %w", err)
		}
	}
	return &Evaluator{runner: runner, logger: logger}, nil
}

// EvalCommand runs the body of a $(...) substitution and returns its stdout
// with the trailing newline stripped, matching shell command substitution.
func (e *Evaluator) EvalCommand(ctx context.Context, src string) (string, error) {
	out, err := e.capture(ctx, src)
	if err != nil {
		e.logger.Debug("sub-expression evaluation failed",
			zap.String("src", src), zap.Error(err))
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// EvalArith evaluates the body of a $((...)) expansion.
func (e *Evaluator) EvalArith(ctx context.Context, src string) (string, error) {
	return e.EvalCommand(ctx, fmt.Sprintf(`printf '%%s' "$((%s))"`, src))
}

// capture parses src and runs it in a subshell with stdout redirected into a
// buffer. A non-zero exit status is an evaluation failure: the completion
// attempt must abort rather than complete against partial output.
func (e *Evaluator) capture(ctx context.Context, src string) (string, error) {
	sub := e.runner.Subshell()

	var out bytes.Buffer
	interp.StdIO(nil, &out, io.Discard)(sub) //nolint:errcheck

	file, err := syntax.NewParser().Parse(strings.NewReader(src), "")
	if err != nil {
		return "", fmt.Errorf("parsing sub-expression: %w", err)
	}

	if err := sub.Run(ctx, file); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return "", fmt.Errorf("sub-expression exited with status %d", int(status))
		}
		return "", fmt.Errorf("running sub-expression: %w", err)
	}
	return out.String(), nil
}
