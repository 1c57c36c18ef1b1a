package completion

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/coveshell/cove/internal/completion/completers"
	"github.com/coveshell/cove/internal/parser"
)

// ActionKind enumerates the possible outcomes of a completion request.
type ActionKind int

const (
	// NoOp tells the caller to fall back to a literal insertion of the
	// trigger key. Completion failure must never block ordinary typing.
	NoOp ActionKind = iota
	// InsertUnique replaces the stub span with a single chosen candidate.
	InsertUnique
	// InsertCommonPrefix replaces the stub span with the shared prefix of
	// all candidates.
	InsertCommonPrefix
	// ShowList asks the caller to present the full candidate set.
	ShowList
)

// Action is the engine's answer to one completion keypress. Text replaces
// the [Start,End) span of the line the request was made against; Candidates
// carries the full set for ShowList and for cycle displays. A ShowList
// action marks the stub span in [Start,End) so hosts can group the list
// around what was typed.
type Action struct {
	Kind       ActionKind
	Text       string
	Start      int
	End        int
	Candidates []string
}

// Apply returns the line and cursor position after performing the action.
func (a Action) Apply(line string, pos int) (string, int) {
	if a.Kind != InsertUnique && a.Kind != InsertCommonPrefix {
		return line, pos
	}
	start, end := a.Start, a.End
	if end > len(line) {
		end = len(line)
	}
	if start > end {
		start = end
	}
	return line[:start] + a.Text + line[end:], start + len(a.Text)
}

// NestedCompleter handles completion inside an unterminated parenthesized
// sub-expression, which the engine delegates rather than parses.
type NestedCompleter func(line string, pos int) Action

// Mode is the state of the completion session.
type Mode int

const (
	// Idle means no session is pending.
	Idle Mode = iota
	// Cycling steps through a small candidate set on repeated presses.
	Cycling
	// Listing presents the full set instead of cycling.
	Listing
)

// Config assembles an Engine. Nil sources are simply not consulted; a nil
// Logger falls back to a no-op logger.
type Config struct {
	Options     Options
	Registry    *completers.Registry
	Executables *completers.ExecutableCompleter
	Args        *completers.ArgCompleter
	Symbols     completers.SymbolSource
	Evaluator   parser.Evaluator
	Nested      NestedCompleter
	Logger      *zap.Logger
}

// Engine is the completion session driver: it resolves the context of a
// request, gathers and filters candidates, and tracks the cycling state
// across repeated presses. It is single-threaded by design; a session is
// only ever touched by the event handler that owns it.
type Engine struct {
	opts     Options
	registry *completers.Registry
	execs    *completers.ExecutableCompleter
	args     *completers.ArgCompleter
	symbols  *completers.SymbolicCompleter
	eval     parser.Evaluator
	nested   NestedCompleter
	logger   *zap.Logger

	session session
}

type session struct {
	mode       Mode
	start      int
	candidates []string
	cycle      int
	expectLine string
	expectPos  int
}

// NewEngine creates an Engine from cfg.
func NewEngine(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := cfg.Options
	if opts.CycleCutoff <= 0 {
		opts.CycleCutoff = DefaultOptions().CycleCutoff
	}
	return &Engine{
		opts:     opts,
		registry: cfg.Registry,
		execs:    cfg.Executables,
		args:     cfg.Args,
		symbols:  &completers.SymbolicCompleter{Source: cfg.Symbols},
		eval:     cfg.Evaluator,
		nested:   cfg.Nested,
		logger:   logger,
	}
}

// Complete handles a forward completion keypress at pos in line. A repeated
// press with an unchanged context advances the pending cycle; anything else
// starts a fresh session.
func (e *Engine) Complete(ctx context.Context, line string, pos int) Action {
	if e.pendingMatches(line, pos) {
		switch e.session.mode {
		case Cycling:
			return e.advance(1)
		case Listing:
			return e.list()
		}
	}
	return e.fresh(ctx, line, pos)
}

// CompleteBackward handles the reverse-direction key. From the first
// candidate it wraps to the last.
func (e *Engine) CompleteBackward(ctx context.Context, line string, pos int) Action {
	if e.pendingMatches(line, pos) && e.session.mode == Cycling {
		return e.advance(-1)
	}
	return e.fresh(ctx, line, pos)
}

// Cancel discards the pending session. Hosts call it when any key other
// than a completion command arrives.
func (e *Engine) Cancel() {
	e.session = session{}
}

// Mode reports the current session state.
func (e *Engine) Mode() Mode {
	return e.session.mode
}

func (e *Engine) pendingMatches(line string, pos int) bool {
	return e.session.mode != Idle && line == e.session.expectLine && pos == e.session.expectPos
}

func (e *Engine) advance(dir int) Action {
	s := &e.session
	n := len(s.candidates)
	if s.cycle < 0 && dir < 0 {
		// Backing up before any candidate was chosen lands on the last.
		s.cycle = n - 1
	} else {
		s.cycle = ((s.cycle+dir)%n + n) % n
	}

	// The previous insertion spans from the stub start to the expected
	// cursor, so the next candidate replaces exactly that.
	act := Action{
		Kind:       InsertUnique,
		Text:       s.candidates[s.cycle],
		Start:      s.start,
		End:        s.expectPos,
		Candidates: s.candidates,
	}
	s.expectLine, s.expectPos = act.Apply(s.expectLine, s.expectPos)
	return act
}

func (e *Engine) list() Action {
	return Action{
		Kind:       ShowList,
		Start:      e.session.start,
		End:        e.session.expectPos,
		Candidates: e.session.candidates,
	}
}

// fresh resolves a new completion request from scratch.
func (e *Engine) fresh(ctx context.Context, line string, pos int) Action {
	e.Cancel()

	res, action, handled := e.parse(ctx, line, pos)
	if handled {
		return action
	}

	cctx := Resolve(res.Tokens, pos)
	candidates := applyIgnores(e.gather(cctx), e.opts)
	e.logger.Debug("completion request resolved",
		zap.String("stub", cctx.Stub),
		zap.Bool("command", cctx.IsCommand),
		zap.Int("candidates", len(candidates)))

	return e.decide(line, pos, cctx, candidates)
}

// parse tokenizes line[:pos], re-parsing with a narrowed range when a quote
// or brace was left open and delegating to the nested completer when a paren
// was. The second return value is the action to surface when parsing itself
// settled the request.
func (e *Engine) parse(ctx context.Context, line string, pos int) (parser.Result, Action, bool) {
	from := 0
	for {
		res, err := parser.Parse(ctx, line, from, pos, e.eval)
		if err == nil {
			return res, Action{}, false
		}

		var inc *parser.IncompleteError
		if errors.As(err, &inc) {
			if inc.Kind == parser.DelimParen {
				if e.nested != nil {
					return parser.Result{}, e.nested(line, pos), true
				}
				return parser.Result{}, Action{Kind: NoOp}, true
			}
			if inc.Offset+1 > from {
				from = inc.Offset + 1
				continue
			}
		}

		// Evaluation failures and parse bugs abort the attempt; the
		// trigger key falls through as a literal.
		e.logger.Debug("completion parse aborted", zap.Error(err))
		return parser.Result{}, Action{Kind: NoOp}, true
	}
}

// gather merges the provider outputs for the resolved context. At command
// position the order is named commands, then executables, then the symbolic
// fallback; the first occurrence of a name wins dedup.
func (e *Engine) gather(cctx Context) []string {
	set := NewCandidateSet()

	if cctx.IsCommand {
		if completers.IsPathStub(cctx.Stub) {
			if e.execs != nil {
				set.AddAll(e.execs.CompletePath(cctx.Stub, e.opts.IgnoreCase, e.opts.ForceExecution)...)
			}
			return set.Items()
		}
		if !cctx.Explicit && e.registry != nil {
			set.AddAll(e.registry.Match(cctx.Stub, e.opts.IgnoreCase)...)
		}
		if e.execs != nil {
			set.AddAll(e.execs.Complete(cctx.Stub, e.opts.IgnoreCase, e.opts.ForceExecution)...)
		}
		if e.opts.Symbolic == SymbolicAlways ||
			(e.opts.Symbolic == SymbolicWhenEmpty && set.Len() == 0) {
			set.AddAll(e.symbols.Complete(cctx.Stub, e.opts.IgnoreCase)...)
		}
		return set.Items()
	}

	if e.args != nil {
		set.AddAll(e.args.Complete(cctx.CommandName, cctx.Stub, e.opts.IgnoreCase)...)
	}
	return set.Items()
}

// decide picks the session action for a freshly gathered candidate set.
func (e *Engine) decide(line string, pos int, cctx Context, candidates []string) Action {
	switch n := len(candidates); {
	case n == 0:
		return Action{Kind: NoOp}

	case n == 1:
		text := candidates[0]
		if !strings.HasSuffix(text, "/") {
			text += e.opts.SuffixChar
		}
		return Action{
			Kind:       InsertUnique,
			Text:       text,
			Start:      cctx.StubStart,
			End:        pos,
			Candidates: candidates,
		}

	case n <= e.opts.CycleCutoff:
		return e.startCycling(line, pos, cctx, candidates)

	default:
		return e.startListing(line, pos, cctx, candidates)
	}
}

func (e *Engine) startCycling(line string, pos int, cctx Context, candidates []string) Action {
	s := session{
		mode:       Cycling,
		start:      cctx.StubStart,
		candidates: candidates,
		expectLine: line,
		expectPos:  pos,
	}

	var act Action
	lcp := longestCommonPrefix(candidates, e.opts.IgnoreCase)
	if e.opts.UseParing && len(lcp) > len(cctx.Stub) {
		s.cycle = -1
		act = Action{
			Kind:       InsertCommonPrefix,
			Text:       lcp,
			Start:      cctx.StubStart,
			End:        pos,
			Candidates: candidates,
		}
	} else {
		s.cycle = 0
		act = Action{
			Kind:       InsertUnique,
			Text:       candidates[0],
			Start:      cctx.StubStart,
			End:        pos,
			Candidates: candidates,
		}
	}

	s.expectLine, s.expectPos = act.Apply(line, pos)
	e.session = s
	return act
}

func (e *Engine) startListing(line string, pos int, cctx Context, candidates []string) Action {
	s := session{
		mode:       Listing,
		start:      cctx.StubStart,
		candidates: candidates,
		expectLine: line,
		expectPos:  pos,
	}

	if e.opts.AutoList {
		e.session = s
		return Action{Kind: ShowList, Start: cctx.StubStart, End: pos, Candidates: candidates}
	}

	lcp := longestCommonPrefix(candidates, e.opts.IgnoreCase)
	if e.opts.UseParing && len(lcp) > len(cctx.Stub) {
		act := Action{
			Kind:       InsertCommonPrefix,
			Text:       lcp,
			Start:      cctx.StubStart,
			End:        pos,
			Candidates: candidates,
		}
		s.expectLine, s.expectPos = act.Apply(line, pos)
		e.session = s
		return act
	}

	e.session = s
	return Action{Kind: ShowList, Start: cctx.StubStart, End: pos, Candidates: candidates}
}
