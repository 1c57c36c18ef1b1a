package parser

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEvaluator resolves sub-expressions from fixed maps so parser tests
// never touch a real shell.
type stubEvaluator struct {
	commands map[string]string
	arith    map[string]string
	err      error
}

func (e *stubEvaluator) EvalCommand(_ context.Context, src string) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return e.commands[src], nil
}

func (e *stubEvaluator) EvalArith(_ context.Context, src string) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return e.arith[src], nil
}

func parseAll(t *testing.T, line string, ev Evaluator) Result {
	t.Helper()
	res, err := Parse(context.Background(), line, 0, len(line), ev)
	require.NoError(t, err)
	return res
}

func TestParse_SimpleWords(t *testing.T) {
	res := parseAll(t, "git commit -m", nil)

	require.Len(t, res.Tokens, 3)
	assert.Equal(t, "git", res.Tokens[0].Value)
	assert.Equal(t, "commit", res.Tokens[1].Value)
	assert.Equal(t, "-m", res.Tokens[2].Value)

	assert.Equal(t, 0, res.Tokens[0].Start)
	assert.Equal(t, 3, res.Tokens[0].End)
	assert.Equal(t, 4, res.Tokens[1].Start)
	assert.Equal(t, 10, res.Tokens[1].End)
	assert.Equal(t, 11, res.Tokens[2].Start)
	assert.Equal(t, 13, res.Tokens[2].End)
}

func TestParse_TrailingSpaceYieldsEmptyToken(t *testing.T) {
	res := parseAll(t, "a b c ", nil)

	require.Len(t, res.Tokens, 4)
	last := res.Tokens[3]
	assert.Equal(t, "", last.Value)
	assert.Equal(t, 6, last.Start)
	assert.Equal(t, 6, last.End)
	assert.Equal(t, Word, last.Kind)
}

func TestParse_EscapedTrailingSpaceContinuesToken(t *testing.T) {
	res := parseAll(t, `cp foo\ `, nil)

	require.Len(t, res.Tokens, 2)
	assert.Equal(t, "foo ", res.Tokens[1].Value)
}

func TestParse_Quoting(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"single quotes", `echo 'hello world'`, []string{"echo", "hello world"}},
		{"double quotes", `echo "hello world"`, []string{"echo", "hello world"}},
		{"escaped quote in double quotes", `echo "say \"hi\""`, []string{"echo", `say "hi"`}},
		{"backslash keeps literal in double quotes", `echo "a\nb"`, []string{"echo", `a\nb`}},
		{"escape outside quotes", `echo foo\ bar`, []string{"echo", "foo bar"}},
		{"adjacent quoted pieces join", `echo 'a'"b"c`, []string{"echo", "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parseAll(t, tt.line, nil)
			assert.Equal(t, tt.want, res.Words())
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	lines := []string{
		`ls -la /tmp`,
		`echo 'a b' "c d" e`,
		`grep -r "needle" . `,
		`mv foo\ bar baz`,
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			res := parseAll(t, line, nil)

			// Rejoining raw spans with the original inter-token text must
			// recover the input exactly.
			rebuilt := ""
			prev := 0
			for _, tok := range res.Tokens {
				rebuilt += line[prev:tok.Start] + tok.Raw
				prev = tok.End
			}
			rebuilt += line[prev:]
			assert.Equal(t, line, rebuilt)

			for _, tok := range res.Tokens {
				assert.Equal(t, line[tok.Start:tok.End], tok.Raw)
			}
		})
	}
}

func TestParse_IncompleteDelimiters(t *testing.T) {
	tests := []struct {
		line   string
		kind   DelimKind
		delim  rune
		offset int
	}{
		{`echo 'unterminated`, DelimQuote, '\'', 5},
		{`echo "unterminated`, DelimQuote, '"', 5},
		{`echo {a {b} c`, DelimBrace, '{', 5},
		{`echo (list a b`, DelimParen, '(', 5},
		{`echo $(ls foo`, DelimParen, '(', 6},
		{`echo $((1 + 2`, DelimParen, '(', 6},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := Parse(context.Background(), tt.line, 0, len(tt.line), nil)
			require.Error(t, err)

			var inc *IncompleteError
			require.ErrorAs(t, err, &inc)
			assert.Equal(t, tt.kind, inc.Kind)
			assert.Equal(t, tt.delim, inc.Delim)
			assert.Equal(t, tt.offset, inc.Offset)
		})
	}
}

func TestParse_NarrowedReparseAfterIncomplete(t *testing.T) {
	line := `ls "fo`
	_, err := Parse(context.Background(), line, 0, len(line), nil)

	var inc *IncompleteError
	require.ErrorAs(t, err, &inc)

	res, err := Parse(context.Background(), line, inc.Offset+1, len(line), nil)
	require.NoError(t, err)
	require.Len(t, res.Tokens, 1)
	assert.Equal(t, "fo", res.Tokens[0].Value)
	assert.Equal(t, 4, res.Tokens[0].Start)
}

func TestParse_CommandSubstitution(t *testing.T) {
	ev := &stubEvaluator{commands: map[string]string{"git branch --show-current": "main"}}

	res, err := Parse(context.Background(), `checkout $(git branch --show-current) file`, 0, 42, ev)
	require.NoError(t, err)
	require.Len(t, res.Tokens, 3)
	assert.Equal(t, "main", res.Tokens[1].Value)
	assert.Equal(t, "$(git branch --show-current)", res.Tokens[1].Raw)
}

func TestParse_ArithmeticExpansion(t *testing.T) {
	ev := &stubEvaluator{arith: map[string]string{"1 + 2": "3"}}

	res := parseAll(t, `echo $((1 + 2))`, ev)
	require.Len(t, res.Tokens, 2)
	assert.Equal(t, "3", res.Tokens[1].Value)
}

func TestParse_SubstitutionInsideDoubleQuotes(t *testing.T) {
	ev := &stubEvaluator{commands: map[string]string{"whoami": "alice"}}

	res := parseAll(t, `echo "hi $(whoami)!"`, ev)
	require.Len(t, res.Tokens, 2)
	assert.Equal(t, "hi alice!", res.Tokens[1].Value)
}

func TestParse_EvaluationFailureIsFatal(t *testing.T) {
	boom := fmt.Errorf("exit status 1")
	ev := &stubEvaluator{err: boom}

	line := `echo $(false)`
	_, err := Parse(context.Background(), line, 0, len(line), ev)
	require.Error(t, err)

	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "false", evalErr.Expr)
	assert.True(t, errors.Is(err, boom))
}

func TestParse_NilEvaluatorKeepsRawSubstitution(t *testing.T) {
	res := parseAll(t, `echo $(date)`, nil)
	require.Len(t, res.Tokens, 2)
	assert.Equal(t, "$(date)", res.Tokens[1].Value)
}

func TestParse_SegmentTrimming(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{`ls -l | grep foo`, []string{"grep", "foo"}},
		{`make build && make te`, []string{"make", "te"}},
		{`cd /tmp; ls`, []string{"ls"}},
		{`a|b`, []string{"b"}},
		{`cat foo | `, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			res := parseAll(t, tt.line, nil)
			assert.Equal(t, tt.want, res.Words())
		})
	}
}

func TestParse_BraceGroupKeptOpaque(t *testing.T) {
	res := parseAll(t, `cmd {a {b} c} tail`, nil)

	require.Len(t, res.Tokens, 3)
	assert.Equal(t, "{a {b} c}", res.Tokens[1].Value)
}

func TestParse_TrailingBackslashMarksIncomplete(t *testing.T) {
	res := parseAll(t, `echo foo\`, nil)

	require.Len(t, res.Tokens, 2)
	assert.Equal(t, Incomplete, res.Tokens[1].Kind)
}

func TestParse_RangeRestriction(t *testing.T) {
	line := `ignored ; ls /tm`

	// Parsing the full line keeps only the segment after the operator.
	res := parseAll(t, line, nil)
	assert.Equal(t, []string{"ls", "/tm"}, res.Words())

	// Parsing a narrowed range never sees text outside of it.
	res, err := Parse(context.Background(), line, 10, len(line), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ls", "/tm"}, res.Words())
	assert.Equal(t, 10, res.Tokens[0].Start)
}
