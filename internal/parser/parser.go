package parser

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Evaluator resolves embedded sub-expressions found among arguments. Both
// methods return the textual form of the evaluation result; non-string
// results must already be coerced to text by the implementation.
type Evaluator interface {
	// EvalCommand evaluates the body of a $(...) command substitution.
	EvalCommand(ctx context.Context, src string) (string, error)
	// EvalArith evaluates the body of a $((...)) arithmetic expansion.
	EvalArith(ctx context.Context, src string) (string, error)
}

// Parse tokenizes line[from:to]. Offsets in the produced tokens are absolute
// indices into line, so a caller narrowing the range after an IncompleteError
// still gets positions it can map back onto the original text.
//
// Embedded $(...) and $((...)) sub-expressions are evaluated eagerly through
// ev; when ev is nil their raw text is kept as the token value instead.
func Parse(ctx context.Context, line string, from, to int, ev Evaluator) (Result, error) {
	if from < 0 {
		from = 0
	}
	if to > len(line) {
		to = len(line)
	}

	s := &scanner{ctx: ctx, line: line, to: to, ev: ev}
	if err := s.run(from); err != nil {
		return Result{}, err
	}

	// Every emitted token must map to exactly one recorded source span. A
	// mismatch is a parser defect, never a property of the input.
	if len(s.tokens) != len(s.spans) {
		panic(fmt.Sprintf("parser: token/position desynchronization: %d tokens, %d spans",
			len(s.tokens), len(s.spans)))
	}

	tokens := s.tokens
	if s.trailingSpace {
		tokens = append(tokens, Token{Start: to, End: to, Kind: Word})
		s.spans = append(s.spans, span{to, to})
	}

	// Keep only the final pipeline segment.
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].Kind == Operator {
			tokens = tokens[i+1:]
			break
		}
	}

	return Result{Tokens: tokens}, nil
}

type span struct{ start, end int }

type scanner struct {
	ctx  context.Context
	line string
	to   int
	ev   Evaluator

	tokens []Token
	spans  []span

	value      strings.Builder
	start      int
	inToken    bool
	incomplete bool

	trailingSpace bool
}

func (s *scanner) run(from int) error {
	i := from
	for i < s.to {
		r, size := utf8.DecodeRuneInString(s.line[i:])
		switch {
		case unicode.IsSpace(r):
			s.finishWord(i)
			s.trailingSpace = true
			i += size

		case r == '\'':
			s.beginWord(i)
			end, err := s.scanSingleQuote(i)
			if err != nil {
				return err
			}
			i = end

		case r == '"':
			s.beginWord(i)
			end, err := s.scanDoubleQuote(i)
			if err != nil {
				return err
			}
			i = end

		case r == '\\':
			s.beginWord(i)
			if i+size < s.to {
				esc, escSize := utf8.DecodeRuneInString(s.line[i+size:])
				s.value.WriteRune(esc)
				i += size + escSize
			} else {
				// A lone backslash at the end of the range is an
				// escape still being typed.
				s.value.WriteRune('\\')
				s.incomplete = true
				i += size
			}

		case r == '{':
			s.beginWord(i)
			end, err := s.matchDelim(i, '{', '}', DelimBrace)
			if err != nil {
				return err
			}
			s.value.WriteString(s.line[i:end])
			i = end

		case r == '$' && strings.HasPrefix(s.line[i:s.to], "$(("):
			s.beginWord(i)
			end, err := s.scanArith(i)
			if err != nil {
				return err
			}
			i = end

		case r == '$' && strings.HasPrefix(s.line[i:s.to], "$("):
			s.beginWord(i)
			end, err := s.scanCommandSubst(i)
			if err != nil {
				return err
			}
			i = end

		case r == '(':
			s.beginWord(i)
			end, err := s.matchDelim(i, '(', ')', DelimParen)
			if err != nil {
				return err
			}
			s.value.WriteString(s.line[i:end])
			i = end

		case r == '|' || r == '&' || r == ';':
			s.finishWord(i)
			end := i + size
			if end < s.to {
				next, _ := utf8.DecodeRuneInString(s.line[end:])
				if (r == '|' && next == '|') || (r == '&' && next == '&') {
					end++
				}
			}
			s.emit(Token{
				Raw:   s.line[i:end],
				Value: s.line[i:end],
				Start: i,
				End:   end,
				Kind:  Operator,
			})
			i = end

		default:
			s.beginWord(i)
			s.value.WriteRune(r)
			i += size
		}
	}

	s.finishWord(s.to)
	return nil
}

func (s *scanner) beginWord(offset int) {
	s.trailingSpace = false
	if !s.inToken {
		s.inToken = true
		s.start = offset
		s.value.Reset()
		s.incomplete = false
	}
}

func (s *scanner) finishWord(end int) {
	if !s.inToken {
		return
	}
	kind := Word
	if s.incomplete {
		kind = Incomplete
	}
	s.emit(Token{
		Raw:   s.line[s.start:end],
		Value: s.value.String(),
		Start: s.start,
		End:   end,
		Kind:  kind,
	})
	s.inToken = false
}

func (s *scanner) emit(tok Token) {
	s.tokens = append(s.tokens, tok)
	s.spans = append(s.spans, span{tok.Start, tok.End})
	s.trailingSpace = false
}

// scanSingleQuote consumes a 'literal' section starting at the opening quote
// and returns the offset past the closing quote.
func (s *scanner) scanSingleQuote(open int) (int, error) {
	for i := open + 1; i < s.to; i++ {
		if s.line[i] == '\'' {
			s.value.WriteString(s.line[open+1 : i])
			return i + 1, nil
		}
	}
	return 0, &IncompleteError{Kind: DelimQuote, Delim: '\'', Offset: open}
}

// scanDoubleQuote consumes a "..." section, honoring backslash escapes for
// the quote, backslash and dollar characters and resolving embedded
// sub-expressions.
func (s *scanner) scanDoubleQuote(open int) (int, error) {
	i := open + 1
	for i < s.to {
		r, size := utf8.DecodeRuneInString(s.line[i:])
		switch {
		case r == '"':
			return i + size, nil

		case r == '\\' && i+size < s.to:
			esc, escSize := utf8.DecodeRuneInString(s.line[i+size:])
			if esc == '"' || esc == '\\' || esc == '$' {
				s.value.WriteRune(esc)
			} else {
				s.value.WriteRune('\\')
				s.value.WriteRune(esc)
			}
			i += size + escSize

		case r == '$' && strings.HasPrefix(s.line[i:s.to], "$(("):
			end, err := s.scanArith(i)
			if err != nil {
				return 0, err
			}
			i = end

		case r == '$' && strings.HasPrefix(s.line[i:s.to], "$("):
			end, err := s.scanCommandSubst(i)
			if err != nil {
				return 0, err
			}
			i = end

		default:
			s.value.WriteRune(r)
			i += size
		}
	}
	return 0, &IncompleteError{Kind: DelimQuote, Delim: '"', Offset: open}
}

// scanCommandSubst consumes $(...) starting at the dollar sign, evaluates the
// body and appends the result to the current token value.
func (s *scanner) scanCommandSubst(dollar int) (int, error) {
	end, err := s.matchDelim(dollar+1, '(', ')', DelimParen)
	if err != nil {
		return 0, err
	}
	body := s.line[dollar+2 : end-1]
	return end, s.substitute(body, dollar, end, func(ctx context.Context) (string, error) {
		return s.ev.EvalCommand(ctx, body)
	})
}

// scanArith consumes $((...)) starting at the dollar sign.
func (s *scanner) scanArith(dollar int) (int, error) {
	depth := 0
	for i := dollar + 1; i < s.to; i++ {
		switch s.line[i] {
		case '(':
			depth++
		case ')':
			depth--
			// The outermost pair closes with "))".
			if depth == 1 && i+1 < s.to && s.line[i+1] == ')' {
				body := s.line[dollar+3 : i]
				if err := s.substitute(body, dollar, i+2, func(ctx context.Context) (string, error) {
					return s.ev.EvalArith(ctx, body)
				}); err != nil {
					return 0, err
				}
				return i + 2, nil
			}
		}
	}
	return 0, &IncompleteError{Kind: DelimParen, Delim: '(', Offset: dollar + 1}
}

func (s *scanner) substitute(body string, offset, end int, eval func(context.Context) (string, error)) error {
	if s.ev == nil {
		s.value.WriteString(s.line[offset:end])
		return nil
	}
	out, err := eval(s.ctx)
	if err != nil {
		return &EvalError{Expr: body, Offset: offset, Err: err}
	}
	s.value.WriteString(out)
	return nil
}

// matchDelim finds the offset just past the close delimiter matching the open
// delimiter at offset open, honoring nesting of the same delimiter pair.
func (s *scanner) matchDelim(open int, openDelim, closeDelim byte, kind DelimKind) (int, error) {
	depth := 0
	for i := open; i < s.to; i++ {
		switch s.line[i] {
		case openDelim:
			depth++
		case closeDelim:
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		}
	}
	return 0, &IncompleteError{Kind: kind, Delim: rune(openDelim), Offset: open}
}
