package parser

import "fmt"

// DelimKind identifies which class of delimiter was left open.
type DelimKind int

const (
	// DelimQuote covers single and double quotes.
	DelimQuote DelimKind = iota
	// DelimBrace covers brace groups.
	DelimBrace
	// DelimParen covers parenthesized sub-expressions.
	DelimParen
)

func (k DelimKind) String() string {
	switch k {
	case DelimQuote:
		return "quote"
	case DelimBrace:
		return "brace"
	case DelimParen:
		return "paren"
	default:
		return "unknown"
	}
}

// IncompleteError reports a delimiter opened inside the parse range that was
// never closed. It is a control signal, not a user-facing error: the caller
// re-invokes Parse with the range narrowed to start just inside the open
// delimiter, or, for the paren case, hands the request to a nested-expression
// completer.
type IncompleteError struct {
	Kind   DelimKind
	Delim  rune
	Offset int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("incomplete %s %q at offset %d", e.Kind, e.Delim, e.Offset)
}

// EvalError reports a failed eager evaluation of an embedded sub-expression.
// It aborts the whole parse pass; there is no partial recovery.
type EvalError struct {
	Expr   string
	Offset int
	Err    error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluating %q at offset %d: %v", e.Expr, e.Offset, e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}
