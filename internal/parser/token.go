// Package parser turns raw command-line text into an ordered sequence of
// typed tokens with source offsets. It understands enough quoting, escaping
// and sub-expression syntax to recover argument boundaries for completion;
// it is not a full shell grammar.
package parser

// TokenKind classifies a parsed token.
type TokenKind int

const (
	// Word is a regular argument token.
	Word TokenKind = iota
	// Operator is a segment separator such as |, ||, && or ;.
	Operator
	// Incomplete marks a token cut short by an unterminated delimiter.
	Incomplete
)

// Token is a single argument recovered from the input line. Raw is the exact
// source slice [Start,End) of the line; Value is the post-unescape,
// post-substitution text. Tokens are immutable once produced.
type Token struct {
	Raw   string
	Value string
	Start int
	End   int
	Kind  TokenKind
}

// Result is the outcome of one parse pass over a line range. Tokens contains
// only the final pipeline segment: anything before the last segment operator
// has already been discarded, since earlier segments never participate in
// the current completion.
type Result struct {
	Tokens []Token
}

// Words returns the values of all Word tokens, in order.
func (r Result) Words() []string {
	words := make([]string, 0, len(r.Tokens))
	for _, tok := range r.Tokens {
		if tok.Kind == Word {
			words = append(words, tok.Value)
		}
	}
	return words
}
