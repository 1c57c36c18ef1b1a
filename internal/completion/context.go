package completion

import (
	"runtime"
	"strings"

	"github.com/coveshell/cove/internal/parser"
)

// explicitMarker prefixes a command name to bypass named-command resolution
// and force on-disk lookup.
const explicitMarker = '*'

// caseInsensitiveFS reports whether command lookup should also strip a known
// executable extension, as on case-insensitive-filesystem targets.
var caseInsensitiveFS = runtime.GOOS == "windows"

// Context describes one completion request: which token is being completed
// and in what role. It is derived per request and never persisted.
type Context struct {
	// Stub is the partial token at the cursor, marker stripped.
	Stub string
	// StubStart is the offset in the original line where the stub begins
	// (past the explicit marker when one is present).
	StubStart int
	// Position is the argument index of the stub within the segment.
	Position int
	// PrecedingArgs holds the values of the tokens before the stub.
	PrecedingArgs []string
	// IsCommand is true when the stub sits at position 0 of the segment.
	IsCommand bool
	// CommandName is the normalized name of the segment's command; empty at
	// command position.
	CommandName string
	// Explicit is true when the stub carried the explicit-command marker,
	// which disables named-command resolution.
	Explicit bool
}

// Resolve classifies the completion target given the tokens of the line up
// to the cursor. The last token is the stub; when the line ends on
// whitespace the tokenizer has already synthesized an empty trailing token,
// and with no tokens at all the stub is an empty command.
func Resolve(tokens []parser.Token, cursor int) Context {
	if len(tokens) == 0 {
		return Context{StubStart: cursor, IsCommand: true}
	}

	last := tokens[len(tokens)-1]
	ctx := Context{
		Stub:      last.Value,
		StubStart: last.Start,
		Position:  len(tokens) - 1,
		IsCommand: len(tokens) == 1,
	}

	for _, tok := range tokens[:len(tokens)-1] {
		ctx.PrecedingArgs = append(ctx.PrecedingArgs, tok.Value)
	}

	if ctx.IsCommand {
		if strings.HasPrefix(ctx.Stub, string(explicitMarker)) {
			ctx.Explicit = true
			ctx.Stub = ctx.Stub[1:]
			ctx.StubStart++
		}
	} else {
		ctx.CommandName = NormalizeCommand(tokens[0].Value)
	}

	return ctx
}

// NormalizeCommand derives the registry lookup key from a raw command token:
// the explicit marker is stripped, and on case-insensitive-filesystem
// targets a trailing executable extension is dropped as well.
func NormalizeCommand(name string) string {
	name = strings.TrimPrefix(name, string(explicitMarker))
	if caseInsensitiveFS {
		name = strings.TrimSuffix(name, ".exe")
	}
	return name
}
