package main

import (
	"context"
	"strings"

	"github.com/coveshell/cove/internal/completion"
)

// readlineCompleter adapts the completion engine to the readline
// AutoCompleter interface. readline expects the suffixes to append after
// the typed stub plus the stub's rune length; it can only ever append, so
// insertions that would rewrite the stub (case-folded matches mid-cycle)
// degrade to a no-op.
type readlineCompleter struct {
	engine *completion.Engine
}

func (c *readlineCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	s := string(line[:pos])
	action := c.engine.Complete(context.Background(), s, len(s))

	if action.Start > len(s) {
		return nil, 0
	}
	stub := s[action.Start:]

	switch action.Kind {
	case completion.InsertUnique, completion.InsertCommonPrefix:
		if !strings.HasPrefix(action.Text, stub) {
			return nil, 0
		}
		return [][]rune{[]rune(action.Text[len(stub):])}, len([]rune(stub))
	case completion.ShowList:
		for _, cand := range action.Candidates {
			if len(cand) >= len(stub) && strings.EqualFold(cand[:len(stub)], stub) {
				newLine = append(newLine, []rune(cand[len(stub):]))
			}
		}
		return newLine, len([]rune(stub))
	default:
		return nil, 0
	}
}
