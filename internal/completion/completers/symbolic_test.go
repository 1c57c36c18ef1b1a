package completers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolMap_OrderAndDedup(t *testing.T) {
	m := NewSymbolMap("setup", "teardown")
	m.Add("setup")
	m.Add("shutdown")

	assert.Equal(t, []string{"setup", "teardown", "shutdown"}, m.Callables())
}

func TestSymbolicCompleter_Complete(t *testing.T) {
	c := &SymbolicCompleter{Source: NewSymbolMap("setup", "shutdown", "Start", "teardown")}

	assert.Equal(t, []string{"setup", "shutdown"}, c.Complete("s", false))
	assert.Equal(t, []string{"setup", "shutdown", "Start"}, c.Complete("s", true))
	assert.Empty(t, c.Complete("x", false))
}

func TestSymbolicCompleter_NilSource(t *testing.T) {
	c := &SymbolicCompleter{}
	assert.Empty(t, c.Complete("", false))
}
