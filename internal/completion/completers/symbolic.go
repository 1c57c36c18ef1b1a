package completers

// SymbolSource exposes the callable names of the broader symbol namespace.
// The host populates an explicit source at startup; the completion engine
// never enumerates a runtime namespace reflectively.
type SymbolSource interface {
	Callables() []string
}

// SymbolMap is the standard SymbolSource: an explicitly populated, ordered
// list of callable names.
type SymbolMap struct {
	names []string
	seen  map[string]struct{}
}

// NewSymbolMap creates a SymbolMap from the given names.
func NewSymbolMap(names ...string) *SymbolMap {
	m := &SymbolMap{seen: make(map[string]struct{})}
	for _, name := range names {
		m.Add(name)
	}
	return m
}

// Add registers a callable name, ignoring duplicates.
func (m *SymbolMap) Add(name string) {
	if _, ok := m.seen[name]; ok {
		return
	}
	m.seen[name] = struct{}{}
	m.names = append(m.names, name)
}

// Callables implements SymbolSource.
func (m *SymbolMap) Callables() []string {
	return m.names
}

// SymbolicCompleter offers callable-symbol names as command candidates. It
// is the lowest-priority source: the engine consults it only when no other
// candidates exist, or unconditionally when configured to.
type SymbolicCompleter struct {
	Source SymbolSource
}

// Complete returns callable names matching stub.
func (c *SymbolicCompleter) Complete(stub string, ignoreCase bool) []string {
	if c.Source == nil {
		return nil
	}
	var out []string
	for _, name := range c.Source.Callables() {
		if matchesPrefix(name, stub, ignoreCase) {
			out = append(out, name)
		}
	}
	return out
}
