package completers

// DefinitionKind distinguishes the two sorts of named commands.
type DefinitionKind int

const (
	// KindAlias is a user-defined alias expanding to other text.
	KindAlias DefinitionKind = iota
	// KindBuiltin is a command implemented by the host itself.
	KindBuiltin
)

// Definition is one entry of the named-command registry.
type Definition struct {
	Name      string
	Kind      DefinitionKind
	Expansion string
	Doc       string
}

// Registry holds dynamically defined named commands (aliases and builtins).
// The host environment populates it explicitly at startup; the completion
// engine only ever performs lookups. Registration order is preserved and is
// the documented tie-break when a named command and an on-PATH executable
// share a name: the first-registered entry wins the merge.
type Registry struct {
	order []string
	defs  map[string]Definition
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds or replaces a definition. Re-registering keeps the original
// position in the order.
func (r *Registry) Register(def Definition) {
	if _, ok := r.defs[def.Name]; !ok {
		r.order = append(r.order, def.Name)
	}
	r.defs[def.Name] = def
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Match returns all registered names completing stub, in registration order.
func (r *Registry) Match(stub string, ignoreCase bool) []string {
	var out []string
	for _, name := range r.order {
		if matchesPrefix(name, stub, ignoreCase) {
			out = append(out, name)
		}
	}
	return out
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	return len(r.order)
}
