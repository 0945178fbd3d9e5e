package compliance

// Engine evaluates analyses against the clause catalogs in its registry.
// The zero-cost construction and absence of internal state make a single
// Engine safe to share across concurrent requests.
type Engine struct {
	reg *Registry
}

// NewEngine returns an engine backed by the given registry. A nil registry
// falls back to the built-in catalogs.
func NewEngine(reg *Registry) *Engine {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Engine{reg: reg}
}

// Registry exposes the engine's read-only clause registry.
func (e *Engine) Registry() *Registry { return e.reg }
