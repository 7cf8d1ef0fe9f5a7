package commands

type Registry struct {
	defs []Definition
}

func NewRegistry(defs []Definition) *Registry {
	return &Registry{defs: defs}
}

func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

func (r *Registry) Find(name string) (Definition, bool) {
	for _, d := range r.defs {
		if d.Name == name || contains(d.Aliases, name) {
			return d, true
		}
	}
	return Definition{}, false
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
