package category

import "sync"

// Registry holds one Dictionary per categorical field type, created lazily
// on first request.
type Registry struct {
	mu    sync.Mutex
	dicts map[string]*Dictionary
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{dicts: make(map[string]*Dictionary)}
}

// Dictionary returns the dictionary for the field type name, creating it if needed.
// Every call with the same name returns the same dictionary.
func (r *Registry) Dictionary(name string) *Dictionary {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.dicts[name]
	if !ok {
		d = NewDictionary(name)
		r.dicts[name] = d
	}

	return d
}

// Names returns the field type names that have a dictionary.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.dicts))
	for name := range r.dicts {
		names = append(names, name)
	}

	return names
}

// Reset drops every dictionary. Dictionaries handed out earlier keep their
// codes but are no longer reachable from the registry.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.dicts = make(map[string]*Dictionary)
}
