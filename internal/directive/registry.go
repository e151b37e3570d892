package directive

import (
	"fmt"
	"sync"
)

// Entry is one named directive in registry order.
type Entry struct {
	Name  string
	Value Value
}

// Registry is an ordered mapping of directive name to value.
// Overriding a name keeps its original position.
type Registry struct {
	mu     sync.Mutex
	order  []string
	values map[string]Value
	frozen bool
}

// NewRegistry creates an empty directive registry.
func NewRegistry() *Registry {
	return &Registry{
		order:  make([]string, 0, 16),
		values: make(map[string]Value),
	}
}

// Defaults returns the startup directive set applied before any user input.
func Defaults() []Entry {
	return []Entry{
		{Name: "devel", Value: Bool(true)},
		{Name: "browser", Value: Bool(true)},
		{Name: "es5", Value: Bool(true)},
		{Name: "evil", Value: Bool(false)},
		{Name: "maxerr", Value: Number(50)},
		{Name: "indent", Value: Number(4)},
	}
}

// NewDefaultRegistry creates a registry seeded with Defaults.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, e := range Defaults() {
		r.Set(e.Name, e.Value)
	}
	return r
}

// Set assigns a value to name. Last assignment wins.
// Set panics if the registry has been frozen.
func (r *Registry) Set(name string, v Value) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		panic(fmt.Sprintf("directive: Set(%q) on frozen registry", name))
	}
	if _, ok := r.values[name]; !ok {
		r.order = append(r.order, name)
	}
	r.values[name] = v
}

// Apply sets every entry in order.
func (r *Registry) Apply(entries []Entry) {
	for _, e := range entries {
		r.Set(e.Name, e.Value)
	}
}

// Get returns the value for name.
func (r *Registry) Get(name string) (Value, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.values[name]
	return v, ok
}

// Len returns the number of distinct directive names.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Export returns a copy of all entries in registry order.
func (r *Registry) Export() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Entry{Name: name, Value: r.values[name]})
	}
	return out
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Frozen reports whether Freeze was called.
func (r *Registry) Frozen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frozen
}
