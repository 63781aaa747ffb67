package toolfile

import (
	"slices"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Record is one registered tool: the name, the definition string handed to
// LLM plumbing, and the callable that executes it.
type Record struct {
	Name       string
	Definition string
	Runner     Runner

	// params is the compiled function.parameters schema, set only when
	// argument validation is enabled and the definition carries one.
	params *jsonschema.Schema
}

// Registry maps tool names to records. It does no locking: the core is
// single-threaded, and a scan builds a fresh Registry which the facade swaps
// in whole.
type Registry struct {
	records map[string]Record
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[string]Record)}
}

// Put stores a record under its name, overwriting any earlier record with the
// same name. Later writes win.
func (r *Registry) Put(rec Record) {
	r.records[rec.Name] = rec
}

// Get returns the record registered under name.
func (r *Registry) Get(name string) (Record, bool) {
	rec, ok := r.records[name]
	return rec, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.records[name]
	return ok
}

// Definitions returns tool name to definition for every registered tool.
// Runners are never part of the exported view.
func (r *Registry) Definitions() map[string]string {
	out := make(map[string]string, len(r.records))
	for name, rec := range r.records {
		out[name] = rec.Definition
	}
	return out
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.records))
	for name := range r.records {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.records) }
