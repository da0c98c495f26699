// backend.go: pluggable code-generation boundary
//
// A Backend is an alternate executor consuming the same statement sequence
// the interpreter does. Backends implement a strict subset of the language
// and must fail explicitly, never miscompile silently, on anything they do
// not support. The core ships none; external packages register theirs from
// an init function.
package remylang

import "sort"

// Backend compiles a statement sequence to an object-code artifact.
type Backend interface {
	// Name identifies the backend in the CLI's -backend flag.
	Name() string
	// Compile returns the emitted artifact, or an error describing the
	// first unsupported or invalid construct.
	Compile(stmts []Stmt) ([]byte, error)
}

var backends = map[string]Backend{}

// RegisterBackend makes a backend selectable by name. Registering the same
// name twice overwrites the earlier entry.
func RegisterBackend(b Backend) {
	backends[b.Name()] = b
}

// LookupBackend finds a registered backend by name.
func LookupBackend(name string) (Backend, bool) {
	b, ok := backends[name]
	return b, ok
}

// BackendNames lists registered backends, sorted.
func BackendNames() []string {
	names := make([]string, 0, len(backends))
	for n := range backends {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
