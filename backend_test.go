// backend_test.go
package remylang

import (
	"errors"
	"reflect"
	"testing"
)

type stubBackend struct {
	name string
	fail bool
}

func (b *stubBackend) Name() string { return b.name }

func (b *stubBackend) Compile(stmts []Stmt) ([]byte, error) {
	if b.fail {
		return nil, errors.New("unsupported statement")
	}
	return []byte{0x7f}, nil
}

func Test_Backend_RegisterAndLookup(t *testing.T) {
	defer func() { backends = map[string]Backend{} }()

	RegisterBackend(&stubBackend{name: "b"})
	RegisterBackend(&stubBackend{name: "a"})

	if _, ok := LookupBackend("a"); !ok {
		t.Fatalf("backend a not found")
	}
	if _, ok := LookupBackend("missing"); ok {
		t.Fatalf("lookup of unregistered backend succeeded")
	}
	if got := BackendNames(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("names not sorted: %v", got)
	}
}

func Test_Backend_ExplicitFailure(t *testing.T) {
	b := &stubBackend{name: "x", fail: true}
	if _, err := b.Compile(nil); err == nil {
		t.Fatalf("backend must fail explicitly on unsupported input")
	}
}
