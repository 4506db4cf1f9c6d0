package material

import (
	"fmt"
	"sync"
)

// The shader-type table is process-wide state with an explicit
// init-once lifecycle: types are registered lazily on first use and
// duplicate registration of an identical source is a no-op. A
// re-registration that would change an existing type's source is an
// error, never a silent replacement.
var (
	typesMu sync.Mutex
	types   = make(map[string]ShaderSource)
)

// EnsureRegistered idempotently installs a shader type in the
// process-wide table. Registering the same source twice succeeds;
// registering a different source under an existing name fails.
func EnsureRegistered(src ShaderSource) error {
	if src.Name == "" {
		return fmt.Errorf("shader source has no type name")
	}

	typesMu.Lock()
	defer typesMu.Unlock()

	if existing, ok := types[src.Name]; ok {
		if existing.Fragment == src.Fragment {
			return nil
		}
		return fmt.Errorf("shader type %q already registered with a different source", src.Name)
	}
	types[src.Name] = src
	return nil
}

// RegisteredSource looks up a shader type by name.
func RegisteredSource(name string) (ShaderSource, bool) {
	typesMu.Lock()
	defer typesMu.Unlock()
	src, ok := types[name]
	return src, ok
}

// RegisteredTypeNames returns the names currently in the table, for
// diagnostics.
func RegisteredTypeNames() []string {
	typesMu.Lock()
	defer typesMu.Unlock()
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	return names
}
