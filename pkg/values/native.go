package values

// The well-known top-level refs are process-wide singletons: decode hands out
// the same instance every time so the renderer can name them canonically by
// identity. The table is built once and never mutated.

var (
	NativeClasses   = &RefV{ID: "classes"}
	NativeIndexes   = &RefV{ID: "indexes"}
	NativeDatabases = &RefV{ID: "databases"}
	NativeFunctions = &RefV{ID: "functions"}
	NativeKeys      = &RefV{ID: "keys"}
)

var nativeRefs = map[string]*RefV{
	"classes":   NativeClasses,
	"indexes":   NativeIndexes,
	"databases": NativeDatabases,
	"functions": NativeFunctions,
	"keys":      NativeKeys,
}

// NativeRef looks up a well-known top-level ref by name.
func NativeRef(name string) (*RefV, bool) {
	r, ok := nativeRefs[name]
	return r, ok
}

// NativeName reports the canonical name of r if it is one of the shared
// singleton instances. Comparison is by identity, not by id string.
func NativeName(r *RefV) (string, bool) {
	for name, native := range nativeRefs {
		if native == r {
			return name, true
		}
	}
	return "", false
}
