package query

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/reefdb/reefdb-go/pkg/values"
)

func mustMarshal(t *testing.T, e Expr) string {
	t.Helper()
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("unexpected encode error: %s", err.Error())
	}
	return string(b)
}

func TestWrap(t *testing.T) {
	t.Run("nil becomes the null literal", func(t *testing.T) {
		if got := mustMarshal(t, Wrap(nil)); got != "null" {
			t.Errorf("unexpected encoding: %s", got)
		}
	})

	t.Run("is idempotent on expressions", func(t *testing.T) {
		if Wrap(Atom("ts")) != Atom("ts") {
			t.Errorf("wrapping an expression must return it unchanged")
		}
		e := Lambda("x", Var("x"))
		if mustMarshal(t, Wrap(Wrap(e))) != mustMarshal(t, e) {
			t.Errorf("double wrapping must not change the encoding")
		}
	})

	t.Run("value model instances pass through", func(t *testing.T) {
		ref := &values.RefV{ID: "123"}
		if got := mustMarshal(t, Wrap(ref)); got != `{"@ref":{"id":"123"}}` {
			t.Errorf("unexpected encoding: %s", got)
		}
	})

	t.Run("scalars pass through", func(t *testing.T) {
		if got := mustMarshal(t, Wrap(42)); got != "42" {
			t.Errorf("unexpected encoding: %s", got)
		}
		if got := mustMarshal(t, Wrap("hi")); got != `"hi"` {
			t.Errorf("unexpected encoding: %s", got)
		}
	})

	t.Run("byte slices become byte-strings", func(t *testing.T) {
		if got := mustMarshal(t, Wrap(make([]byte, 4))); got != `{"@bytes":"AAAAAA=="}` {
			t.Errorf("unexpected encoding: %s", got)
		}
	})

	t.Run("sequences recurse in order", func(t *testing.T) {
		if got := mustMarshal(t, Wrap(Arr{1, "two", nil})); got != `[1,"two",null]` {
			t.Errorf("unexpected encoding: %s", got)
		}
	})

	t.Run("keyed mappings are escaped", func(t *testing.T) {
		// A user map whose key collides with a function tag must stay data.
		if got := mustMarshal(t, Wrap(Obj{"map": "value"})); got != `{"object":{"map":"value"}}` {
			t.Errorf("unexpected encoding: %s", got)
		}
	})

	t.Run("mappings recurse before escaping", func(t *testing.T) {
		got := mustMarshal(t, Wrap(Obj{"outer": Obj{"inner": 1}}))
		if got != `{"object":{"outer":{"object":{"inner":1}}}}` {
			t.Errorf("unexpected encoding: %s", got)
		}
	})

	t.Run("structs honour json tags", func(t *testing.T) {
		doc := struct {
			Name   string `json:"name"`
			Age    int    `json:"age"`
			Secret string `json:"-"`
		}{"kermit", 12, "hidden"}
		got := mustMarshal(t, Wrap(doc))
		if got != `{"object":{"age":12,"name":"kermit"}}` {
			t.Errorf("unexpected encoding: %s", got)
		}
	})

	t.Run("non-string map keys are rejected", func(t *testing.T) {
		_, err := json.Marshal(Wrap(map[int]string{1: "a"}))
		var invalid values.InvalidValueError
		if !errors.As(err, &invalid) {
			t.Errorf("expected InvalidValueError, got %v", err)
		}
	})
}

func TestWrapCallable(t *testing.T) {
	t.Run("builds a lambda with generated parameter names", func(t *testing.T) {
		got := mustMarshal(t, Wrap(func(x Expr) Expr { return x }))
		if got != `{"lambda":"auto0","expr":{"var":"auto0"}}` {
			t.Errorf("unexpected encoding: %s", got)
		}
	})

	t.Run("multiple parameters become a name list", func(t *testing.T) {
		got := mustMarshal(t, Wrap(func(a, b Expr) Expr { return Union(a, b) }))
		want := `{"lambda":["auto0","auto1"],"expr":{"union":[{"var":"auto0"},{"var":"auto1"}]}}`
		if got != want {
			t.Errorf("unexpected encoding: %s", got)
		}
	})

	t.Run("zero parameters fail", func(t *testing.T) {
		_, err := json.Marshal(Wrap(func() Expr { return Null() }))
		var invalid values.InvalidValueError
		if !errors.As(err, &invalid) {
			t.Errorf("expected InvalidValueError, got %v", err)
		}
	})
}

func TestWrapValues(t *testing.T) {
	wrapped := WrapValues(map[string]interface{}{"a": 1, "b": Obj{"c": 2}})
	if len(wrapped) != 2 {
		t.Fatalf("expected two entries, got %d", len(wrapped))
	}
	// Values are wrapped but the mapping itself is not escaped.
	if got := mustMarshal(t, wrapped["b"]); got != `{"object":{"c":2}}` {
		t.Errorf("unexpected encoding: %s", got)
	}
}
