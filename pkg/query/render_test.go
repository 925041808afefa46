package query

import (
	"testing"

	"github.com/reefdb/reefdb-go/pkg/values"
)

func TestRender(t *testing.T) {
	cases := []struct {
		name string
		expr Expr
		want string
	}{
		{
			"single parameter lambda",
			Lambda("x", Var("x")),
			`Lambda("x", Var("x"))`,
		},
		{
			"parameter lists keep brackets, variadic bodies drop them",
			Lambda(Arr{"x", "y"}, Union(Var("x"), Var("y"))),
			`Lambda(["x", "y"], Union(Var("x"), Var("y")))`,
		},
		{
			"variadic form drops list brackets",
			Add(1, 2, 3),
			`Add(1, 2, 3)`,
		},
		{
			"single variadic argument stays bare",
			Add(1),
			`Add(1)`,
		},
		{
			"non-variadic sequences keep brackets",
			Lambda(Arr{"a", "b"}, Var("a")),
			`Lambda(["a", "b"], Var("a"))`,
		},
		{
			"renamed comparison forms",
			LT(1, 2),
			`LT(1, 2)`,
		},
		{
			"snake case tags become camel case names",
			IsNonEmpty(Arr{1}),
			`IsNonEmpty([1])`,
		},
		{
			"multi word tags",
			CreateClass(Obj{"name": "frogs"}),
			`CreateClass({name: "frogs"})`,
		},
		{
			"escaped objects render without the escape",
			Wrap(Obj{"b": 2, "a": 1}),
			`{a: 1, b: 2}`,
		},
		{
			"null literal",
			Null(),
			`null`,
		},
		{
			"paginate with options",
			Paginate(Match(Index("all_frogs")), Size(10), After("tok")),
			`Paginate(Match(Index("all_frogs")), 10, "tok")`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Render(c.expr); got != c.want {
				t.Errorf("got %s, want %s", got, c.want)
			}
		})
	}
}

func TestRenderValues(t *testing.T) {
	frogs := &values.RefV{ID: "frogs", Class: values.NativeClasses}

	cases := []struct {
		name string
		v    values.Value
		want string
	}{
		{"native set", values.NativeClasses, `Classes()`},
		{"ref scoped to a native set", frogs, `Class("frogs")`},
		{"document ref", &values.RefV{ID: "123", Class: frogs}, `Ref(Class("frogs"), "123")`},
		{"bare ref", &values.RefV{ID: "ping"}, `Ref("ping")`},
		{"timestamp", values.TimeV{TS: "1970-01-01T00:00:00Z"}, `Time("1970-01-01T00:00:00Z")`},
		{"date", values.DateV{Date: "1970-01-01"}, `Date("1970-01-01")`},
		{"bytes", values.BytesV{0x1, 0x2}, `Bytes("AQI=")`},
		{"set ref", values.SetRefV{Parameters: values.ObjectV{"match": values.StringV("x")}}, `SetRef({match: "x"})`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Render(Wrap(c.v)); got != c.want {
				t.Errorf("got %s, want %s", got, c.want)
			}
		})
	}
}

// Rendering a variadic form must read the same whether the arguments arrived
// one by one or as a wrapped sequence.
func TestRenderVariadicSymmetry(t *testing.T) {
	spread := Render(Union(Match(Index("a")), Match(Index("b"))))
	if spread != `Union(Match(Index("a")), Match(Index("b")))` {
		t.Errorf("unexpected rendering: %s", spread)
	}
}
