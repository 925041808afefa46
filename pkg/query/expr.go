package query

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/reefdb/reefdb-go/pkg/values"
)

// Expr is one node of a query expression tree. Nodes are immutable once
// constructed; trees may freely share children.
type Expr interface {
	json.Marshaler
	exprNode()
}

// Obj is a convenience alias for user-supplied document data. Wrap escapes it
// under the "object" tag so it is never mistaken for a function form.
type Obj map[string]interface{}

// Arr is a convenience alias for user-supplied sequences.
type Arr []interface{}

// Atom is a bare identifier: it renders unquoted and marshals as its name.
// Used where the wire format expects an identifier rather than a string.
type Atom string

func (Atom) exprNode() {}

func (a Atom) MarshalJSON() ([]byte, error) { return json.Marshal(string(a)) }

// literalExpr holds nil or a host scalar, passed through as-is.
type literalExpr struct {
	value interface{}
}

func (literalExpr) exprNode() {}

func (e literalExpr) MarshalJSON() ([]byte, error) { return json.Marshal(e.value) }

// valueExpr is a Value Model leaf embedded in an expression tree.
type valueExpr struct {
	v values.Value
}

func (valueExpr) exprNode() {}

func (e valueExpr) MarshalJSON() ([]byte, error) { return e.v.MarshalJSON() }

// arrayExpr is an ordered sequence of child nodes.
type arrayExpr struct {
	elems []Expr
}

func (arrayExpr) exprNode() {}

func (e arrayExpr) MarshalJSON() ([]byte, error) { return json.Marshal(e.elems) }

// objectExpr is escaped user data. On the wire it is wrapped under the
// "object" key, which is what keeps a user map with a key like "map" from
// being read back as a function call.
type objectExpr struct {
	fields map[string]Expr
}

func (objectExpr) exprNode() {}

func (e objectExpr) MarshalJSON() ([]byte, error) {
	contents, err := marshalFields(e.fields)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"object":`)
	buf.Write(contents)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// mapExpr is an unescaped keyed mapping, used for positions where the wire
// format expects a bare object, e.g. let bindings.
type mapExpr struct {
	fields map[string]Expr
}

func (mapExpr) exprNode() {}

func (e mapExpr) MarshalJSON() ([]byte, error) { return marshalFields(e.fields) }

// fnExpr is a tagged function form. Entry order is preserved both on the wire
// and when rendering.
type fnExpr struct {
	entries []fnEntry
}

type fnEntry struct {
	key string
	arg Expr
}

func (fnExpr) exprNode() {}

func (e fnExpr) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range e.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		arg, err := entry.arg.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(arg)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// invalidExpr carries a construction or arity error. The error surfaces when
// the expression is encoded or executed.
type invalidExpr struct {
	err error
}

func (invalidExpr) exprNode() {}

func (e invalidExpr) MarshalJSON() ([]byte, error) { return nil, e.err }

// RawJSON embeds a pre-encoded wire fragment verbatim. Escape hatch for tools
// that already hold the wire form of a query.
func RawJSON(data []byte) Expr {
	return rawExpr(data)
}

type rawExpr json.RawMessage

func (rawExpr) exprNode() {}

func (e rawExpr) MarshalJSON() ([]byte, error) { return json.RawMessage(e).MarshalJSON() }

func marshalFields(fields map[string]Expr) ([]byte, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := fields[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func fn(entries ...fnEntry) Expr {
	for _, e := range entries {
		if bad, ok := e.arg.(invalidExpr); ok {
			return bad
		}
	}
	return fnExpr{entries: entries}
}

func fn1(k1 string, v1 interface{}, opts ...Optional) Expr {
	return applyOptionals(fn(fnEntry{k1, Wrap(v1)}), opts)
}

func fn2(k1 string, v1 interface{}, k2 string, v2 interface{}, opts ...Optional) Expr {
	return applyOptionals(fn(fnEntry{k1, Wrap(v1)}, fnEntry{k2, Wrap(v2)}), opts)
}

func fn3(k1 string, v1 interface{}, k2 string, v2 interface{}, k3 string, v3 interface{}, opts ...Optional) Expr {
	return applyOptionals(fn(fnEntry{k1, Wrap(v1)}, fnEntry{k2, Wrap(v2)}, fnEntry{k3, Wrap(v3)}), opts)
}

func fn4(k1 string, v1 interface{}, k2 string, v2 interface{}, k3 string, v3 interface{}, k4 string, v4 interface{}, opts ...Optional) Expr {
	return applyOptionals(fn(
		fnEntry{k1, Wrap(v1)},
		fnEntry{k2, Wrap(v2)},
		fnEntry{k3, Wrap(v3)},
		fnEntry{k4, Wrap(v4)},
	), opts)
}

// Optional appends an optional parameter to a function form, e.g. the size of
// a paginate or the separator of a concat.
type Optional func(fnExpr) fnExpr

func applyOptionals(e Expr, opts []Optional) Expr {
	if len(opts) == 0 {
		return e
	}
	f, ok := e.(fnExpr)
	if !ok {
		return e
	}
	for _, opt := range opts {
		f = opt(f)
	}
	return f
}

func optional(key string, value interface{}) Optional {
	return func(f fnExpr) fnExpr {
		entries := make([]fnEntry, len(f.entries), len(f.entries)+1)
		copy(entries, f.entries)
		return fnExpr{entries: append(entries, fnEntry{key, Wrap(value)})}
	}
}

// TS pins a query or page read to a snapshot timestamp.
func TS(timestamp interface{}) Optional { return optional("ts", timestamp) }

// After resumes a paginate from a server-issued cursor.
func After(cursor interface{}) Optional { return optional("after", cursor) }

// Before pages backwards from a server-issued cursor.
func Before(cursor interface{}) Optional { return optional("before", cursor) }

// Size sets the page size of a paginate.
func Size(size interface{}) Optional { return optional("size", size) }

// Events includes the event stream of a set in a paginate.
func Events(events interface{}) Optional { return optional("events", events) }

// Sources includes the source sets in a paginate.
func Sources(sources interface{}) Optional { return optional("sources", sources) }

// Separator sets the separator of a concat.
func Separator(sep interface{}) Optional { return optional("separator", sep) }

// Default supplies the fallback of a select.
func Default(value interface{}) Optional { return optional("default", value) }
