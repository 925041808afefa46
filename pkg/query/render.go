package query

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/reefdb/reefdb-go/pkg/values"
)

// Render turns an expression tree back into readable function-call notation.
// Purely advisory: deterministic, side-effect free, and never a substitute
// for the wire encoding.
func Render(e Expr) string {
	return render(e, "")
}

// variadicTags are the function forms whose wire shape accepts either a bare
// value or a list. A sequence rendered directly under one of them drops its
// brackets to match what a human would write.
var variadicTags = map[string]bool{
	"union":        true,
	"intersection": true,
	"difference":   true,
	"equals":       true,
	"add":          true,
	"subtract":     true,
	"multiply":     true,
	"divide":       true,
	"modulo":       true,
	"lt":           true,
	"lte":          true,
	"gt":           true,
	"gte":          true,
	"and":          true,
	"or":           true,
	"do":           true,
	"call":         true,
}

// renamedTags overrides the default snake_case to PascalCase conversion where
// the capitalized form would be ambiguous or awkward.
var renamedTags = map[string]string{
	"lt":          "LT",
	"lte":         "LTE",
	"gt":          "GT",
	"gte":         "GTE",
	"is_nonempty": "IsNonEmpty",
}

func render(e Expr, caller string) string {
	switch t := e.(type) {
	case literalExpr:
		return renderLiteral(t.value)
	case Atom:
		return string(t)
	case valueExpr:
		return renderValue(t.v)
	case arrayExpr:
		parts := make([]string, len(t.elems))
		for i, el := range t.elems {
			parts[i] = render(el, "")
		}
		joined := strings.Join(parts, ", ")
		if variadicTags[caller] {
			return joined
		}
		return "[" + joined + "]"
	case objectExpr:
		return renderFields(t.fields)
	case mapExpr:
		return renderFields(t.fields)
	case fnExpr:
		tag := t.entries[0].key
		parts := make([]string, len(t.entries))
		for i, entry := range t.entries {
			parts[i] = render(entry.arg, tag)
		}
		return tagToName(tag) + "(" + strings.Join(parts, ", ") + ")"
	case rawExpr:
		return string(t)
	case invalidExpr:
		return fmt.Sprintf("invalid(%q)", t.err.Error())
	default:
		return fmt.Sprintf("%v", e)
	}
}

func renderLiteral(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func renderFields(fields map[string]Expr) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + render(fields[k], "")
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func renderValue(v values.Value) string {
	switch t := v.(type) {
	case values.NullV:
		return "null"
	case values.StringV:
		return strconv.Quote(string(t))
	case values.LongV:
		return strconv.FormatInt(int64(t), 10)
	case values.DoubleV:
		return strconv.FormatFloat(float64(t), 'g', -1, 64)
	case values.BooleanV:
		return strconv.FormatBool(bool(t))
	case values.ArrayV:
		parts := make([]string, len(t))
		for i, el := range t {
			parts[i] = renderValue(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case values.ObjectV:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + renderValue(t[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *values.RefV:
		return renderRef(t)
	case values.SetRefV:
		return "SetRef(" + renderValue(t.Parameters) + ")"
	case values.TimeV:
		return "Time(" + strconv.Quote(t.TS) + ")"
	case values.DateV:
		return "Date(" + strconv.Quote(t.Date) + ")"
	case values.BytesV:
		return "Bytes(" + strconv.Quote(base64.StdEncoding.EncodeToString(t)) + ")"
	case values.QueryV:
		return "Query(" + renderValue(t.Lambda) + ")"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// singularNatives maps a native set name to the constructor that scopes a
// single member, e.g. Class("frogs") for a ref inside classes.
var singularNatives = map[string]string{
	"classes":   "Class",
	"indexes":   "Index",
	"databases": "Database",
	"functions": "Function",
	"keys":      "Key",
}

func renderRef(r *values.RefV) string {
	if name, ok := values.NativeName(r); ok {
		return tagToName(name) + "()"
	}
	if r.Class != nil {
		if parent, ok := values.NativeName(r.Class); ok {
			if singular, found := singularNatives[parent]; found {
				return singular + "(" + strconv.Quote(r.ID) + ")"
			}
		}
		return "Ref(" + renderRef(r.Class) + ", " + strconv.Quote(r.ID) + ")"
	}
	return "Ref(" + strconv.Quote(r.ID) + ")"
}

func tagToName(tag string) string {
	if name, ok := renamedTags[tag]; ok {
		return name
	}
	segments := strings.Split(tag, "_")
	for i, s := range segments {
		if s == "" {
			continue
		}
		segments[i] = strings.ToUpper(s[:1]) + s[1:]
	}
	return strings.Join(segments, "")
}
