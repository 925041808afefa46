package query

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/reefdb/reefdb-go/pkg/values"
)

// Wrap converts an arbitrary host value into an expression node. It is total
// and pure: every input yields a node, already-wrapped inputs come back
// unchanged, and user-supplied keyed data is escaped so it can never be
// confused with a function form.
func Wrap(value interface{}) Expr {
	switch t := value.(type) {
	case nil:
		return literalExpr{nil}
	case Expr:
		return t
	case values.Value:
		return valueExpr{t}
	case []byte:
		return valueExpr{values.BytesV(t)}
	case time.Time:
		return valueExpr{values.TimeFromTime(t)}
	case Obj:
		return wrapObj(map[string]interface{}(t))
	case Arr:
		return wrapSlice(reflect.ValueOf([]interface{}(t)))
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return literalExpr{t}
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return wrapSlice(rv)
	case reflect.Map:
		return wrapMap(rv)
	case reflect.Struct:
		return wrapStruct(rv)
	case reflect.Ptr:
		if rv.IsNil() {
			return literalExpr{nil}
		}
		return Wrap(rv.Elem().Interface())
	case reflect.Func:
		return wrapCallable(rv)
	default:
		return literalExpr{value}
	}
}

// WrapValues applies Wrap to every value of a keyed mapping, preserving keys.
// It does not add the "object" escape; callers building their own tagged form
// (e.g. let bindings) rely on that.
func WrapValues(fields map[string]interface{}) map[string]Expr {
	wrapped := make(map[string]Expr, len(fields))
	for k, v := range fields {
		wrapped[k] = Wrap(v)
	}
	return wrapped
}

func wrapObj(fields map[string]interface{}) Expr {
	return objectExpr{fields: WrapValues(fields)}
}

func wrapSlice(rv reflect.Value) Expr {
	elems := make([]Expr, rv.Len())
	for i := range elems {
		elems[i] = Wrap(rv.Index(i).Interface())
	}
	return arrayExpr{elems: elems}
}

func wrapMap(rv reflect.Value) Expr {
	if rv.Type().Key().Kind() != reflect.String {
		return invalidExpr{err: values.InvalidValueError{
			Reason: fmt.Sprintf("map keys must be strings, got %s", rv.Type().Key()),
		}}
	}
	fields := make(map[string]Expr, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		fields[iter.Key().String()] = Wrap(iter.Value().Interface())
	}
	return objectExpr{fields: fields}
}

// wrapStruct treats a struct as user document data, honoring json field tags
// the way encoding/json does for names and omission.
func wrapStruct(rv reflect.Value) Expr {
	rt := rv.Type()
	fields := make(map[string]Expr, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.PkgPath != "" {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
		}
		fields[name] = Wrap(rv.Field(i).Interface())
	}
	return objectExpr{fields: fields}
}

// wrapCallable is the convenience layer over the explicit Lambda form: a
// function whose parameters can receive Expr values is invoked with fresh
// variable references and its result becomes the lambda body. Parameter names
// are generated, since Go cannot introspect declared names.
func wrapCallable(fn reflect.Value) Expr {
	ft := fn.Type()
	if ft.NumIn() == 0 {
		return invalidExpr{err: values.InvalidValueError{
			Reason: "lambda callable must declare at least one parameter",
		}}
	}
	if ft.IsVariadic() || ft.NumOut() != 1 {
		return invalidExpr{err: values.InvalidValueError{
			Reason: "lambda callable must be non-variadic and return a single value",
		}}
	}

	exprType := reflect.TypeOf((*Expr)(nil)).Elem()
	names := make([]interface{}, ft.NumIn())
	args := make([]reflect.Value, ft.NumIn())
	for i := range args {
		in := ft.In(i)
		if !exprType.AssignableTo(in) {
			return invalidExpr{err: values.InvalidValueError{
				Reason: fmt.Sprintf("lambda callable parameter %d cannot receive an expression", i),
			}}
		}
		name := fmt.Sprintf("auto%d", i)
		names[i] = name
		args[i] = reflect.ValueOf(Var(name)).Convert(in)
	}

	body := fn.Call(args)[0].Interface()
	if len(names) == 1 {
		return Lambda(names[0], body)
	}
	return Lambda(names, body)
}
