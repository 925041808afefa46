package query

// Collection forms. The lambda argument accepts the explicit Lambda form, a
// stored query, or a Go callable (see Wrap).

// Map applies lambda to every element of coll.
func Map(coll, lambda interface{}) Expr {
	return fn2("map", lambda, "collection", coll)
}

// Foreach applies lambda to every element of coll for its effects, returning
// the original collection.
func Foreach(coll, lambda interface{}) Expr {
	return fn2("foreach", lambda, "collection", coll)
}

// Filter keeps the elements of coll for which lambda returns true.
func Filter(coll, lambda interface{}) Expr {
	return fn2("filter", lambda, "collection", coll)
}

// Take returns the first num elements of coll.
func Take(num, coll interface{}) Expr {
	return fn2("take", num, "collection", coll)
}

// Drop returns coll without its first num elements.
func Drop(num, coll interface{}) Expr {
	return fn2("drop", num, "collection", coll)
}

// Prepend adds elems before coll.
func Prepend(elems, coll interface{}) Expr {
	return fn2("prepend", elems, "collection", coll)
}

// Append adds elems after coll.
func Append(elems, coll interface{}) Expr {
	return fn2("append", elems, "collection", coll)
}

func IsEmpty(coll interface{}) Expr {
	return fn1("is_empty", coll)
}

func IsNonEmpty(coll interface{}) Expr {
	return fn1("is_nonempty", coll)
}
