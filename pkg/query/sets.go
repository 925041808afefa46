package query

// Set forms. These all denote sets; wrap them in Paginate to materialize.

// Match denotes the set of documents an index covers, optionally narrowed by
// terms.
func Match(index interface{}, terms ...interface{}) Expr {
	if len(terms) == 0 {
		return fn1("match", index)
	}
	return fn2("match", index, "terms", varargs("Match", 1, terms))
}

// MatchTerm denotes the documents an index covers for exactly one term.
func MatchTerm(index, term interface{}) Expr {
	return fn2("match", index, "terms", term)
}

// Union denotes the set present in any of the given sets.
func Union(sets ...interface{}) Expr {
	return fn1("union", varargs("Union", 1, sets))
}

// Intersection denotes the set present in all of the given sets.
func Intersection(sets ...interface{}) Expr {
	return fn1("intersection", varargs("Intersection", 1, sets))
}

// Difference denotes the set present in the first set and none of the rest.
func Difference(sets ...interface{}) Expr {
	return fn1("difference", varargs("Difference", 1, sets))
}

// Distinct denotes the set with duplicates removed.
func Distinct(set interface{}) Expr {
	return fn1("distinct", set)
}

// Join maps every element of source through with, which must produce a set.
func Join(source, with interface{}) Expr {
	return fn2("join", source, "with", with)
}
