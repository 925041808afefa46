package query

// Schema references, comparisons, arithmetic, boolean logic and the remaining
// miscellaneous forms.

// Database references a child database by name.
func Database(name interface{}) Expr { return fn1("database", name) }

// Index references an index by name.
func Index(name interface{}) Expr { return fn1("index", name) }

// Class references a class by name.
func Class(name interface{}) Expr { return fn1("class", name) }

// Function references a stored function by name.
func Function(name interface{}) Expr { return fn1("function", name) }

// Classes denotes the set of all classes, optionally scoped to a database.
func Classes(scope ...interface{}) Expr { return nativeSet("Classes", "classes", scope) }

// Databases denotes the set of all child databases.
func Databases(scope ...interface{}) Expr { return nativeSet("Databases", "databases", scope) }

// Indexes denotes the set of all indexes.
func Indexes(scope ...interface{}) Expr { return nativeSet("Indexes", "indexes", scope) }

// Functions denotes the set of all stored functions.
func Functions(scope ...interface{}) Expr { return nativeSet("Functions", "functions", scope) }

// Keys denotes the set of all keys.
func Keys(scope ...interface{}) Expr { return nativeSet("Keys", "keys", scope) }

func nativeSet(name, tag string, scope []interface{}) Expr {
	if err := checkArity(name, 0, 1, len(scope)); err != nil {
		return invalidExpr{err: err}
	}
	if len(scope) == 1 {
		return fn1(tag, scope[0])
	}
	return fn1(tag, Null())
}

// NewId reserves a fresh, globally unique document id.
func NewId() Expr {
	return fn1("new_id", Null())
}

// Equals tests all arguments for equivalence.
func Equals(args ...interface{}) Expr {
	return fn1("equals", varargs("Equals", 1, args))
}

// Contains reports whether a value exists at path inside in.
func Contains(path, in interface{}) Expr {
	return fn2("contains", path, "in", in)
}

// Select extracts the value at path inside from; Default supplies a fallback.
func Select(path, from interface{}, opts ...Optional) Expr {
	return fn2("select", path, "from", from, opts...)
}

// Arithmetic.

func Add(args ...interface{}) Expr      { return fn1("add", varargs("Add", 1, args)) }
func Subtract(args ...interface{}) Expr { return fn1("subtract", varargs("Subtract", 1, args)) }
func Multiply(args ...interface{}) Expr { return fn1("multiply", varargs("Multiply", 1, args)) }
func Divide(args ...interface{}) Expr   { return fn1("divide", varargs("Divide", 1, args)) }
func Modulo(args ...interface{}) Expr   { return fn1("modulo", varargs("Modulo", 1, args)) }

// Comparisons.

func LT(args ...interface{}) Expr  { return fn1("lt", varargs("LT", 1, args)) }
func LTE(args ...interface{}) Expr { return fn1("lte", varargs("LTE", 1, args)) }
func GT(args ...interface{}) Expr  { return fn1("gt", varargs("GT", 1, args)) }
func GTE(args ...interface{}) Expr { return fn1("gte", varargs("GTE", 1, args)) }

// Boolean logic.

func And(args ...interface{}) Expr { return fn1("and", varargs("And", 1, args)) }
func Or(args ...interface{}) Expr  { return fn1("or", varargs("Or", 1, args)) }
func Not(b interface{}) Expr       { return fn1("not", b) }

// Strings.

// Concat joins a list of strings; accepts Separator.
func Concat(list interface{}, opts ...Optional) Expr {
	return fn1("concat", list, opts...)
}

// Casefold normalizes a string for case-insensitive comparison.
func Casefold(str interface{}) Expr {
	return fn1("casefold", str)
}

// Time and date.

// Time constructs a timestamp from an ISO-8601 UTC string.
func Time(str interface{}) Expr {
	return fn1("time", str)
}

// Epoch constructs a timestamp from an offset since 1970-01-01 in the given
// unit ("second", "millisecond", "microsecond", "nanosecond").
func Epoch(num, unit interface{}) Expr {
	return fn2("epoch", num, "unit", unit)
}

// Date constructs a date from a YYYY-MM-DD string.
func Date(str interface{}) Expr {
	return fn1("date", str)
}

// Now is the transaction's own timestamp.
func Now() Expr {
	return fn1("now", Null())
}
