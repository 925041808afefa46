package query

// Basic expression forms: references, control flow, lambdas and bindings.

// Ref builds a reference from a path, or from a class expression and a
// document id when called with two arguments.
func Ref(args ...interface{}) Expr {
	if err := checkArity("Ref", 1, 2, len(args)); err != nil {
		return invalidExpr{err: err}
	}
	if len(args) == 2 {
		return fn2("ref", args[0], "id", args[1])
	}
	return fn1("ref", args[0])
}

// Null is the explicit null literal. Distinct in the in-memory model from an
// argument that was simply never supplied.
func Null() Expr {
	return literalExpr{nil}
}

// Abort fails the whole query with the given message.
func Abort(msg interface{}) Expr {
	return fn1("abort", msg)
}

// Do evaluates the given expressions in order and returns the last result.
func Do(exprs ...interface{}) Expr {
	return fn1("do", varargs("Do", 1, exprs))
}

// If evaluates then or els depending on cond.
func If(cond, then, els interface{}) Expr {
	return fn3("if", cond, "then", then, "else", els)
}

// Lambda builds an anonymous function. Params is a single name or an ordered
// sequence of names; body refers to them through Var.
func Lambda(params, body interface{}) Expr {
	return fn2("lambda", params, "expr", body)
}

// Let binds names to values inside in. Binding values are wrapped but not
// escaped: the let form owns the mapping.
func Let(bindings Obj, in interface{}) Expr {
	return fn2("let", mapExpr{fields: WrapValues(bindings)}, "in", in)
}

// Var references a lambda parameter or let binding by name.
func Var(name string) Expr {
	return fn1("var", name)
}

// Call invokes a stored function by ref.
func Call(ref interface{}, args ...interface{}) Expr {
	return fn2("call", ref, "arguments", varargs("Call", 0, args))
}

// Query wraps a lambda so it is stored as an executable query rather than
// evaluated inline.
func Query(lambda interface{}) Expr {
	return fn1("query", lambda)
}

// At executes expr at a point in time.
func At(timestamp, expr interface{}) Expr {
	return fn2("at", timestamp, "expr", expr)
}
