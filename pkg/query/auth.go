package query

// Authentication forms.

// Login creates a session secret for the document a ref points at. The
// params carry the password.
func Login(ref, params interface{}) Expr {
	return fn2("login", ref, "params", params)
}

// Logout invalidates the current session secret, or all of the document's
// secrets when all is true.
func Logout(all interface{}) Expr {
	return fn1("logout", all)
}

// Identify checks a password against the document's credentials without
// creating a session.
func Identify(ref, password interface{}) Expr {
	return fn2("identify", ref, "password", password)
}

// Identity returns the ref the current secret is bound to.
func Identity() Expr {
	return fn1("identity", Null())
}

// HasIdentity reports whether the current secret is bound to a document.
func HasIdentity() Expr {
	return fn1("has_identity", Null())
}
