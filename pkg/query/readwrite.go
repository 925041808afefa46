package query

// Read forms.

// Get retrieves the document a ref points at. Accepts TS to read a snapshot.
func Get(ref interface{}, opts ...Optional) Expr {
	return fn1("get", ref, opts...)
}

// Exists reports whether a ref has a document. Accepts TS.
func Exists(ref interface{}, opts ...Optional) Expr {
	return fn1("exists", ref, opts...)
}

// Paginate reads one page of the given set. Accepts Size, After, Before, TS,
// Events and Sources.
func Paginate(set interface{}, opts ...Optional) Expr {
	return fn1("paginate", set, opts...)
}

// KeyFromSecret retrieves the key document behind a secret.
func KeyFromSecret(secret interface{}) Expr {
	return fn1("key_from_secret", secret)
}

// Write forms.

// Create adds a document to the class a ref points at.
func Create(ref, params interface{}) Expr {
	return fn2("create", ref, "params", params)
}

func CreateClass(params interface{}) Expr {
	return fn1("create_class", params)
}

func CreateDatabase(params interface{}) Expr {
	return fn1("create_database", params)
}

func CreateIndex(params interface{}) Expr {
	return fn1("create_index", params)
}

func CreateFunction(params interface{}) Expr {
	return fn1("create_function", params)
}

func CreateKey(params interface{}) Expr {
	return fn1("create_key", params)
}

// Update merges params into the document a ref points at.
func Update(ref, params interface{}) Expr {
	return fn2("update", ref, "params", params)
}

// Replace swaps the document's data for params.
func Replace(ref, params interface{}) Expr {
	return fn2("replace", ref, "params", params)
}

// Delete removes the document a ref points at.
func Delete(ref interface{}) Expr {
	return fn1("delete", ref)
}

// Insert adds an event to a document's history.
func Insert(ref, timestamp, action, params interface{}) Expr {
	return fn4("insert", ref, "ts", timestamp, "action", action, "params", params)
}

// Remove deletes an event from a document's history.
func Remove(ref, timestamp, action interface{}) Expr {
	return fn3("remove", ref, "ts", timestamp, "action", action)
}
