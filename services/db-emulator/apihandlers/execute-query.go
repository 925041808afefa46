package apihandlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/reefdb/reefdb-go/pkg/values"
	"github.com/reefdb/reefdb-go/services/db-emulator/store"
)

// queryError carries the HTTP status and the error envelope entry a failing
// query should produce.
type queryError struct {
	status      int
	code        string
	description string
}

func (e queryError) Error() string {
	return e.code + ": " + e.description
}

func badRequest(code, format string, args ...interface{}) queryError {
	return queryError{status: http.StatusBadRequest, code: code, description: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...interface{}) queryError {
	return queryError{status: http.StatusNotFound, code: "instance not found", description: fmt.Sprintf(format, args...)}
}

func (h *HttpEndpoints) executeQuery(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("invalid expression", err.Error()))
		return
	}

	expr, err := values.FromJSON(body)
	if err != nil {
		slog.Error("failed to decode query body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, errorEnvelope("invalid expression", err.Error()))
		return
	}

	resource, err := h.eval(expr)
	if err != nil {
		var qErr queryError
		if e, ok := err.(queryError); ok {
			qErr = e
		} else {
			qErr = badRequest("invalid expression", "%s", err.Error())
		}
		slog.Debug("query rejected", slog.String("error", qErr.Error()))
		c.JSON(qErr.status, errorEnvelope(qErr.code, qErr.description))
		return
	}

	c.JSON(http.StatusOK, gin.H{"resource": resource})
}

func (h *HttpEndpoints) eval(v values.Value) (values.Value, error) {
	switch t := v.(type) {
	case values.ObjectV:
		return h.evalObject(t)
	case values.ArrayV:
		out := make(values.ArrayV, len(t))
		for i, el := range t {
			res, err := h.eval(el)
			if err != nil {
				return nil, err
			}
			out[i] = res
		}
		return out, nil
	default:
		return v, nil
	}
}

func (h *HttpEndpoints) evalObject(obj values.ObjectV) (values.Value, error) {
	if len(obj) == 1 {
		if inner, ok := obj["object"]; ok {
			return h.evalEscaped(inner)
		}
	}

	switch {
	case has(obj, "create_class"):
		return h.evalCreateClass(obj)
	case has(obj, "create_index"):
		return h.evalCreateIndex(obj)
	case has(obj, "create"):
		return h.evalCreate(obj)
	case has(obj, "get"):
		return h.evalGet(obj)
	case has(obj, "update"), has(obj, "replace"):
		return h.evalUpdate(obj)
	case has(obj, "delete"):
		return h.evalDelete(obj)
	case has(obj, "class"):
		return h.scopedRef(obj, "class", values.NativeClasses)
	case has(obj, "index"):
		return h.scopedRef(obj, "index", values.NativeIndexes)
	case has(obj, "database"):
		return h.scopedRef(obj, "database", values.NativeDatabases)
	case has(obj, "ref"):
		return h.evalRef(obj)
	case has(obj, "match"):
		return h.evalMatch(obj)
	case has(obj, "classes"):
		return values.SetRefV{Parameters: values.ObjectV{"classes": values.NullV{}}}, nil
	case has(obj, "indexes"):
		return values.SetRefV{Parameters: values.ObjectV{"indexes": values.NullV{}}}, nil
	case has(obj, "paginate"):
		return h.evalPaginate(obj)
	case has(obj, "login"):
		return h.evalLogin(obj)
	case has(obj, "new_id"):
		return values.StringV(uuid.NewString()), nil
	case has(obj, "now"):
		return values.TimeFromTime(time.Now()), nil
	default:
		return nil, badRequest("unsupported expression", "the emulator does not implement this form")
	}
}

func has(obj values.ObjectV, key string) bool {
	_, ok := obj[key]
	return ok
}

// evalEscaped handles the contents of an "object" form: the mapping itself is
// data, its values are still expressions.
func (h *HttpEndpoints) evalEscaped(v values.Value) (values.Value, error) {
	contents, ok := v.(values.ObjectV)
	if !ok {
		return h.eval(v)
	}
	out := make(values.ObjectV, len(contents))
	for k, el := range contents {
		res, err := h.eval(el)
		if err != nil {
			return nil, err
		}
		out[k] = res
	}
	return out, nil
}

func (h *HttpEndpoints) refArg(obj values.ObjectV, key string) (*values.RefV, error) {
	v, err := h.eval(obj[key])
	if err != nil {
		return nil, err
	}
	ref, ok := v.(*values.RefV)
	if !ok {
		return nil, badRequest("invalid argument", "%s must evaluate to a ref", key)
	}
	return ref, nil
}

func (h *HttpEndpoints) paramsArg(obj values.ObjectV) (values.ObjectV, error) {
	v, err := h.eval(obj["params"])
	if err != nil {
		return nil, err
	}
	params, ok := v.(values.ObjectV)
	if !ok {
		return nil, badRequest("invalid argument", "params must be an object")
	}
	return params, nil
}

// classNameOf expects a class ref, e.g. the result of evaluating
// {"class": "frogs"}.
func classNameOf(ref *values.RefV) (string, error) {
	if ref.Class != nil {
		if name, ok := values.NativeName(ref.Class); ok && name == "classes" {
			return ref.ID, nil
		}
	}
	return "", badRequest("invalid ref", "ref %q is not a class ref", ref.ID)
}

// classOf expects a document ref, i.e. a ref scoped to a class ref.
func classOf(ref *values.RefV) (string, error) {
	if ref.Class != nil {
		if _, err := classNameOf(ref.Class); err == nil {
			return ref.Class.ID, nil
		}
	}
	return "", badRequest("invalid ref", "ref %q is not scoped to a class", ref.ID)
}

func (h *HttpEndpoints) scopedRef(obj values.ObjectV, key string, parent *values.RefV) (values.Value, error) {
	name, ok := obj[key].(values.StringV)
	if !ok {
		return nil, badRequest("invalid argument", "%s name must be a string", key)
	}
	return &values.RefV{ID: string(name), Class: parent}, nil
}

func (h *HttpEndpoints) evalRef(obj values.ObjectV) (values.Value, error) {
	class, err := h.refArg(obj, "ref")
	if err != nil {
		return nil, err
	}
	id, ok := obj["id"].(values.StringV)
	if !ok {
		return nil, badRequest("invalid argument", "ref id must be a string")
	}
	return &values.RefV{ID: string(id), Class: class}, nil
}

func (h *HttpEndpoints) evalCreateClass(obj values.ObjectV) (values.Value, error) {
	params, err := h.classParams(obj, "create_class")
	if err != nil {
		return nil, err
	}
	name, ok := params["name"].(values.StringV)
	if !ok {
		return nil, badRequest("invalid argument", "class params must carry a name")
	}
	ref, err := h.db.CreateClass(string(name))
	if err != nil {
		return nil, badRequest("instance already exists", "%s", err.Error())
	}
	return values.ObjectV{"ref": ref, "name": name}, nil
}

func (h *HttpEndpoints) evalCreateIndex(obj values.ObjectV) (values.Value, error) {
	params, err := h.classParams(obj, "create_index")
	if err != nil {
		return nil, err
	}
	name, ok := params["name"].(values.StringV)
	if !ok {
		return nil, badRequest("invalid argument", "index params must carry a name")
	}
	source, ok := params["source"].(*values.RefV)
	if !ok {
		return nil, badRequest("invalid argument", "index params must carry a source class ref")
	}
	termField := ""
	if tf, ok := params["term_field"].(values.StringV); ok {
		termField = string(tf)
	}
	className, err := classNameOf(source)
	if err != nil {
		return nil, err
	}
	ref, err := h.db.CreateIndex(string(name), className, termField)
	if err != nil {
		return nil, badRequest("instance already exists", "%s", err.Error())
	}
	return values.ObjectV{"ref": ref, "name": name}, nil
}

// classParams evaluates the single argument of a schema-level create form.
func (h *HttpEndpoints) classParams(obj values.ObjectV, key string) (values.ObjectV, error) {
	v, err := h.eval(obj[key])
	if err != nil {
		return nil, err
	}
	params, ok := v.(values.ObjectV)
	if !ok {
		return nil, badRequest("invalid argument", "%s params must be an object", key)
	}
	return params, nil
}

func (h *HttpEndpoints) evalCreate(obj values.ObjectV) (values.Value, error) {
	classRef, err := h.refArg(obj, "create")
	if err != nil {
		return nil, err
	}
	className, err := classNameOf(classRef)
	if err != nil {
		return nil, err
	}

	params, err := h.paramsArg(obj)
	if err != nil {
		return nil, err
	}
	data, _ := params["data"].(values.ObjectV)

	doc, err := h.db.Create(className, data)
	if err != nil {
		return nil, notFound("%s", err.Error())
	}
	return documentValue(doc), nil
}

func (h *HttpEndpoints) evalGet(obj values.ObjectV) (values.Value, error) {
	ref, err := h.refArg(obj, "get")
	if err != nil {
		return nil, err
	}
	className, err := classOf(ref)
	if err != nil {
		return nil, err
	}
	doc, err := h.db.Get(className, ref.ID)
	if err != nil {
		return nil, notFound("%s", err.Error())
	}
	return documentValue(doc), nil
}

func (h *HttpEndpoints) evalUpdate(obj values.ObjectV) (values.Value, error) {
	key := "update"
	if !has(obj, key) {
		key = "replace"
	}
	ref, err := h.refArg(obj, key)
	if err != nil {
		return nil, err
	}
	className, err := classOf(ref)
	if err != nil {
		return nil, err
	}
	params, err := h.paramsArg(obj)
	if err != nil {
		return nil, err
	}
	data, _ := params["data"].(values.ObjectV)

	doc, err := h.db.Update(className, ref.ID, data)
	if err != nil {
		return nil, notFound("%s", err.Error())
	}
	return documentValue(doc), nil
}

func (h *HttpEndpoints) evalDelete(obj values.ObjectV) (values.Value, error) {
	ref, err := h.refArg(obj, "delete")
	if err != nil {
		return nil, err
	}
	className, err := classOf(ref)
	if err != nil {
		return nil, err
	}
	doc, err := h.db.Delete(className, ref.ID)
	if err != nil {
		return nil, notFound("%s", err.Error())
	}
	return documentValue(doc), nil
}

func (h *HttpEndpoints) evalMatch(obj values.ObjectV) (values.Value, error) {
	index, err := h.refArg(obj, "match")
	if err != nil {
		return nil, err
	}
	params := values.ObjectV{"match": index}
	if has(obj, "terms") {
		terms, err := h.eval(obj["terms"])
		if err != nil {
			return nil, err
		}
		params["terms"] = terms
	}
	return values.SetRefV{Parameters: params}, nil
}

func (h *HttpEndpoints) evalPaginate(obj values.ObjectV) (values.Value, error) {
	set, err := h.eval(obj["paginate"])
	if err != nil {
		return nil, err
	}
	setRef, ok := set.(values.SetRefV)
	if !ok {
		return nil, badRequest("invalid argument", "paginate target must be a set")
	}

	refs, err := h.resolveSet(setRef)
	if err != nil {
		return nil, err
	}

	size := 0
	if s, ok := obj["size"].(values.LongV); ok {
		size = int(s)
	}
	after := ""
	if a, ok := obj["after"].(values.StringV); ok {
		after = string(a)
	}
	before := ""
	if b, ok := obj["before"].(values.StringV); ok {
		before = string(b)
	}

	page, err := store.PageRefs(refs, size, after, before)
	if err != nil {
		return nil, badRequest("invalid cursor", "%s", err.Error())
	}

	data := make(values.ArrayV, len(page.Data))
	for i, ref := range page.Data {
		data[i] = ref
	}
	resource := values.ObjectV{"data": data}
	if page.Before != "" {
		resource["before"] = values.StringV(page.Before)
	}
	if page.After != "" {
		resource["after"] = values.StringV(page.After)
	}
	return resource, nil
}

func (h *HttpEndpoints) resolveSet(set values.SetRefV) ([]*values.RefV, error) {
	params := set.Parameters
	switch {
	case has(params, "match"):
		index, ok := params["match"].(*values.RefV)
		if !ok {
			return nil, badRequest("invalid argument", "match target must be an index ref")
		}
		refs, err := h.db.Match(index.ID, params["terms"])
		if err != nil {
			return nil, notFound("%s", err.Error())
		}
		return refs, nil
	case has(params, "classes"):
		return h.db.Classes(), nil
	case has(params, "indexes"):
		return h.db.Indexes(), nil
	default:
		return nil, badRequest("unsupported expression", "the emulator cannot resolve this set")
	}
}

func (h *HttpEndpoints) evalLogin(obj values.ObjectV) (values.Value, error) {
	ref, err := h.refArg(obj, "login")
	if err != nil {
		return nil, err
	}
	className, err := classOf(ref)
	if err != nil {
		return nil, err
	}
	params, err := h.paramsArg(obj)
	if err != nil {
		return nil, err
	}

	doc, err := h.db.Get(className, ref.ID)
	if err != nil {
		return nil, notFound("%s", err.Error())
	}
	if !reflect.DeepEqual(doc.Data["password"], params["password"]) {
		return nil, queryError{status: http.StatusUnauthorized, code: "authentication failed", description: "the password was invalid"}
	}

	token, err := generateSessionToken(ref.ID, className, time.Duration(h.sessionExpiresIn)*time.Second, h.sessionSignKey)
	if err != nil {
		return nil, queryError{status: http.StatusInternalServerError, code: "internal error", description: err.Error()}
	}
	return values.ObjectV{"ref": doc.Ref, "secret": values.StringV(token)}, nil
}

func documentValue(doc *store.Document) values.Value {
	resource := values.ObjectV{
		"ref": doc.Ref,
		"ts":  values.LongV(doc.TS),
	}
	if doc.Data != nil {
		resource["data"] = doc.Data
	}
	return resource
}
