package apihandlers

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reefdb/reefdb-go/pkg/client"
	"github.com/reefdb/reefdb-go/pkg/query"
	"github.com/reefdb/reefdb-go/pkg/values"
	"github.com/reefdb/reefdb-go/services/db-emulator/store"
)

func TestSessionTokens(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		token, err := generateSessionToken("doc-1", "users", time.Hour, "test-key")
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		claims, valid, err := validateSessionToken(token, "test-key")
		if err != nil || !valid {
			t.Fatalf("expected a valid token, got valid=%v err=%v", valid, err)
		}
		if claims.RefID != "doc-1" || claims.ClassID != "users" {
			t.Errorf("unexpected claims: %+v", claims)
		}
	})

	t.Run("wrong sign key", func(t *testing.T) {
		token, err := generateSessionToken("doc-1", "users", time.Hour, "test-key")
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		if _, valid, _ := validateSessionToken(token, "other-key"); valid {
			t.Error("token signed with a different key must not validate")
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := generateSessionToken("doc-1", "users", -time.Hour, "test-key")
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		if _, valid, _ := validateSessionToken(token, "test-key"); valid {
			t.Error("expired token must not validate")
		}
	})
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHTTPHandler([]string{"root-key"}, "test-sign-key", 3600, store.New())
	h.AddRoutes(&router.RouterGroup)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func mustQuery(t *testing.T, c *client.Client, expr query.Expr) values.Value {
	t.Helper()
	res, err := c.Query(context.Background(), expr)
	if err != nil {
		t.Fatalf("query failed: %s", err.Error())
	}
	return res
}

func TestQueryEndpoint(t *testing.T) {
	server := newTestServer(t)
	root := client.NewClient(client.Config{Endpoint: server.URL, Secret: "root-key"})

	t.Run("rejects missing secrets", func(t *testing.T) {
		anon := client.NewClient(client.Config{Endpoint: server.URL})
		_, err := anon.Query(context.Background(), query.Null())
		if !client.IsUnauthorized(err) {
			t.Errorf("expected unauthorized, got %v", err)
		}
	})

	t.Run("rejects wrong secrets", func(t *testing.T) {
		bad := client.NewClient(client.Config{Endpoint: server.URL, Secret: "nope"})
		_, err := bad.Query(context.Background(), query.Null())
		if !client.IsUnauthorized(err) {
			t.Errorf("expected unauthorized, got %v", err)
		}
	})

	t.Run("schema and document lifecycle", func(t *testing.T) {
		res := mustQuery(t, root, query.CreateClass(query.Obj{"name": "frogs"}))
		created, ok := res.(values.ObjectV)
		if !ok {
			t.Fatalf("expected an object, got %T", res)
		}
		classRef, ok := created["ref"].(*values.RefV)
		if !ok || classRef.ID != "frogs" {
			t.Fatalf("unexpected class ref: %v", created["ref"])
		}

		mustQuery(t, root, query.CreateIndex(query.Obj{
			"name":   "all_frogs",
			"source": query.Class("frogs"),
		}))

		res = mustQuery(t, root, query.Create(query.Class("frogs"), query.Obj{
			"data": query.Obj{"color": "green"},
		}))
		doc := res.(values.ObjectV)
		docRef, ok := doc["ref"].(*values.RefV)
		if !ok {
			t.Fatalf("unexpected document ref: %v", doc["ref"])
		}

		res = mustQuery(t, root, query.Get(docRef))
		fetched := res.(values.ObjectV)
		data, ok := fetched["data"].(values.ObjectV)
		if !ok || data["color"] != values.StringV("green") {
			t.Errorf("unexpected document data: %v", fetched["data"])
		}

		res = mustQuery(t, root, query.Update(docRef, query.Obj{
			"data": query.Obj{"size": 3},
		}))
		updated := res.(values.ObjectV)
		data = updated["data"].(values.ObjectV)
		if data["color"] != values.StringV("green") || data["size"] != values.LongV(3) {
			t.Errorf("unexpected merged data: %v", data)
		}

		mustQuery(t, root, query.Delete(docRef))
		_, err := root.Query(context.Background(), query.Get(docRef))
		if !client.IsNotFound(err) {
			t.Errorf("expected not found, got %v", err)
		}
	})

	t.Run("pagination over an index", func(t *testing.T) {
		mustQuery(t, root, query.CreateClass(query.Obj{"name": "newts"}))
		mustQuery(t, root, query.CreateIndex(query.Obj{
			"name":   "all_newts",
			"source": query.Class("newts"),
		}))
		for i := 0; i < 5; i++ {
			mustQuery(t, root, query.Create(query.Class("newts"), query.Obj{
				"data": query.Obj{"n": i},
			}))
		}

		pages := root.Paginate(query.Match(query.Index("all_newts")), client.WithSize(2))
		total := 0
		fetches := 0
		err := pages.Each(context.Background(), func(data values.ArrayV) error {
			total += len(data)
			fetches++
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		if total != 5 || fetches != 3 {
			t.Errorf("expected 5 refs over 3 pages, got %d over %d", total, fetches)
		}
	})

	t.Run("login issues a usable session token", func(t *testing.T) {
		mustQuery(t, root, query.CreateClass(query.Obj{"name": "users"}))
		res := mustQuery(t, root, query.Create(query.Class("users"), query.Obj{
			"data": query.Obj{"password": "hunter2"},
		}))
		userRef := res.(values.ObjectV)["ref"].(*values.RefV)

		res = mustQuery(t, root, query.Login(userRef, query.Obj{"password": "hunter2"}))
		secret, ok := res.(values.ObjectV)["secret"].(values.StringV)
		if !ok || secret == "" {
			t.Fatalf("expected a session secret, got %v", res)
		}

		session := client.NewClient(client.Config{Endpoint: server.URL, Secret: string(secret)})
		mustQuery(t, session, query.Get(userRef))

		_, err := root.Query(context.Background(), query.Login(userRef, query.Obj{"password": "wrong"}))
		if !client.IsUnauthorized(err) {
			t.Errorf("expected unauthorized, got %v", err)
		}
	})

	t.Run("unsupported forms are rejected", func(t *testing.T) {
		_, err := root.Query(context.Background(), query.Map(query.Arr{1}, query.Lambda("x", query.Var("x"))))
		if !client.IsBadRequest(err) {
			t.Errorf("expected bad request, got %v", err)
		}
	})
}
