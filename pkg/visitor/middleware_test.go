package visitor_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wayfinder/pkg/visitor"
)

func serve(t *testing.T, mw func(http.Handler) http.Handler, req *http.Request) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var seen string
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = visitor.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return seen, rec
}

func visitorCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == visitor.DefaultCookieName {
			return c
		}
	}
	return nil
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("assigns a new id", func(t *testing.T) {
		t.Parallel()
		id, rec := serve(t, visitor.Middleware(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.NotEmpty(t, id)
		assert.Equal(t, id, rec.Header().Get(visitor.Header))

		c := visitorCookie(t, rec)
		require.NotNil(t, c)
		assert.Equal(t, id, c.Value)
		assert.True(t, c.HttpOnly)
	})

	t.Run("header wins", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(visitor.Header, "client-42")
		id, rec := serve(t, visitor.Middleware(), req)
		assert.Equal(t, "client-42", id)
		assert.Nil(t, visitorCookie(t, rec), "known visitors get no new cookie")
	})

	t.Run("cookie is reused", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: visitor.DefaultCookieName, Value: "abc_123"})
		id, _ := serve(t, visitor.Middleware(), req)
		assert.Equal(t, "abc_123", id)
	})

	t.Run("malformed id is replaced", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(visitor.Header, "bad id;drop")
		id, _ := serve(t, visitor.Middleware(), req)
		assert.NotEqual(t, "bad id;drop", id)
		assert.NotEmpty(t, id)

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(visitor.Header, strings.Repeat("a", 129))
		id, _ = serve(t, visitor.Middleware(), req)
		assert.Len(t, id, 36)
	})
}

func TestSignedCookie(t *testing.T) {
	t.Parallel()

	signed := visitor.Middleware(visitor.WithSecrets("old-secret", ""), visitor.WithCookieName("v"))
	_, rec := serve(t, signed, httptest.NewRequest(http.MethodGet, "/", nil))

	var c *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "v" {
			c = ck
		}
	}
	require.NotNil(t, c)
	require.Contains(t, c.Value, "|")
	want, _, _ := strings.Cut(c.Value, "|")

	t.Run("verifies with rotated secrets", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "v", Value: c.Value})
		id, _ := serve(t, visitor.Middleware(visitor.WithSecrets("new-secret", "old-secret"), visitor.WithCookieName("v")), req)
		assert.Equal(t, want, id)
	})

	t.Run("rejects tampered cookie", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "v", Value: "someone-else|" + strings.SplitN(c.Value, "|", 2)[1]})
		id, _ := serve(t, signed, req)
		assert.NotEqual(t, "someone-else", id)
	})

	t.Run("rejects unsigned cookie", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "v", Value: "plain"})
		id, _ := serve(t, signed, req)
		assert.NotEqual(t, "plain", id)
	})
}
