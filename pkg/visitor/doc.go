// Package visitor assigns every HTTP client a stable id used to key its
// navigation session.
//
// The id is read from the X-Visitor-ID header, then from the visitor
// cookie. A missing or malformed id is replaced by a new UUID, written
// back in both the response header and the cookie. With a secret
// configured the cookie value is HMAC signed and unsigned values are
// rejected; several secrets may be given to rotate keys.
//
//	r := chi.NewRouter()
//	r.Use(visitor.Middleware(visitor.WithSecrets(secret)))
//	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
//		id := visitor.FromContext(r.Context())
//		...
//	})
package visitor
