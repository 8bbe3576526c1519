package visitor

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const maxIDLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Middleware resolves the visitor id and stores it in the request context.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := o.fromRequest(r)
			if id == "" {
				id = uuid.New().String()
				http.SetCookie(w, &http.Cookie{
					Name:     o.cookieName,
					Value:    o.sign(id),
					Path:     "/",
					MaxAge:   int(o.maxAge.Seconds()),
					Secure:   o.secure,
					HttpOnly: true,
					SameSite: o.sameSite,
				})
			}
			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

func (o *options) fromRequest(r *http.Request) string {
	if id := r.Header.Get(Header); isValidID(id) {
		return id
	}
	c, err := r.Cookie(o.cookieName)
	if err != nil {
		return ""
	}
	id, err := o.verify(c.Value)
	if err != nil || !isValidID(id) {
		return ""
	}
	return id
}

func isValidID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	return validID.MatchString(id)
}

func (o *options) sign(id string) string {
	if len(o.secrets) == 0 {
		return id
	}
	return id + "|" + mac(o.secrets[0], id)
}

func (o *options) verify(value string) (string, error) {
	if len(o.secrets) == 0 {
		return value, nil
	}
	id, sig, ok := strings.Cut(value, "|")
	if !ok {
		return "", ErrInvalidFormat
	}
	for _, secret := range o.secrets {
		if subtle.ConstantTimeCompare([]byte(sig), []byte(mac(secret, id))) == 1 {
			return id, nil
		}
	}
	return "", ErrInvalidSignature
}

func mac(secret, value string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
