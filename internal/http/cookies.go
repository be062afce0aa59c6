package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultScopeCookieName names the cookie that carries a browser's session scope.
const DefaultScopeCookieName = "boxoffice_sid"

// ScopeCookie configures the browser scope cookie. The cookie holds only an opaque
// uuid; the token and profile it names stay server-side.
type ScopeCookie struct {
	Name   string
	Domain string
}

func (c ScopeCookie) name() string {
	if c.Name == "" {
		return DefaultScopeCookieName
	}
	return c.Name
}

// Read returns the scope named by the request's cookie, or "" when it is missing or malformed.
func (c ScopeCookie) Read(r *http.Request) string {
	ck, err := r.Cookie(c.name())
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(ck.Value)
	if err != nil {
		return ""
	}
	return id.String()
}

// NewScope mints an unused scope id.
func NewScope() string { return uuid.NewString() }

// Issue sets scope as the browser's scope cookie.
func (c ScopeCookie) Issue(w http.ResponseWriter, r *http.Request, scope string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    scope,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the scope cookie, mirroring the attributes used when it was set.
func (c ScopeCookie) Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// WithScope returns a middleware that puts the cookie's scope into the request context.
// Anonymous requests pass through without a scope; one is only minted at login.
func WithScope(c ScopeCookie) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if scope := c.Read(r); scope != "" {
				r = r.WithContext(SetScopeInContext(r.Context(), scope))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// isSecureRequest reports whether the request arrived over TLS, directly or via a proxy.
func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	for _, proto := range strings.Split(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}
