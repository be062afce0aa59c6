package httpx

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeCookie_IssueAndRead(t *testing.T) {
	c := ScopeCookie{Domain: "boxoffice.example.com"}
	scope := NewScope()

	rec := httptest.NewRecorder()
	c.Issue(rec, httptest.NewRequest(http.MethodGet, "/", nil), scope)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	ck := cookies[0]
	assert.Equal(t, DefaultScopeCookieName, ck.Name)
	assert.Equal(t, scope, ck.Value)
	assert.Equal(t, "/", ck.Path)
	assert.Equal(t, "boxoffice.example.com", ck.Domain)
	assert.True(t, ck.HttpOnly)
	assert.False(t, ck.Secure)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ck)
	assert.Equal(t, scope, c.Read(req))
}

func TestScopeCookie_ReadRejectsMalformed(t *testing.T) {
	c := ScopeCookie{}
	for _, value := range []string{"", "not-a-uuid", "../../etc/passwd"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: DefaultScopeCookieName, Value: value})
		assert.Empty(t, c.Read(req), value)
	}
	assert.Empty(t, c.Read(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestScopeCookie_CustomName(t *testing.T) {
	c := ScopeCookie{Name: "sid"}
	rec := httptest.NewRecorder()
	c.Issue(rec, httptest.NewRequest(http.MethodGet, "/", nil), NewScope())
	assert.Equal(t, "sid", rec.Result().Cookies()[0].Name)
}

func TestScopeCookie_SecureBehindTLS(t *testing.T) {
	c := ScopeCookie{}

	direct := httptest.NewRequest(http.MethodGet, "/", nil)
	direct.TLS = &tls.ConnectionState{}
	proxied := httptest.NewRequest(http.MethodGet, "/", nil)
	proxied.Header.Set("X-Forwarded-Proto", "http, HTTPS")

	for name, req := range map[string]*http.Request{"tls": direct, "proxy": proxied} {
		rec := httptest.NewRecorder()
		c.Issue(rec, req, NewScope())
		assert.True(t, rec.Result().Cookies()[0].Secure, name)
	}
}

func TestScopeCookie_Clear(t *testing.T) {
	rec := httptest.NewRecorder()
	ScopeCookie{}.Clear(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	ck := rec.Result().Cookies()[0]
	assert.Equal(t, DefaultScopeCookieName, ck.Name)
	assert.Empty(t, ck.Value)
	assert.Less(t, ck.MaxAge, 0)
}

func TestWithScope(t *testing.T) {
	scope := NewScope()
	var seen string
	h := WithScope(ScopeCookie{})(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = ScopeFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultScopeCookieName, Value: scope})
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, scope, seen)

	// Anonymous requests are not given a scope.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, seen)
	assert.Empty(t, rec.Result().Cookies())
}
