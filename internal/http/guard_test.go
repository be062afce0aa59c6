package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/boxoffice/internal/domain/auth"
	"github.com/target/boxoffice/internal/service"
)

type fakeAuthorizer struct {
	profiles map[string]*domainauth.Profile
	delay    time.Duration
}

func (f *fakeAuthorizer) State(ctx context.Context, scope string) service.AuthState {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
		}
	}
	p, ok := f.profiles[scope]
	if !ok {
		return service.AuthState{State: domainauth.StateUnauthenticated}
	}
	return service.AuthState{State: domainauth.StateAuthenticated, Profile: p}
}

func (f *fakeAuthorizer) HasRole(_ context.Context, scope, role string) bool {
	return service.ProfileHasRole(f.profiles[scope], role)
}

const (
	adminScope = "11111111-1111-4111-8111-111111111111"
	staffScope = "22222222-2222-4222-8222-222222222222"
)

func newTestGuard(t *testing.T) *Guard {
	t.Helper()
	return &Guard{Auth: &fakeAuthorizer{profiles: map[string]*domainauth.Profile{
		adminScope: {Name: "Ada", Roles: []string{"admin"}},
		staffScope: {Name: "Sam", Roles: []string{"staff"}},
	}}}
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if p, ok := ProfileFromContext(r.Context()); ok {
		w.Header().Set("X-Profile", p.Name)
	}
	w.WriteHeader(http.StatusOK)
})

func scoped(r *http.Request, scope string) *http.Request {
	if scope == "" {
		return r
	}
	return r.WithContext(SetScopeInContext(r.Context(), scope))
}

func TestDecide(t *testing.T) {
	auth := GuardPolicy{RequireAuth: true}
	admin := GuardPolicy{RequireAuth: true, RequiredRole: "admin"}
	tests := []struct {
		name   string
		check  AuthCheck
		policy GuardPolicy
		want   Decision
	}{
		{name: "pending wins over everything", check: AuthCheck{Pending: true}, policy: admin, want: DecisionLoading},
		{name: "anonymous on public route", check: AuthCheck{}, policy: GuardPolicy{}, want: DecisionAllow},
		{name: "anonymous on guarded route", check: AuthCheck{}, policy: auth, want: DecisionRedirect},
		{name: "anonymous on admin route", check: AuthCheck{}, policy: admin, want: DecisionRedirect},
		{name: "signed in", check: AuthCheck{Authenticated: true}, policy: auth, want: DecisionAllow},
		{name: "missing role", check: AuthCheck{Authenticated: true}, policy: admin, want: DecisionForbidden},
		{name: "has role", check: AuthCheck{Authenticated: true, HasRole: true}, policy: admin, want: DecisionAllow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.check, tt.policy)
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
}

func TestGuard_BrowserRedirectKeepsLocation(t *testing.T) {
	g := newTestGuard(t)
	h := g.Require(GuardPolicy{RequireAuth: true})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/events?page=2", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login?redirect_uri=%2Fevents%3Fpage%3D2", rec.Header().Get("Location"))
}

func TestGuard_HTMXRedirectUsesCurrentURL(t *testing.T) {
	g := newTestGuard(t)
	h := g.Require(GuardPolicy{RequireAuth: true})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/events/evt-1", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Current-URL", "https://admin.example.com/venues?page=3")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/auth/login?redirect_uri=%2Fvenues%3Fpage%3D3", rec.Header().Get("HX-Redirect"))
}

func TestGuard_APIUnauthenticated(t *testing.T) {
	g := newTestGuard(t)
	h := g.Require(GuardPolicy{RequireAuth: true})(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "authentication_required", body["error"])
	assert.Equal(t, "/auth/login?redirect_uri=%2Fapi%2Fevents", body["login_url"])
}

func TestGuard_ForbiddenPageOffersGoBack(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	g := newTestGuard(t)
	g.Pages = tr
	h := g.Require(GuardPolicy{RequireAuth: true, RequiredRole: "admin"})(okHandler)

	req := scoped(httptest.NewRequest(http.MethodGet, "/events/new", nil), staffScope)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := rec.Body.String()
	assert.True(t, ContainsAll(body, []string{"403 Access Denied", "history.back()"}), body)
}

func TestGuard_ForbiddenWithoutRendererFallsBackToText(t *testing.T) {
	g := newTestGuard(t)
	h := g.Require(GuardPolicy{RequireAuth: true, RequiredRole: "admin"})(okHandler)

	req := scoped(httptest.NewRequest(http.MethodGet, "/events/new", nil), staffScope)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "403 Access Denied")
}

func TestGuard_APIForbidden(t *testing.T) {
	g := newTestGuard(t)
	h := g.Require(GuardPolicy{RequireAuth: true, RequiredRole: "admin"})(okHandler)

	req := scoped(httptest.NewRequest(http.MethodDelete, "/api/events/evt-1", nil), staffScope)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient_permissions")
}

func TestGuard_Fallback(t *testing.T) {
	g := newTestGuard(t)
	fallback := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := g.Require(GuardPolicy{RequireAuth: true, RequiredRole: "admin", Fallback: fallback})(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, scoped(httptest.NewRequest(http.MethodGet, "/events/new", nil), staffScope))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestGuard_AllowsAndExposesProfile(t *testing.T) {
	g := newTestGuard(t)
	h := g.Require(GuardPolicy{RequireAuth: true, RequiredRole: "ADMIN"})(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, scoped(httptest.NewRequest(http.MethodGet, "/events/new", nil), adminScope))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ada", rec.Header().Get("X-Profile"))
}

func TestGuard_AdminFlagWidensAdminOnly(t *testing.T) {
	flagged := "33333333-3333-4333-8333-333333333333"
	g := &Guard{Auth: &fakeAuthorizer{profiles: map[string]*domainauth.Profile{
		flagged: {Name: "Flo", Roles: []string{"staff"}, AdminFlags: []string{"isAdmin"}},
	}}}

	adminRoute := g.Require(GuardPolicy{RequireAuth: true, RequiredRole: "admin"})(okHandler)
	organizerRoute := g.Require(GuardPolicy{RequireAuth: true, RequiredRole: "organizer"})(okHandler)

	rec := httptest.NewRecorder()
	adminRoute.ServeHTTP(rec, scoped(httptest.NewRequest(http.MethodGet, "/api/x", nil), flagged))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	organizerRoute.ServeHTTP(rec, scoped(httptest.NewRequest(http.MethodGet, "/api/x", nil), flagged))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGuard_LoadingWhileLookupPending(t *testing.T) {
	g := newTestGuard(t)
	g.Auth.(*fakeAuthorizer).delay = 500 * time.Millisecond
	g.LoadingAfter = 10 * time.Millisecond
	h := g.Require(GuardPolicy{RequireAuth: true})(okHandler)

	t.Run("browser", func(t *testing.T) {
		req := scoped(httptest.NewRequest(http.MethodGet, "/tickets", nil), adminScope)
		req.Header.Set("Accept", "text/html")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "1; url=/tickets", rec.Header().Get("Refresh"))
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	})

	t.Run("api", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, scoped(httptest.NewRequest(http.MethodGet, "/api/tickets", nil), adminScope))

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
		assert.JSONEq(t, `{"status":"loading"}`, rec.Body.String())
	})

	t.Run("mutations wait", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, scoped(httptest.NewRequest(http.MethodPost, "/api/events", nil), adminScope))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestGuard_FastLookupSkipsLoading(t *testing.T) {
	g := newTestGuard(t)
	g.LoadingAfter = time.Second
	h := g.Require(GuardPolicy{RequireAuth: true})(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, scoped(httptest.NewRequest(http.MethodGet, "/tickets", nil), adminScope))
	assert.Equal(t, http.StatusOK, rec.Code)
}
