package httpx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	domainauth "github.com/target/boxoffice/internal/domain/auth"
	"github.com/target/boxoffice/internal/service"
)

// DefaultLoginPath is where unauthenticated browsers are sent.
const DefaultLoginPath = "/auth/login"

// Authorizer answers the identity questions the guard asks. *service.AuthService implements it.
type Authorizer interface {
	State(ctx context.Context, scope string) service.AuthState
	HasRole(ctx context.Context, scope, role string) bool
}

var _ Authorizer = (*service.AuthService)(nil)

// GuardPolicy describes what a route requires.
type GuardPolicy struct {
	RequireAuth bool
	// RequiredRole is compared through AuthService.HasRole; empty means any role.
	RequiredRole string
	// Fallback is served instead of the default 403 page when the role check fails.
	Fallback http.Handler
}

// AuthCheck is the outcome of looking up the request's session.
type AuthCheck struct {
	Pending       bool
	Authenticated bool
	HasRole       bool
	Profile       *domainauth.Profile
}

// Decision is what the guard does with a request.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionLoading
	DecisionRedirect
	DecisionForbidden
)

func (d Decision) String() string {
	switch d {
	case DecisionLoading:
		return "loading"
	case DecisionRedirect:
		return "redirect"
	case DecisionForbidden:
		return "forbidden"
	default:
		return "allow"
	}
}

// Decide maps an auth check and a policy to a decision. Rules apply in order:
// a pending check shows the loading view, a missing session redirects to login,
// a missing role is forbidden, anything else is allowed.
func Decide(check AuthCheck, policy GuardPolicy) Decision {
	switch {
	case check.Pending:
		return DecisionLoading
	case policy.RequireAuth && !check.Authenticated:
		return DecisionRedirect
	case policy.RequiredRole != "" && !check.HasRole:
		return DecisionForbidden
	default:
		return DecisionAllow
	}
}

// Guard gates handlers on the session of the request's scope.
type Guard struct {
	Auth Authorizer
	// LoginPath defaults to DefaultLoginPath.
	LoginPath string
	// LoadingAfter is how long a GET waits on the session lookup before the loading
	// page is served instead. Zero waits indefinitely.
	LoadingAfter time.Duration
	Pages        StatusPageRenderer
	Logger       *slog.Logger
}

func (g *Guard) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

func (g *Guard) loginPath() string {
	if g.LoginPath == "" {
		return DefaultLoginPath
	}
	return g.LoginPath
}

// Require returns a middleware enforcing policy.
// For API requests every outcome is JSON; browsers get pages and redirects.
func (g *Guard) Require(policy GuardPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			check := g.resolve(r, policy)
			switch Decide(check, policy) {
			case DecisionLoading:
				g.loading(w, r)
			case DecisionRedirect:
				g.redirect(w, r)
			case DecisionForbidden:
				g.forbidden(w, r.WithContext(SetProfileInContext(r.Context(), check.Profile)), policy)
			case DecisionAllow:
				next.ServeHTTP(w, r.WithContext(SetProfileInContext(r.Context(), check.Profile)))
			}
		})
	}
}

// resolve looks up the session. Safe requests give up after LoadingAfter and report a
// pending check; the lookup keeps running and its result is dropped.
func (g *Guard) resolve(r *http.Request, policy GuardPolicy) AuthCheck {
	scope := ScopeFromContext(r.Context())
	if scope == "" {
		return AuthCheck{}
	}
	safe := r.Method == http.MethodGet || r.Method == http.MethodHead
	if g.LoadingAfter <= 0 || !safe {
		return g.check(r.Context(), scope, policy)
	}

	done := make(chan AuthCheck, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				g.logger().ErrorContext(r.Context(), "session lookup panicked", "error", fmt.Sprint(rec))
				done <- AuthCheck{}
			}
		}()
		done <- g.check(r.Context(), scope, policy)
	}()

	timer := time.NewTimer(g.LoadingAfter)
	defer timer.Stop()
	select {
	case c := <-done:
		return c
	case <-timer.C:
		g.logger().DebugContext(r.Context(), "session lookup still pending", "path", r.URL.Path)
		return AuthCheck{Pending: true}
	}
}

func (g *Guard) check(ctx context.Context, scope string, policy GuardPolicy) AuthCheck {
	state := g.Auth.State(ctx, scope)
	c := AuthCheck{Authenticated: state.Authenticated(), Profile: state.Profile}
	if policy.RequiredRole != "" && c.Authenticated {
		c.HasRole = g.Auth.HasRole(ctx, scope, policy.RequiredRole)
	}
	return c
}

func (g *Guard) loading(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	if !IsBrowserRequest(r) {
		w.Header().Set("Retry-After", "1")
		WriteJSON(w, http.StatusAccepted, map[string]string{"status": "loading"})
		return
	}
	w.Header().Set("Refresh", "1; url="+safeRedirectPath(r.URL.RequestURI()))
	writeStatusPage(w, r, g.Pages, StatusPage{
		Status:  http.StatusAccepted,
		Title:   "Loading…",
		Heading: "Checking your session…",
		Message: "This page will refresh automatically.",
		Loading: true,
	})
}

func (g *Guard) redirect(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteJSON(w, http.StatusUnauthorized, map[string]string{
			"error":     "authentication_required",
			"message":   "authentication required",
			"login_url": loginURL(g.loginPath(), redirectPathForRequest(r)),
		})
		return
	}
	redirectToLogin(w, r, g.loginPath())
}

func (g *Guard) forbidden(w http.ResponseWriter, r *http.Request, policy GuardPolicy) {
	if policy.Fallback != nil {
		policy.Fallback.ServeHTTP(w, r)
		return
	}
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusForbidden,
			ErrCode: "insufficient_permissions",
			Err:     errors.New("insufficient permissions"),
		})
		return
	}
	writeStatusPage(w, r, g.Pages, StatusPage{
		Status:   http.StatusForbidden,
		Title:    "Access denied",
		Heading:  "403 Access Denied",
		Message:  "You don't have permission to view this page.",
		ShowBack: true,
		HomeURL:  "/",
	})
}

// redirectToLogin redirects browser requests to the login page with the current location as redirect_uri.
func redirectToLogin(w http.ResponseWriter, r *http.Request, loginPath string) {
	target := loginURL(loginPath, redirectPathForRequest(r))
	navigate(w, r, target)
}

func loginURL(loginPath, redirect string) string {
	if redirect == "" {
		redirect = "/"
	}
	return loginPath + "?redirect_uri=" + url.QueryEscape(redirect)
}

func redirectPathForRequest(r *http.Request) string {
	if IsHTMX(r) {
		if current := safeRedirectFromURL(r.Header.Get("Hx-Current-Url")); current != "" {
			return current
		}
	}
	return safeRedirectPath(r.URL.RequestURI())
}

func safeRedirectFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	// Reject scheme-relative or host-only references.
	if u.Host != "" && !u.IsAbs() {
		return ""
	}
	// For absolute URLs keep only the path and query so redirects stay within the app.
	if u.IsAbs() {
		return safeRedirectPath(u.RequestURI())
	}
	return safeRedirectPath(raw)
}
