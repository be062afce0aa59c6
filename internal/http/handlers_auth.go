package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/target/boxoffice/internal/adapters/tokeninfo"
	domainauth "github.com/target/boxoffice/internal/domain/auth"
	apperrors "github.com/target/boxoffice/internal/errors"
	"github.com/target/boxoffice/internal/service"
)

// AuthServiceInterface defines the auth operations the handlers need.
type AuthServiceInterface interface {
	Login(ctx context.Context, scope string, creds domainauth.Credentials) (*service.LoginResult, error)
	Logout(ctx context.Context, scope string) error
	State(ctx context.Context, scope string) service.AuthState
	Token(ctx context.Context, scope string) string
}

var _ AuthServiceInterface = (*service.AuthService)(nil)

// WizardResetter drops a scope's wizard draft.
type WizardResetter interface {
	Reset(ctx context.Context, scope string) error
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc    AuthServiceInterface
	Cookie ScopeCookie
	// Wizard is optional; when set, logout discards the scope's draft too.
	Wizard WizardResetter
	// LoginPath is where the sign-in page is mounted; defaults to DefaultLoginPath.
	LoginPath string
	// T renders the login page; JSON clients never need it.
	T      *TemplateRenderer
	Logger *slog.Logger
	Now    func() time.Time
}

func (h *AuthHandlers) loginPath() string {
	if h == nil || h.LoginPath == "" {
		return DefaultLoginPath
	}
	return h.LoginPath
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *AuthHandlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// LoginForm renders the sign-in page, or sends signed-in users on to redirect_uri.
// GET <login path>?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))
	if scope := ScopeFromContext(r.Context()); scope != "" && h.Svc.State(r.Context(), scope).Authenticated() {
		http.Redirect(w, r, redirectURI, http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, loginPageData{RedirectURI: redirectURI})
}

type loginRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	RedirectURI string `json:"redirect_uri,omitempty"`
}

// Login authenticates against the backend under a fresh scope.
// POST <login path> or /api/auth/login with a form or a JSON body.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	jsonBody := strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
	var req loginRequest
	if jsonBody {
		if !DecodeJSON(w, r, &req) {
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
			return
		}
		req = loginRequest{
			Email:       r.PostFormValue("email"),
			Password:    r.PostFormValue("password"),
			RedirectURI: r.PostFormValue("redirect_uri"),
		}
	}
	redirectURI := safeRedirectPath(req.RedirectURI)

	// A new scope per login keeps a previous identity's data out of reach.
	scope := NewScope()
	result, err := h.Svc.Login(r.Context(), scope, domainauth.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		h.logger().InfoContext(r.Context(), "login failed", "error", err, "code", apperrors.GetCode(err))
		if jsonBody || !IsBrowserRequest(r) {
			writeAppError(w, err)
			return
		}
		data := loginPageData{RedirectURI: redirectURI, Email: req.Email}
		if !IsHTMX(r) {
			// htmx only swaps 2xx responses.
			data.Status = StatusForError(err)
		}
		if field := apperrors.GetField(err); field != "" && apperrors.IsValidation(err) {
			data.Errors = map[string]string{field: apperrors.Message(err)}
			data.ErrorMessage = errMsgFixBelow
		} else {
			data.ErrorMessage = userMessage(err, "Sign in failed. Please try again.")
		}
		h.renderLogin(w, r, data)
		return
	}

	if old := ScopeFromContext(r.Context()); old != "" {
		if err := h.Svc.Logout(r.Context(), old); err != nil {
			h.logger().WarnContext(r.Context(), "clear previous session", "error", err)
		}
	}
	h.Cookie.Issue(w, r, scope)

	if jsonBody || !IsBrowserRequest(r) {
		WriteJSON(w, http.StatusOK, map[string]any{
			"authenticated": true,
			"user":          userJSON(&result.Session.Profile),
			"redirect_to":   redirectURI,
		})
		return
	}
	navigate(w, r, redirectURI)
}

// Logout clears the scope's session and wizard draft and expires the cookie.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if scope := ScopeFromContext(r.Context()); scope != "" {
		if err := h.Svc.Logout(r.Context(), scope); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
		if h.Wizard != nil {
			if err := h.Wizard.Reset(r.Context(), scope); err != nil {
				h.logger().WarnContext(r.Context(), "discard wizard draft", "error", err)
			}
		}
	}
	h.Cookie.Clear(w, r)

	target := loginURL(h.loginPath(), "/")
	isAJAX := strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.HasPrefix(r.URL.Path, "/api/") ||
		strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
	switch {
	case isAJAX:
		WriteJSON(w, http.StatusOK, map[string]string{"status": "success", "redirect_to": target})
	default:
		navigate(w, r, target)
	}
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	scope := ScopeFromContext(r.Context())
	if scope == "" {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	state := h.Svc.State(r.Context(), scope)
	if !state.Authenticated() {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	body := map[string]any{
		"authenticated": true,
		"user":          userJSON(state.Profile),
	}
	// Token claims are informational; the backend decides validity.
	if info := tokeninfo.Inspect(h.Svc.Token(r.Context(), scope)); info.JWT {
		tok := map[string]any{"subject": info.Subject, "issuer": info.Issuer}
		if !info.ExpiresAt.IsZero() {
			tok["expires_at"] = info.ExpiresAt
			tok["expired"] = info.Expired(h.now())
		}
		body["token"] = tok
	}
	WriteJSON(w, http.StatusOK, body)
}

func userJSON(p *domainauth.Profile) map[string]any {
	if p == nil {
		return nil
	}
	roles := p.Roles
	if roles == nil {
		roles = []string{}
	}
	return map[string]any{
		"name":     p.Name,
		"email":    p.Email,
		"role":     p.Role(),
		"roles":    roles,
		"is_admin": service.ProfileHasRole(p, domainauth.RoleAdmin.String()),
	}
}

type loginPageData struct {
	Title        string
	Error        bool
	ErrorMessage string
	CSRFToken    string
	Action       string
	RedirectURI  string
	Email        string
	Errors       map[string]string
	Status       int
}

func (h *AuthHandlers) renderLogin(w http.ResponseWriter, r *http.Request, data loginPageData) {
	data.Title = "Sign in · Box Office"
	data.CSRFToken = GetCSRFToken(r)
	data.Action = h.loginPath()
	data.Error = data.ErrorMessage != ""
	if data.Errors == nil {
		data.Errors = map[string]string{}
	}
	if h.T == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "templates_unavailable",
			Err:     errors.New("login page unavailable"),
		})
		return
	}
	if data.Status != 0 && data.Status != http.StatusOK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(data.Status)
	}
	if err := h.T.RenderLogin(w, r, data); err != nil {
		h.logger().ErrorContext(r.Context(), "render login page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	// Browsers treat "//host" and "/\host" as scheme-relative.
	if strings.HasPrefix(candidate, "//") || strings.HasPrefix(candidate, "/\\") {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
