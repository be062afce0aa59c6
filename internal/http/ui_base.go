package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"

	domainauth "github.com/target/boxoffice/internal/domain/auth"
	"github.com/target/boxoffice/internal/domain/model"
	"github.com/target/boxoffice/internal/http/ui/viewmodel"
	"github.com/target/boxoffice/internal/service"
)

const errMsgFixBelow = "Please fix the errors below."

// CatalogReader is the read side of the catalog the UI renders.
type CatalogReader interface {
	ListEvents(ctx context.Context, token string) model.Result[[]model.Event]
	GetEvent(ctx context.Context, token, id string) model.Result[*model.Event]
	ListVenues(ctx context.Context, token string) model.Result[[]model.Venue]
	GetVenue(ctx context.Context, token, id string) model.Result[*model.Venue]
	ListTickets(ctx context.Context, token string) model.Result[[]model.Ticket]
	Dashboard(ctx context.Context, token string) model.Result[service.DashboardStats]
	Backends() service.Backends
}

// WizardService drives the event creation wizard for one scope.
type WizardService interface {
	Draft(ctx context.Context, scope string) (*service.WizardDraft, error)
	SaveBasics(ctx context.Context, scope string, in service.WizardBasics) (*service.WizardDraft, error)
	SaveSchedule(ctx context.Context, scope string, in service.WizardSchedule) (*service.WizardDraft, error)
	SaveVenue(ctx context.Context, scope string, in service.WizardVenue) (*service.WizardDraft, error)
	SavePricing(ctx context.Context, scope string, in service.WizardPricing) (*service.WizardDraft, error)
	Submit(ctx context.Context, scope, token string) (model.Result[*model.Event], error)
	Reset(ctx context.Context, scope string) error
}

// TokenSource returns the bearer token stored for a scope.
type TokenSource interface {
	Token(ctx context.Context, scope string) string
}

var (
	_ CatalogReader = (*service.CatalogService)(nil)
	_ WizardService = (*service.EventWizard)(nil)
	_ TokenSource   = (*service.AuthService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T       *TemplateRenderer
	Catalog CatalogReader
	Wizard  WizardService
	Tokens  TokenSource
	IsDev   bool // Development mode flag for enhanced error reporting
	Logger  *slog.Logger
	// LoginPath is linked from pages shown to signed-out users; defaults to DefaultLoginPath.
	LoginPath string
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *UIHandlers) loginPath() string {
	if h == nil || h.LoginPath == "" {
		return DefaultLoginPath
	}
	return h.LoginPath
}

// token returns the bearer token of the request's scope.
func (h *UIHandlers) token(r *http.Request) string {
	scope := ScopeFromContext(r.Context())
	if scope == "" || h.Tokens == nil {
		return ""
	}
	return h.Tokens.Token(r.Context(), scope)
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
	}

	if p, ok := ProfileFromContext(r.Context()); ok {
		layout.User = &viewmodel.User{
			Name:  p.Name,
			Email: p.Email,
			Role:  p.Role(),
		}
		layout.IsAuthenticated = true
		layout.IsAdmin = service.ProfileHasRole(p, domainauth.RoleAdmin.String())
	}

	return layout
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"IsAdmin":         layout.IsAdmin,
		"CSRFToken":       layout.CSRFToken,
		"Errors":          map[string]string{},
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

// PageSpec defines metadata and an optional fetch for page-specific data.
type PageSpec struct {
	Meta  PageMeta
	Fetch func(ctx context.Context, data map[string]any) error
}

// Page builds base data, optionally fetches content data, and renders.
// A failed fetch still renders the page with an error banner.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	data := basePageData(r, spec.Meta)
	if msg := pageErrorFromContext(r.Context()); msg != "" {
		data["Error"] = true
		data["ErrorMessage"] = msg
	}
	if spec.Fetch != nil {
		if err := spec.Fetch(r.Context(), data); err != nil {
			h.logger().WarnContext(r.Context(), "page fetch failed",
				"page", spec.Meta.CurrentPage, "error", err)
			markPageError(data, err)
		}
	}
	h.renderDashboardPage(w, r, data)
}

// renderDashboardPage renders a page with HTMX partial support.
func (h *UIHandlers) renderDashboardPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if !IsHTMX(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})

	title, _ := data["Title"].(string)
	pageTitle, _ := data["PageTitle"].(string)
	// <title> lets htmx update document.title; the h1 is swapped out of band.
	if _, err := w.Write([]byte(`<title>` + html.EscapeString(title) + `</title>` +
		`<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` +
		html.EscapeString(pageTitle) + `</h1>`)); err != nil {
		h.logger().Error("failed to write partial header", "error", err)
		return
	}

	if err := h.T.RenderPartial(w, r, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
	}
}

// markPageError flags data for the error banner, using err's user-facing message when it has one.
func markPageError(data map[string]any, err error) {
	data["Error"] = true
	if _, ok := data["ErrorMessage"]; ok {
		return
	}
	data["ErrorMessage"] = userMessage(err, "An unexpected error occurred. Please try again.")
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		if _, writeErr := w.Write([]byte(`<div class="alert alert-error"><h2>Template Rendering Error</h2>` +
			`<p><strong>Context:</strong> ` + html.EscapeString(context) + `</p>` +
			`<p><strong>Path:</strong> ` + html.EscapeString(r.URL.Path) + `</p>` +
			`<pre>` + html.EscapeString(err.Error()) + `</pre></div>`)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}
