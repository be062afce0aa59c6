package httpx

import (
	"bytes"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/target/boxoffice"
	domainauth "github.com/target/boxoffice/internal/domain/auth"
	"github.com/target/boxoffice/internal/observability/statsd"
)

const (
	// TemplatePathFromRoot is where templates live relative to the repository root.
	TemplatePathFromRoot = "frontend/templates"
	// StaticPathFromRoot is where static assets live relative to the repository root.
	StaticPathFromRoot = "frontend/static"
)

// AuthService is everything the router needs from the auth layer.
type AuthService interface {
	AuthServiceInterface
	Authorizer
}

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth    AuthService
	Catalog CatalogReader
	Wizard  WizardService
	// Store is pinged by /readyz; nil means always ready.
	Store Pinger

	Cookie       ScopeCookie
	LoginPath    string
	LoadingAfter time.Duration
	// Compression enables gzip when non-nil.
	Compression    *CompressionConfig
	MaxUploadBytes int64
	// Metrics receives request metrics when non-nil.
	Metrics statsd.Sink

	IsDev  bool         // Development mode: templates and static files are read from disk.
	Logger *slog.Logger // Logger for template and HTTP errors (optional)
}

func (s RouterServices) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// NewRouter creates and configures the HTTP router with its middleware chain.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()
	logger := services.logger()

	tr := setupTemplateRenderer(services)
	guard := &Guard{
		Auth:         services.Auth,
		LoginPath:    services.LoginPath,
		LoadingAfter: services.LoadingAfter,
		Logger:       logger,
	}
	if tr != nil {
		guard.Pages = tr
	}

	authHandlers := &AuthHandlers{
		Svc:       services.Auth,
		Cookie:    services.Cookie,
		LoginPath: guard.loginPath(),
		T:         tr,
		Logger:    logger,
	}
	if services.Wizard != nil {
		authHandlers.Wizard = services.Wizard
	}
	apiHandlers := &APIHandlers{
		Catalog:        services.Catalog,
		Tokens:         services.Auth,
		MaxUploadBytes: services.MaxUploadBytes,
		Logger:         logger,
	}
	uiHandlers := &UIHandlers{
		T:       tr,
		Catalog: services.Catalog,
		Wizard:  services.Wizard,
		Tokens:  services.Auth,
		IsDev:   services.IsDev,
		Logger:  logger,

		LoginPath: guard.loginPath(),
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /readyz", readyHandler(services.Store, logger))
	mux.Handle("GET /static/", staticWithFallback(services.IsDev, logger))

	registerAuthRoutes(mux, authHandlers)
	registerAPIRoutes(mux, apiHandlers, guard)
	if tr != nil {
		registerUIRoutes(mux, uiHandlers, guard)
	}

	var handler http.Handler = &notFoundHandler{mux: mux, uiHandlers: uiHandlers}
	handler = CSRFProtection(CSRFConfig{
		CookieDomain: services.Cookie.Domain,
		Skip:         skipCSRF,
	})(handler)
	handler = BrowserDetection()(handler)
	handler = WithScope(services.Cookie)(handler)
	if services.Compression != nil {
		cfg := *services.Compression
		if cfg.Logger == nil {
			cfg.Logger = logger
		}
		handler = Compression(cfg)(handler)
	}
	handler = Recover(logger)(handler)
	if services.Metrics != nil {
		handler = Metrics(services.Metrics)(handler)
	}
	return Logging(logger)(handler)
}

// skipCSRF exempts JSON API calls. Their scope cookie is SameSite=Lax, so cross-site
// posts arrive without a session and the guard rejects them.
func skipCSRF(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	ct := strings.ToLower(r.Header.Get("Content-Type"))
	return strings.HasPrefix(ct, "application/json")
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET "+h.loginPath(), h.LoginForm)
	mux.HandleFunc("POST "+h.loginPath(), h.Login)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
}

func registerAPIRoutes(mux *http.ServeMux, h *APIHandlers, g *Guard) {
	read := g.Require(GuardPolicy{RequireAuth: true})
	write := g.Require(GuardPolicy{RequireAuth: true, RequiredRole: domainauth.RoleAdmin.String()})
	handle := func(pattern string, mw func(http.Handler) http.Handler, fn http.HandlerFunc) {
		mux.Handle(pattern, mw(fn))
	}

	handle("GET /api/stats", read, h.Stats)

	handle("GET /api/events", read, h.ListEvents)
	handle("GET /api/events/{id}", read, h.GetEvent)
	handle("POST /api/events", write, h.CreateEvent)
	handle("PUT /api/events/{id}", write, h.UpdateEvent)
	handle("DELETE /api/events/{id}", write, h.DeleteEvent)

	handle("GET /api/venues", read, h.ListVenues)
	handle("GET /api/venues/{id}", read, h.GetVenue)
	handle("POST /api/venues", write, h.CreateVenue)
	handle("PUT /api/venues/{id}", write, h.UpdateVenue)
	handle("DELETE /api/venues/{id}", write, h.DeleteVenue)

	handle("GET /api/venues/{id}/sections", read, h.ListSections)
	handle("POST /api/venues/{id}/sections", write, h.CreateSection)
	handle("PUT /api/venues/{id}/sections/{sid}", write, h.UpdateSection)
	handle("DELETE /api/venues/{id}/sections/{sid}", write, h.DeleteSection)

	handle("GET /api/tickets", read, h.ListTickets)
	handle("GET /api/tickets/{id}", read, h.GetTicket)
	handle("PATCH /api/tickets/{id}/status", write, h.UpdateTicketStatus)

	handle("GET /api/foods", read, h.ListFoods)
	handle("POST /api/foods", write, h.CreateFood)
	handle("PUT /api/foods/{id}", write, h.UpdateFood)
	handle("DELETE /api/foods/{id}", write, h.DeleteFood)

	handle("POST /api/upload/image", write, h.UploadImage)
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, g *Guard) {
	authed := g.Require(GuardPolicy{RequireAuth: true})
	admin := g.Require(GuardPolicy{RequireAuth: true, RequiredRole: domainauth.RoleAdmin.String()})

	mux.Handle("GET /{$}", authed(http.HandlerFunc(h.Index)))
	mux.Handle("GET /events", authed(http.HandlerFunc(h.Events)))
	mux.Handle("GET /events/{id}", authed(http.HandlerFunc(h.EventView)))
	mux.Handle("GET /venues", authed(http.HandlerFunc(h.Venues)))
	mux.Handle("GET /venues/{id}", authed(http.HandlerFunc(h.VenueView)))
	mux.Handle("GET /tickets", authed(http.HandlerFunc(h.Tickets)))
	mux.Handle("GET /menu", authed(http.HandlerFunc(h.Menu)))

	mux.Handle("GET /events/new", admin(http.HandlerFunc(h.WizardStart)))
	mux.Handle("GET /events/new/step/{step}", admin(http.HandlerFunc(h.WizardStepForm)))
	mux.Handle("POST /events/new/step/{step}", admin(http.HandlerFunc(h.WizardStepSubmit)))
	mux.Handle("POST /events/new/reset", admin(http.HandlerFunc(h.WizardReset)))
	mux.Handle("POST /events/{id}/delete", admin(http.HandlerFunc(h.DeleteEvent)))
	mux.Handle("POST /venues/{id}/delete", admin(http.HandlerFunc(h.DeleteVenue)))
}

// setupTemplateRenderer parses templates from disk in dev mode and from the embedded FS otherwise.
// A parse failure is logged and disables the UI routes.
func setupTemplateRenderer(services RouterServices) *TemplateRenderer {
	logger := services.logger()
	var templateFS fs.FS
	if services.IsDev {
		templateFS = os.DirFS(TemplatePathFromRoot)
	} else {
		sub, err := fs.Sub(boxoffice.TemplateFS, TemplatePathFromRoot)
		if err != nil {
			logger.Error("failed to create sub-filesystem for templates; falling back to disk", slog.Any("error", err))
			sub = os.DirFS(TemplatePathFromRoot)
		}
		templateFS = sub
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: templateFS, Logger: logger})
	if err != nil {
		logger.Error("failed to create template renderer", slog.Any("error", err))
		return nil
	}
	return tr
}

// staticWithFallback serves /static/* assets from disk in dev mode and from the embedded FS otherwise.
func staticWithFallback(isDev bool, logger *slog.Logger) http.Handler {
	if isDev {
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir(StaticPathFromRoot))))
	}

	staticSub, err := fs.Sub(boxoffice.StaticFS, StaticPathFromRoot)
	if err != nil {
		logger.Error("failed to create sub-filesystem for static assets", slog.Any("error", err))
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir(StaticPathFromRoot))))
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))
}

var hashedFilePattern = regexp.MustCompile(`\.[a-f0-9]{8}\.(?:js|css)(?:\.map)?$`)

// staticWithCacheHeaders wraps a static file handler to add appropriate cache headers.
func staticWithCacheHeaders(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hashedFilePattern.MatchString(r.URL.Path) {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		}
		handler.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP routes matched requests straight through and renders unmatched ones with NotFound.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := h.mux.Handler(r); pattern != "" {
		h.mux.ServeHTTP(w, r)
		return
	}

	cw := newCaptureWriter()
	h.mux.ServeHTTP(cw, r)
	if cw.status == http.StatusNotFound {
		h.uiHandlers.NotFound(w, r)
		return
	}
	// 405s and path-cleaning redirects produced by the mux itself.
	cw.flushTo(w, h.uiHandlers.logger())
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter() *captureWriter {
	return &captureWriter{header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter, logger *slog.Logger) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		logger.Warn("failed to write captured response", slog.Any("error", err))
	}
}
