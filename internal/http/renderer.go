package httpx

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	corefuncs "github.com/target/boxoffice/internal/http/templates/core"
)

// TemplateRenderer renders HTML templates for UI responses.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS        // Filesystem containing templates (required)
	Logger     *slog.Logger // Logger for template errors (optional)
}

// NewTemplateRenderer constructs a renderer by parsing templates from the provided config.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	renderer := &TemplateRenderer{logger: logger}
	var t *template.Template
	funcs := corefuncs.Funcs(corefuncs.Deps{
		Template:           &t,
		ContentTemplateFor: ContentTemplateFor,
	})
	var err error
	t, err = template.New("root").Funcs(funcs).ParseFS(cfg.TemplateFS, "*.tmpl", "pages/*.tmpl")
	if err != nil {
		logger.Error("template parsing failed",
			slog.Any("error", err),
			slog.String("phase", "initialization"),
		)
		return nil, err
	}
	renderer.t = t
	return renderer, nil
}

// RenderFull renders the full page (layout + page content).
func (r *TemplateRenderer) RenderFull(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.renderTemplate(w, "layout", data)
}

// RenderPartial renders only the main content area.
func (r *TemplateRenderer) RenderPartial(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.renderTemplate(w, "content", data)
}

// RenderLogin renders the standalone sign-in page.
func (r *TemplateRenderer) RenderLogin(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.renderTemplate(w, "login-page", data)
}

// RenderStatusPage writes page.Status and renders the standalone status template.
func (r *TemplateRenderer) RenderStatusPage(w http.ResponseWriter, _ *http.Request, page StatusPage) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, "error-layout", page); err != nil {
		r.logTemplateError("error-layout", err)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusOr(page.Status, http.StatusOK))
	_, err := buf.WriteTo(w)
	return err
}

func (r *TemplateRenderer) renderTemplate(w http.ResponseWriter, templateName string, data any) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, templateName, data); err != nil {
		r.logTemplateError(templateName, err)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Error("failed to write rendered template",
			slog.String("template", templateName),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

func (r *TemplateRenderer) logTemplateError(templateName string, err error) {
	r.logger.Error("template execution failed",
		slog.String("template", templateName),
		slog.Any("error", err),
	)
}

// StatusPage is a standalone page shown instead of a view: loading, forbidden, not found.
type StatusPage struct {
	Status   int
	Title    string
	Heading  string
	Message  string
	Loading  bool
	ShowBack bool
	HomeURL  string
	LoginURL string
}

// StatusPageRenderer renders StatusPage values. *TemplateRenderer implements it.
type StatusPageRenderer interface {
	RenderStatusPage(w http.ResponseWriter, r *http.Request, page StatusPage) error
}

// writeStatusPage renders page, falling back to plain text when no renderer is configured.
func writeStatusPage(w http.ResponseWriter, r *http.Request, pages StatusPageRenderer, page StatusPage) {
	if pages != nil {
		if err := pages.RenderStatusPage(w, r, page); err == nil {
			return
		}
	}
	msg := page.Heading
	if page.Message != "" {
		msg += ": " + page.Message
	}
	http.Error(w, msg, statusOr(page.Status, http.StatusInternalServerError))
}

func statusOr(status, def int) int {
	if status == 0 {
		return def
	}
	return status
}
