package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrowserDetection(t *testing.T) {
	var seen bool
	h := BrowserDetection()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = IsBrowserRequest(r)
	}))

	tests := []struct {
		name   string
		path   string
		accept string
		htmx   bool
		want   bool
	}{
		{name: "api json", path: "/api/events", accept: "application/json"},
		{name: "api asking for html", path: "/api/tickets", accept: "text/html"},
		{name: "static asset", path: "/static/css/app.css", accept: "text/css"},
		{name: "page navigation", path: "/venues/ven-1", accept: "text/html,application/xhtml+xml,*/*;q=0.8", want: true},
		{name: "htmx swap", path: "/events", accept: "*/*", htmx: true, want: true},
		{name: "no accept header", path: "/tickets", want: true},
		{name: "fetch asking for json", path: "/auth/status", accept: "application/json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			if tt.htmx {
				req.Header.Set("HX-Request", "true")
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, seen)
		})
	}
}

func TestIsBrowserRequest_ContextOverridesHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set("Accept", "text/html")
	assert.True(t, IsBrowserRequest(req), "falls back to header detection without middleware")

	req = req.WithContext(context.WithValue(req.Context(), browserRequestKey{}, false))
	assert.False(t, IsBrowserRequest(req))

	req = req.WithContext(context.WithValue(req.Context(), browserRequestKey{}, "not a bool"))
	assert.True(t, IsBrowserRequest(req))
}
