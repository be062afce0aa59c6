package httpx

import (
	"errors"
	"net/http"
)

// NotFound handles 404 errors.
// Browser requests get an HTML page; API requests get a JSON error.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errors.New("not found"),
		})
		return
	}

	page := StatusPage{
		Status:  http.StatusNotFound,
		Title:   "Page Not Found - Box Office",
		Heading: "404 Not Found",
		Message: "The page you're looking for doesn't exist.",
		HomeURL: "/",
	}
	if _, ok := ProfileFromContext(r.Context()); !ok && ScopeFromContext(r.Context()) == "" {
		page.LoginURL = loginURL(h.loginPath(), safeRedirectPath(r.URL.RequestURI()))
	}
	var pages StatusPageRenderer
	if h.T != nil {
		pages = h.T
	}
	writeStatusPage(w, r, pages, page)
}
