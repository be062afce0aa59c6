package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// IsHTMX reports whether the request was initiated by htmx (Hx-Request: true).
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Hx-Request"), "true")
}

// SetHXRedirect instructs htmx to navigate the browser to url.
func SetHXRedirect(w http.ResponseWriter, url string) { w.Header().Set("Hx-Redirect", url) }

// navigate sends the browser to target: an Hx-Redirect with 200 for htmx (which only
// swaps 2xx responses and would otherwise render the target inside the current layout),
// a 303 for everything else.
func navigate(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r) {
		SetHXRedirect(w, target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// SetHXTrigger fires a client-side event after the swap; a nil payload sends true.
func SetHXTrigger(w http.ResponseWriter, event string, payload any) {
	if payload == nil {
		payload = true
	}
	b, err := json.Marshal(map[string]any{event: payload})
	if err != nil {
		return
	}
	w.Header().Set("Hx-Trigger", string(b))
}
