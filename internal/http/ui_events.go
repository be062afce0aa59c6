package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/target/boxoffice/internal/service"
)

// Events serves the event list with search and pagination.
func (h *UIHandlers) Events(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Box Office - Events", PageTitle: "Events", CurrentPage: PageEvents},
		Fetch: func(ctx context.Context, data map[string]any) error {
			data["Query"] = query
			res := h.Catalog.ListEvents(ctx, h.token(r))
			if err := resultError(res); err != nil {
				return err
			}
			page := service.Paginate(service.FilterEvents(res.Data, query),
				parseIntQuery(r, "page", 1), parseIntQuery(r, "page_size", service.DefaultPageSize))
			data["Events"] = page.Items
			applyPagination(data, r.URL.Query(), pageData("/events", page))
			return nil
		},
	})
}

// EventView serves one event with its venue and pricing.
func (h *UIHandlers) EventView(w http.ResponseWriter, r *http.Request) {
	res := h.Catalog.GetEvent(r.Context(), h.token(r), r.PathValue("id"))
	if (res.Success && res.Data == nil) || res.Status == http.StatusNotFound {
		h.NotFound(w, r)
		return
	}
	name := "Event"
	if res.Success {
		name = res.Data.Name
	}
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Box Office - " + name, PageTitle: name, CurrentPage: PageEvent},
		Fetch: func(_ context.Context, data map[string]any) error {
			data["Event"] = res.Data
			return resultError(res)
		},
	})
}

// DeleteEvent removes an event and returns to the list.
func (h *UIHandlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, deleteHandlerOpts{
		Delete: func(ctx context.Context, id string) error {
			return resultError(h.Catalog.Backends().Events.Delete(ctx, h.token(r), id))
		},
		RedirectPath: "/events",
		OnError:      h.Events,
	})
}

// deleteHandlerOpts encapsulates common delete-handling behavior for UI endpoints.
type deleteHandlerOpts struct {
	Delete       func(ctx context.Context, id string) error
	RedirectPath string
	// OnError re-renders a page carrying the error banner.
	OnError http.HandlerFunc
}

// handleDelete coordinates delete flows shared across UI handlers.
func (h *UIHandlers) handleDelete(w http.ResponseWriter, r *http.Request, opts deleteHandlerOpts) {
	id := r.PathValue("id")
	if id == "" {
		h.NotFound(w, r)
		return
	}

	if err := opts.Delete(r.Context(), id); err != nil {
		h.logger().WarnContext(r.Context(), "delete failed", "path", r.URL.Path, "error", err)
		// Re-render the list as a GET so its fetch runs with the error banner.
		listReq := r.Clone(withPageError(r.Context(), userMessage(err, "Unable to delete.")))
		listReq.Method = http.MethodGet
		listReq.URL.Path = opts.RedirectPath
		listReq.URL.RawQuery = ""
		opts.OnError(w, listReq)
		return
	}

	navigate(w, r, opts.RedirectPath)
}

type pageErrorKey struct{}

// withPageError carries a message for the next rendered page's error banner.
func withPageError(ctx context.Context, msg string) context.Context {
	return context.WithValue(ctx, pageErrorKey{}, msg)
}

func pageErrorFromContext(ctx context.Context) string {
	msg, _ := ctx.Value(pageErrorKey{}).(string)
	return msg
}
