package httpx

import (
	"context"
	"net/http"

	"github.com/target/boxoffice/internal/service"
)

// Venues serves the venue list.
func (h *UIHandlers) Venues(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Box Office - Venues", PageTitle: "Venues", CurrentPage: PageVenues},
		Fetch: func(ctx context.Context, data map[string]any) error {
			res := h.Catalog.ListVenues(ctx, h.token(r))
			if err := resultError(res); err != nil {
				return err
			}
			page := service.Paginate(res.Data,
				parseIntQuery(r, "page", 1), parseIntQuery(r, "page_size", service.DefaultPageSize))
			data["Venues"] = page.Items
			applyPagination(data, r.URL.Query(), pageData("/venues", page))
			return nil
		},
	})
}

// VenueView serves one venue with whatever sections could be loaded.
func (h *UIHandlers) VenueView(w http.ResponseWriter, r *http.Request) {
	res := h.Catalog.GetVenue(r.Context(), h.token(r), r.PathValue("id"))
	if (res.Success && res.Data == nil) || res.Status == http.StatusNotFound {
		h.NotFound(w, r)
		return
	}
	name := "Venue"
	if res.Success {
		name = res.Data.Name
	}
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Box Office - " + name, PageTitle: name, CurrentPage: PageVenue},
		Fetch: func(_ context.Context, data map[string]any) error {
			data["Venue"] = res.Data
			return resultError(res)
		},
	})
}

// DeleteVenue removes a venue and returns to the list.
func (h *UIHandlers) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, deleteHandlerOpts{
		Delete: func(ctx context.Context, id string) error {
			return resultError(h.Catalog.Backends().Venues.Delete(ctx, h.token(r), id))
		},
		RedirectPath: "/venues",
		OnError:      h.Venues,
	})
}
