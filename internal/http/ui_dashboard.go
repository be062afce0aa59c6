package httpx

import (
	"context"
	"net/http"
)

// Index serves the home page with the sales dashboard.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Box Office - Dashboard", PageTitle: "Dashboard", CurrentPage: PageDashboard},
		Fetch: func(ctx context.Context, data map[string]any) error {
			res := h.Catalog.Dashboard(ctx, h.token(r))
			if err := resultError(res); err != nil {
				return err
			}
			data["Stats"] = res.Data
			return nil
		},
	})
}
