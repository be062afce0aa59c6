package httpx

import (
	"context"
	"errors"
	"net/http"
)

// Menu serves the concession menu.
func (h *UIHandlers) Menu(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Box Office - Menu", PageTitle: "Menu", CurrentPage: PageMenu},
		Fetch: func(ctx context.Context, data map[string]any) error {
			foods := h.Catalog.Backends().Foods
			if foods == nil {
				return errors.New("menu backend not configured")
			}
			res := foods.List(ctx, h.token(r))
			if err := resultError(res); err != nil {
				return err
			}
			data["Foods"] = res.Data
			return nil
		},
	})
}
