package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/target/boxoffice/internal/domain/model"
	"github.com/target/boxoffice/internal/service"
	"github.com/target/boxoffice/internal/util"
)

//nolint:gochecknoglobals // static read-only filter options
var ticketStatuses = []string{
	model.TicketStatusSold,
	model.TicketStatusReserved,
	model.TicketStatusCheckedIn,
	model.TicketStatusCancelled,
}

// Tickets serves the ticket list filtered by status and event_id. Event names are looked up
// alongside; when that lookup fails the list shows event ids.
func (h *UIHandlers) Tickets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := strings.ToLower(strings.TrimSpace(q.Get("status")))
	eventID := strings.TrimSpace(q.Get("event_id"))
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Box Office - Tickets", PageTitle: "Tickets", CurrentPage: PageTickets},
		Fetch: func(ctx context.Context, data map[string]any) error {
			data["Statuses"] = ticketStatuses
			data["Status"] = status
			data["EventID"] = eventID
			data["EventNames"] = map[string]string{}

			b := h.Catalog.Backends()
			tok := h.token(r)
			var tickets model.Result[[]model.Ticket]
			var events model.Result[[]model.Event]
			out := util.JoinAllBestEffort(ctx, 0,
				func(ctx context.Context) (struct{}, error) {
					tickets = b.Tickets.List(ctx, tok)
					return struct{}{}, resultError(tickets)
				},
				func(ctx context.Context) (struct{}, error) {
					events = b.Events.List(ctx, tok)
					return struct{}{}, resultError(events)
				},
			)
			if err := out[0].Err; err != nil {
				return err
			}
			if out[1].Err == nil {
				names := make(map[string]string, len(events.Data))
				for _, e := range events.Data {
					names[e.ID] = e.Name
				}
				data["EventNames"] = names
			}

			filtered := service.FilterTickets(tickets.Data, status, eventID)
			page := service.Paginate(filtered,
				parseIntQuery(r, "page", 1), parseIntQuery(r, "page_size", service.DefaultPageSize))
			data["Tickets"] = page.Items
			applyPagination(data, r.URL.Query(), pageData("/tickets", page))
			return nil
		},
	})
}
