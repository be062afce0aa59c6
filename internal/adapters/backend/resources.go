package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/target/boxoffice/internal/domain/model"
	"github.com/target/boxoffice/internal/ports"
)

var (
	_ ports.EventsAPI   = (*EventsClient)(nil)
	_ ports.VenuesAPI   = (*VenuesClient)(nil)
	_ ports.SectionsAPI = (*SectionsClient)(nil)
	_ ports.TicketsAPI  = (*TicketsClient)(nil)
	_ ports.FoodsAPI    = (*FoodsClient)(nil)
)

func esc(id string) string { return url.PathEscape(id) }

// send encodes in as JSON and performs the call.
func send[T any](ctx context.Context, c *Client, r request, in any) model.Result[T] {
	body, err := jsonBody(in)
	if err != nil {
		return model.Fail[T](err.Error())
	}
	r.body = body
	r.contentType = "application/json"
	return call[T](ctx, c, r)
}

// EventsClient calls /api/events.
type EventsClient struct{ c *Client }

func (e *EventsClient) List(ctx context.Context, token string) model.Result[[]model.Event] {
	return call[[]model.Event](ctx, e.c, request{
		method: http.MethodGet, path: "/api/events", token: token, keys: []string{"events"},
	})
}

func (e *EventsClient) Get(ctx context.Context, token, id string) model.Result[*model.Event] {
	return call[*model.Event](ctx, e.c, request{
		method: http.MethodGet, path: "/api/events/" + esc(id), token: token, keys: []string{"event"},
	})
}

func (e *EventsClient) Create(ctx context.Context, token string, in model.EventInput) model.Result[*model.Event] {
	return send[*model.Event](ctx, e.c, request{
		method: http.MethodPost, path: "/api/events", token: token, keys: []string{"event"},
	}, in)
}

func (e *EventsClient) Update(
	ctx context.Context,
	token, id string,
	in model.EventInput,
) model.Result[*model.Event] {
	return send[*model.Event](ctx, e.c, request{
		method: http.MethodPut, path: "/api/events/" + esc(id), token: token, keys: []string{"event"},
	}, in)
}

func (e *EventsClient) Delete(ctx context.Context, token, id string) model.Result[struct{}] {
	return call[struct{}](ctx, e.c, request{
		method: http.MethodDelete, path: "/api/events/" + esc(id), token: token,
	})
}

// VenuesClient calls /api/venues.
type VenuesClient struct{ c *Client }

func (v *VenuesClient) List(ctx context.Context, token string) model.Result[[]model.Venue] {
	return call[[]model.Venue](ctx, v.c, request{
		method: http.MethodGet, path: "/api/venues", token: token, keys: []string{"venues"},
	})
}

func (v *VenuesClient) Get(ctx context.Context, token, id string) model.Result[*model.Venue] {
	return call[*model.Venue](ctx, v.c, request{
		method: http.MethodGet, path: "/api/venues/" + esc(id), token: token, keys: []string{"venue"},
	})
}

func (v *VenuesClient) Create(ctx context.Context, token string, in model.VenueInput) model.Result[*model.Venue] {
	return send[*model.Venue](ctx, v.c, request{
		method: http.MethodPost, path: "/api/venues", token: token, keys: []string{"venue"},
	}, in)
}

func (v *VenuesClient) Update(
	ctx context.Context,
	token, id string,
	in model.VenueInput,
) model.Result[*model.Venue] {
	return send[*model.Venue](ctx, v.c, request{
		method: http.MethodPut, path: "/api/venues/" + esc(id), token: token, keys: []string{"venue"},
	}, in)
}

func (v *VenuesClient) Delete(ctx context.Context, token, id string) model.Result[struct{}] {
	return call[struct{}](ctx, v.c, request{
		method: http.MethodDelete, path: "/api/venues/" + esc(id), token: token,
	})
}

// SectionsClient calls /api/venues/{id}/sections.
type SectionsClient struct{ c *Client }

func sectionsPath(venueID string) string { return "/api/venues/" + esc(venueID) + "/sections" }

func (s *SectionsClient) List(ctx context.Context, token, venueID string) model.Result[[]model.Section] {
	return call[[]model.Section](ctx, s.c, request{
		method: http.MethodGet, path: sectionsPath(venueID), token: token, keys: []string{"sections"},
	})
}

func (s *SectionsClient) Create(
	ctx context.Context,
	token, venueID string,
	in model.SectionInput,
) model.Result[*model.Section] {
	return send[*model.Section](ctx, s.c, request{
		method: http.MethodPost, path: sectionsPath(venueID), token: token, keys: []string{"section"},
	}, in)
}

func (s *SectionsClient) Update(
	ctx context.Context,
	token, venueID, id string,
	in model.SectionInput,
) model.Result[*model.Section] {
	return send[*model.Section](ctx, s.c, request{
		method: http.MethodPut, path: sectionsPath(venueID) + "/" + esc(id), token: token, keys: []string{"section"},
	}, in)
}

func (s *SectionsClient) Delete(ctx context.Context, token, venueID, id string) model.Result[struct{}] {
	return call[struct{}](ctx, s.c, request{
		method: http.MethodDelete, path: sectionsPath(venueID) + "/" + esc(id), token: token,
	})
}

// TicketsClient calls /api/tickets.
type TicketsClient struct{ c *Client }

func (t *TicketsClient) List(ctx context.Context, token string) model.Result[[]model.Ticket] {
	return call[[]model.Ticket](ctx, t.c, request{
		method: http.MethodGet, path: "/api/tickets", token: token, keys: []string{"tickets"},
	})
}

func (t *TicketsClient) Get(ctx context.Context, token, id string) model.Result[*model.Ticket] {
	return call[*model.Ticket](ctx, t.c, request{
		method: http.MethodGet, path: "/api/tickets/" + esc(id), token: token, keys: []string{"ticket"},
	})
}

func (t *TicketsClient) UpdateStatus(
	ctx context.Context,
	token, id string,
	in model.TicketStatusInput,
) model.Result[*model.Ticket] {
	return send[*model.Ticket](ctx, t.c, request{
		method: http.MethodPatch, path: "/api/tickets/" + esc(id) + "/status", token: token, keys: []string{"ticket"},
	}, in)
}

// FoodsClient calls /api/foods.
type FoodsClient struct{ c *Client }

func (f *FoodsClient) List(ctx context.Context, token string) model.Result[[]model.FoodItem] {
	return call[[]model.FoodItem](ctx, f.c, request{
		method: http.MethodGet, path: "/api/foods", token: token, keys: []string{"foods"},
	})
}

func (f *FoodsClient) Create(ctx context.Context, token string, in model.FoodItemInput) model.Result[*model.FoodItem] {
	return send[*model.FoodItem](ctx, f.c, request{
		method: http.MethodPost, path: "/api/foods", token: token, keys: []string{"food"},
	}, in)
}

func (f *FoodsClient) Update(
	ctx context.Context,
	token, id string,
	in model.FoodItemInput,
) model.Result[*model.FoodItem] {
	return send[*model.FoodItem](ctx, f.c, request{
		method: http.MethodPut, path: "/api/foods/" + esc(id), token: token, keys: []string{"food"},
	}, in)
}

func (f *FoodsClient) Delete(ctx context.Context, token, id string) model.Result[struct{}] {
	return call[struct{}](ctx, f.c, request{
		method: http.MethodDelete, path: "/api/foods/" + esc(id), token: token,
	})
}
