package ports

import (
	"context"
	"io"

	"github.com/target/boxoffice/internal/domain/model"
)

// Resource APIs of the remote backend. Every call returns the uniform envelope;
// none of them returns a Go error.

// EventsAPI manages events.
type EventsAPI interface {
	List(ctx context.Context, token string) model.Result[[]model.Event]
	Get(ctx context.Context, token, id string) model.Result[*model.Event]
	Create(ctx context.Context, token string, in model.EventInput) model.Result[*model.Event]
	Update(ctx context.Context, token, id string, in model.EventInput) model.Result[*model.Event]
	Delete(ctx context.Context, token, id string) model.Result[struct{}]
}

// VenuesAPI manages venues.
type VenuesAPI interface {
	List(ctx context.Context, token string) model.Result[[]model.Venue]
	Get(ctx context.Context, token, id string) model.Result[*model.Venue]
	Create(ctx context.Context, token string, in model.VenueInput) model.Result[*model.Venue]
	Update(ctx context.Context, token, id string, in model.VenueInput) model.Result[*model.Venue]
	Delete(ctx context.Context, token, id string) model.Result[struct{}]
}

// SectionsAPI manages the sections of a venue.
type SectionsAPI interface {
	List(ctx context.Context, token, venueID string) model.Result[[]model.Section]
	Create(ctx context.Context, token, venueID string, in model.SectionInput) model.Result[*model.Section]
	Update(ctx context.Context, token, venueID, id string, in model.SectionInput) model.Result[*model.Section]
	Delete(ctx context.Context, token, venueID, id string) model.Result[struct{}]
}

// TicketsAPI reads tickets and changes their status.
type TicketsAPI interface {
	List(ctx context.Context, token string) model.Result[[]model.Ticket]
	Get(ctx context.Context, token, id string) model.Result[*model.Ticket]
	UpdateStatus(ctx context.Context, token, id string, in model.TicketStatusInput) model.Result[*model.Ticket]
}

// FoodsAPI manages the concession menu.
type FoodsAPI interface {
	List(ctx context.Context, token string) model.Result[[]model.FoodItem]
	Create(ctx context.Context, token string, in model.FoodItemInput) model.Result[*model.FoodItem]
	Update(ctx context.Context, token, id string, in model.FoodItemInput) model.Result[*model.FoodItem]
	Delete(ctx context.Context, token, id string) model.Result[struct{}]
}

// UploadAPI stores images and returns their public URL.
type UploadAPI interface {
	UploadImage(ctx context.Context, token, filename string, r io.Reader) model.Result[*model.UploadedImage]
}
