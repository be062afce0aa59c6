// Package testutil provides testing utilities and helpers for the boxoffice dashboard.
package testutil

import (
	"time"

	"github.com/target/boxoffice/internal/domain/model"
)

// EventBuilder provides a fluent interface for building model.Event values for testing.
type EventBuilder struct {
	ev model.Event
}

// NewEvent creates a new EventBuilder with sensible defaults.
func NewEvent(id string) *EventBuilder {
	start := TestTime().Add(24 * time.Hour)
	return &EventBuilder{
		ev: model.Event{
			ID:       id,
			Name:     "Event " + id,
			Category: "concert",
			VenueID:  "venue-1",
			StartsAt: start,
			EndsAt:   start.Add(3 * time.Hour),
			Status:   model.EventStatusPublished,
		},
	}
}

// WithName sets the event name.
func (b *EventBuilder) WithName(name string) *EventBuilder {
	b.ev.Name = name
	return b
}

// WithCategory sets the event category.
func (b *EventBuilder) WithCategory(category string) *EventBuilder {
	b.ev.Category = category
	return b
}

// WithVenue sets the venue ID.
func (b *EventBuilder) WithVenue(venueID string) *EventBuilder {
	b.ev.VenueID = venueID
	return b
}

// WithStatus sets the event status.
func (b *EventBuilder) WithStatus(status model.EventStatus) *EventBuilder {
	b.ev.Status = status
	return b
}

// Build returns the constructed event.
func (b *EventBuilder) Build() model.Event {
	return b.ev
}

// TicketBuilder builds model.Ticket values for testing.
type TicketBuilder struct {
	t model.Ticket
}

// NewTicket creates a sold ticket for the given event.
func NewTicket(id, eventID string) *TicketBuilder {
	return &TicketBuilder{
		t: model.Ticket{
			ID:          id,
			EventID:     eventID,
			SectionID:   "section-1",
			HolderName:  "Holder " + id,
			Price:       50,
			Status:      model.TicketStatusSold,
			PurchasedAt: TestTime(),
		},
	}
}

// WithPrice sets the ticket price.
func (b *TicketBuilder) WithPrice(price float64) *TicketBuilder {
	b.t.Price = price
	return b
}

// WithStatus sets the ticket status.
func (b *TicketBuilder) WithStatus(status string) *TicketBuilder {
	b.t.Status = status
	return b
}

// Build returns the constructed ticket.
func (b *TicketBuilder) Build() model.Ticket {
	return b.t
}

// NewVenue returns a venue with one section.
func NewVenue(id, name string) model.Venue {
	return model.Venue{
		ID:       id,
		Name:     name,
		City:     "Minneapolis",
		Capacity: 1000,
		Sections: []model.Section{{ID: id + "-floor", VenueID: id, Name: "Floor", Capacity: 500}},
	}
}
