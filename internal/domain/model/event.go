package model

import (
	"strings"
	"time"
)

// EventStatus is the lifecycle status the backend reports for an event.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// PriceTier is the price and allocation of one venue section for an event.
type PriceTier struct {
	SectionID string  `json:"section_id" validate:"required"`
	Price     float64 `json:"price"      validate:"gte=0"`
	Capacity  int     `json:"capacity"   validate:"gte=1"`
}

// Event is an event as returned by the backend. Venue is filled in by the dashboard
// when the venue detail could be loaded; it is nil otherwise.
type Event struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category,omitempty"`
	VenueID     string      `json:"venue_id,omitempty"`
	Venue       *Venue      `json:"venue,omitempty"`
	StartsAt    time.Time   `json:"starts_at"`
	EndsAt      time.Time   `json:"ends_at"`
	Status      EventStatus `json:"status,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
	PriceTiers  []PriceTier `json:"price_tiers,omitempty"`
	CreatedAt   time.Time   `json:"created_at,omitempty"`
}

// VenueName returns the loaded venue's name or "" when the venue is unknown.
func (e Event) VenueName() string {
	if e.Venue == nil {
		return ""
	}
	return e.Venue.Name
}

// Matches reports whether the lower-cased query is a substring of the event's
// name, category, status, or venue name. An empty query matches everything.
func (e Event) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{e.Name, e.Category, string(e.Status), e.VenueName()} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// EventInput is the create/update payload for events.
type EventInput struct {
	Name        string      `json:"name"                  validate:"required,max=120"`
	Description string      `json:"description,omitempty" validate:"max=2000"`
	Category    string      `json:"category"              validate:"required"`
	VenueID     string      `json:"venue_id"              validate:"required"`
	StartsAt    time.Time   `json:"starts_at"             validate:"required"`
	EndsAt      time.Time   `json:"ends_at"               validate:"required,gtfield=StartsAt"`
	Status      EventStatus `json:"status,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"   validate:"omitempty,url"`
	PriceTiers  []PriceTier `json:"price_tiers,omitempty" validate:"dive"`
}
