package model

// Venue is a physical location hosting events.
type Venue struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Address  string    `json:"address,omitempty"`
	City     string    `json:"city,omitempty"`
	Capacity int       `json:"capacity,omitempty"`
	Sections []Section `json:"sections,omitempty"`
}

// VenueInput is the create/update payload for venues.
type VenueInput struct {
	Name     string `json:"name"              validate:"required,max=120"`
	Address  string `json:"address,omitempty" validate:"max=255"`
	City     string `json:"city,omitempty"    validate:"max=120"`
	Capacity int    `json:"capacity"          validate:"gte=0"`
}

// Section is a seating area within a venue.
type Section struct {
	ID          string `json:"id"`
	VenueID     string `json:"venue_id,omitempty"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity,omitempty"`
	Description string `json:"description,omitempty"`
}

// SectionInput is the create/update payload for sections.
type SectionInput struct {
	Name        string `json:"name"                  validate:"required,max=120"`
	Capacity    int    `json:"capacity"              validate:"gte=1"`
	Description string `json:"description,omitempty" validate:"max=500"`
}
