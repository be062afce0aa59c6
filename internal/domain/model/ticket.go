package model

import "time"

// Well-known ticket statuses. The backend may report others; they are grouped as-is.
const (
	TicketStatusSold      = "sold"
	TicketStatusReserved  = "reserved"
	TicketStatusCancelled = "cancelled"
	TicketStatusCheckedIn = "checked_in"
)

// Ticket is a single issued ticket.
type Ticket struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	SectionID   string    `json:"section_id,omitempty"`
	HolderName  string    `json:"holder_name,omitempty"`
	HolderEmail string    `json:"holder_email,omitempty"`
	Price       float64   `json:"price"`
	Status      string    `json:"status"`
	PurchasedAt time.Time `json:"purchased_at,omitempty"`
}

// TicketStatusInput changes a ticket's status.
type TicketStatusInput struct {
	Status string `json:"status" validate:"required,oneof=sold reserved cancelled checked_in"`
}
