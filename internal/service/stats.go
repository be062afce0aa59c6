package service

import (
	"cmp"
	"slices"
	"strings"

	"github.com/target/boxoffice/internal/domain/model"
)

// TicketStats summarizes a set of tickets for the dashboard.
type TicketStats struct {
	TotalTickets int     `json:"total_tickets"`
	TotalRevenue float64 `json:"total_revenue"`
	Sold         int     `json:"sold"`
	Reserved     int     `json:"reserved"`
	Cancelled    int     `json:"cancelled"`
	CheckedIn    int     `json:"checked_in"`
	AveragePrice float64 `json:"average_price"`
}

// EventSales is the per-event slice of ticket sales.
type EventSales struct {
	EventID   string  `json:"event_id"`
	EventName string  `json:"event_name"`
	Tickets   int     `json:"tickets"`
	Revenue   float64 `json:"revenue"`
}

// StatusCount is the number of tickets in one status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// countsTowardRevenue reports whether a ticket's price is earned revenue.
func countsTowardRevenue(status string) bool {
	return normalizeStatus(status) != model.TicketStatusCancelled
}

func normalizeStatus(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	if s == "" {
		return "unknown"
	}
	return s
}

// ComputeTicketStats totals tickets by status. Cancelled tickets count toward TotalTickets
// but not toward revenue; AveragePrice is revenue over non-cancelled tickets.
func ComputeTicketStats(tickets []model.Ticket) TicketStats {
	var st TicketStats
	paid := 0
	for _, t := range tickets {
		st.TotalTickets++
		switch normalizeStatus(t.Status) {
		case model.TicketStatusSold:
			st.Sold++
		case model.TicketStatusReserved:
			st.Reserved++
		case model.TicketStatusCancelled:
			st.Cancelled++
		case model.TicketStatusCheckedIn:
			st.CheckedIn++
		}
		if countsTowardRevenue(t.Status) {
			st.TotalRevenue += t.Price
			paid++
		}
	}
	if paid > 0 {
		st.AveragePrice = st.TotalRevenue / float64(paid)
	}
	return st
}

// GroupByEvent aggregates tickets per event, sorted by revenue descending, then by name.
// Events without tickets are omitted; tickets for unknown events are named by ID.
func GroupByEvent(tickets []model.Ticket, events []model.Event) []EventSales {
	names := make(map[string]string, len(events))
	for _, e := range events {
		names[e.ID] = e.Name
	}

	byID := make(map[string]*EventSales)
	var order []string
	for _, t := range tickets {
		s, ok := byID[t.EventID]
		if !ok {
			name := names[t.EventID]
			if name == "" {
				name = t.EventID
			}
			s = &EventSales{EventID: t.EventID, EventName: name}
			byID[t.EventID] = s
			order = append(order, t.EventID)
		}
		s.Tickets++
		if countsTowardRevenue(t.Status) {
			s.Revenue += t.Price
		}
	}

	out := make([]EventSales, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	slices.SortStableFunc(out, func(a, b EventSales) int {
		if c := cmp.Compare(b.Revenue, a.Revenue); c != 0 {
			return c
		}
		return cmp.Compare(a.EventName, b.EventName)
	})
	return out
}

// GroupByStatus counts tickets per lower-cased status, sorted by count descending, then by name.
func GroupByStatus(tickets []model.Ticket) []StatusCount {
	counts := make(map[string]int)
	for _, t := range tickets {
		counts[normalizeStatus(t.Status)]++
	}
	out := make([]StatusCount, 0, len(counts))
	for s, n := range counts {
		out = append(out, StatusCount{Status: s, Count: n})
	}
	slices.SortFunc(out, func(a, b StatusCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Status, b.Status)
	})
	return out
}

// DashboardStats is everything the dashboard charts need.
type DashboardStats struct {
	Totals   TicketStats   `json:"totals"`
	ByEvent  []EventSales  `json:"by_event"`
	ByStatus []StatusCount `json:"by_status"`
}

// BuildDashboardStats computes all dashboard aggregates.
func BuildDashboardStats(tickets []model.Ticket, events []model.Event) DashboardStats {
	return DashboardStats{
		Totals:   ComputeTicketStats(tickets),
		ByEvent:  GroupByEvent(tickets, events),
		ByStatus: GroupByStatus(tickets),
	}
}
