package service

import (
	"strings"

	"github.com/target/boxoffice/internal/domain/model"
)

// DefaultPageSize is used when a caller asks for a non-positive page size.
const DefaultPageSize = 20

// MaxPageSize caps client-requested page sizes.
const MaxPageSize = 100

// Page is one page of an in-memory list.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalCount int
	// StartIndex and EndIndex are 1-based and inclusive; both are 0 for an empty page.
	StartIndex int
	EndIndex   int
	HasPrev    bool
	HasNext    bool
}

// Paginate slices items for the 1-based page. Out-of-range pages are clamped to the last page.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	total := len(items)
	lastPage := 1
	if total > 0 {
		lastPage = (total + pageSize - 1) / pageSize
	}
	if page < 1 {
		page = 1
	}
	if page > lastPage {
		page = lastPage
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	p := Page[T]{
		Items:      items[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		HasPrev:    page > 1,
		HasNext:    end < total,
	}
	if end > start {
		p.StartIndex = start + 1
		p.EndIndex = end
	}
	return p
}

// FilterEvents keeps events whose name, category, status or venue name contains query.
func FilterEvents(events []model.Event, query string) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.Matches(query) {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickets keeps tickets matching status (case-insensitive) and eventID.
// Blank criteria match everything.
func FilterTickets(tickets []model.Ticket, status, eventID string) []model.Ticket {
	status = strings.TrimSpace(status)
	eventID = strings.TrimSpace(eventID)
	out := make([]model.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if status != "" && !strings.EqualFold(t.Status, status) {
			continue
		}
		if eventID != "" && t.EventID != eventID {
			continue
		}
		out = append(out, t)
	}
	return out
}
