package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/target/boxoffice/internal/domain/model"
	"github.com/target/boxoffice/internal/ports"
	"github.com/target/boxoffice/internal/util"
)

// Backends bundles the resource APIs the dashboard reads from.
type Backends struct {
	Events   ports.EventsAPI
	Venues   ports.VenuesAPI
	Sections ports.SectionsAPI
	Tickets  ports.TicketsAPI
	Foods    ports.FoodsAPI
	Upload   ports.UploadAPI
}

// CatalogServiceOptions groups dependencies for CatalogService.
type CatalogServiceOptions struct {
	Backends    Backends     // Required: Events, Venues, Sections and Tickets must be set
	FanoutLimit int          // Optional: max concurrent sub-requests (0 = unlimited)
	Logger      *slog.Logger // Optional
}

// CatalogService composes several backend calls into the views the dashboard shows.
// Secondary lookups are best-effort: a failing sub-request degrades the view instead of failing it.
type CatalogService struct {
	b      Backends
	limit  int
	logger *slog.Logger
}

// NewCatalogService constructs a CatalogService. It panics when a required API is nil.
func NewCatalogService(opts CatalogServiceOptions) *CatalogService {
	b := opts.Backends
	if b.Events == nil || b.Venues == nil || b.Sections == nil || b.Tickets == nil {
		panic("CatalogService requires Events, Venues, Sections and Tickets APIs")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{b: b, limit: opts.FanoutLimit, logger: logger.With("component", "catalog_service")}
}

// Backends returns the underlying resource APIs.
func (s *CatalogService) Backends() Backends { return s.b }

// ListEvents returns all events with their venue filled in where the venue could be loaded.
func (s *CatalogService) ListEvents(ctx context.Context, token string) model.Result[[]model.Event] {
	res := s.b.Events.List(ctx, token)
	if !res.Success {
		return res
	}
	s.attachVenues(ctx, token, res.Data)
	return res
}

// GetEvent returns one event with its venue when available.
func (s *CatalogService) GetEvent(ctx context.Context, token, id string) model.Result[*model.Event] {
	res := s.b.Events.Get(ctx, token, id)
	if !res.Success || res.Data == nil {
		return res
	}
	events := []model.Event{*res.Data}
	s.attachVenues(ctx, token, events)
	res.Data = &events[0]
	return res
}

// attachVenues loads each distinct venue once, concurrently, and sets Event.Venue.
// Events whose venue fails to load keep a nil Venue.
func (s *CatalogService) attachVenues(ctx context.Context, token string, events []model.Event) {
	var ids []string
	seen := make(map[string]bool)
	for _, e := range events {
		if e.VenueID != "" && e.Venue == nil && !seen[e.VenueID] {
			seen[e.VenueID] = true
			ids = append(ids, e.VenueID)
		}
	}
	if len(ids) == 0 {
		return
	}

	tasks := make([]util.Task[*model.Venue], len(ids))
	for i, id := range ids {
		tasks[i] = func(ctx context.Context) (*model.Venue, error) {
			r := s.b.Venues.Get(ctx, token, id)
			if !r.Success {
				return nil, errors.New(r.Error)
			}
			return r.Data, nil
		}
	}
	outcomes := util.JoinAllBestEffort(ctx, s.limit, tasks...)

	venues := make(map[string]*model.Venue, len(ids))
	for i, o := range outcomes {
		if o.Err != nil {
			s.logger.DebugContext(ctx, "venue lookup failed", "venue_id", ids[i], "error", o.Err)
			continue
		}
		venues[ids[i]] = o.Value
	}
	for i := range events {
		if v, ok := venues[events[i].VenueID]; ok && v != nil {
			events[i].Venue = v
		}
	}
}

// ListVenues returns all venues.
func (s *CatalogService) ListVenues(ctx context.Context, token string) model.Result[[]model.Venue] {
	return s.b.Venues.List(ctx, token)
}

// GetVenue returns a venue with its sections. The venue and its sections are fetched
// concurrently; a failed section lookup leaves the venue's own Sections untouched.
func (s *CatalogService) GetVenue(ctx context.Context, token, id string) model.Result[*model.Venue] {
	var venueRes model.Result[*model.Venue]
	var sectionsRes model.Result[[]model.Section]
	util.JoinAllBestEffort(ctx, s.limit,
		func(ctx context.Context) (struct{}, error) {
			venueRes = s.b.Venues.Get(ctx, token, id)
			return struct{}{}, nil
		},
		func(ctx context.Context) (struct{}, error) {
			sectionsRes = s.b.Sections.List(ctx, token, id)
			return struct{}{}, nil
		},
	)
	if !venueRes.Success || venueRes.Data == nil {
		return orCanceled(ctx, venueRes)
	}
	if sectionsRes.Success {
		venueRes.Data.Sections = sectionsRes.Data
	} else {
		s.logger.DebugContext(ctx, "section lookup failed", "venue_id", id, "error", sectionsRes.Error)
	}
	return venueRes
}

// ListTickets returns all tickets.
func (s *CatalogService) ListTickets(ctx context.Context, token string) model.Result[[]model.Ticket] {
	return s.b.Tickets.List(ctx, token)
}

// Dashboard loads tickets and events concurrently and aggregates them.
// Tickets are required; events only supply names, so their failure is tolerated.
func (s *CatalogService) Dashboard(ctx context.Context, token string) model.Result[DashboardStats] {
	var tickets model.Result[[]model.Ticket]
	var events model.Result[[]model.Event]
	util.JoinAllBestEffort(ctx, s.limit,
		func(ctx context.Context) (struct{}, error) {
			tickets = s.b.Tickets.List(ctx, token)
			return struct{}{}, nil
		},
		func(ctx context.Context) (struct{}, error) {
			events = s.b.Events.List(ctx, token)
			return struct{}{}, nil
		},
	)
	if !tickets.Success {
		tickets = orCanceled(ctx, tickets)
		res := model.Fail[DashboardStats](tickets.Error)
		res.Status = tickets.Status
		return res
	}
	if !events.Success {
		s.logger.DebugContext(ctx, "event lookup for dashboard failed", "error", events.Error)
	}
	return model.OK(BuildDashboardStats(tickets.Data, events.Data))
}

// orCanceled fills in an error for a call that never ran because ctx was done.
func orCanceled[T any](ctx context.Context, res model.Result[T]) model.Result[T] {
	if res.Success || res.Error != "" {
		return res
	}
	if err := ctx.Err(); err != nil {
		return model.Fail[T](err.Error())
	}
	return model.Fail[T]("An unknown error occurred")
}
