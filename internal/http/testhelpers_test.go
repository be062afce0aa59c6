package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/target/boxoffice/internal/adapters/memstore"
	"github.com/target/boxoffice/internal/domain/model"
	mockauth "github.com/target/boxoffice/internal/mocks/auth"
	"github.com/target/boxoffice/internal/service"
	"github.com/target/boxoffice/internal/testutil"
)

// TemplatePathFromTest is the template directory relative to this package.
const TemplatePathFromTest = "../../" + TemplatePathFromRoot

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// ContainsAll checks if a string contains all the given substrings.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// fakeAPIs is an in-memory backend for every resource port.
// Fail maps a resource name ("events", "venues", "sections", "tickets", "foods", "upload")
// to an error message that resource returns with status 500.
type fakeAPIs struct {
	mu       sync.Mutex
	events   []model.Event
	venues   []model.Venue
	sections map[string][]model.Section
	tickets  []model.Ticket
	foods    []model.FoodItem
	fail     map[string]string
	tokens   []string
	nextID   int
}

func newFakeAPIs() *fakeAPIs {
	return &fakeAPIs{
		events: []model.Event{
			testutil.NewEvent("evt-1").WithName("Jazz Night").WithVenue("ven-1").Build(),
			testutil.NewEvent("evt-2").WithName("Rock Fest").WithVenue("ven-2").Build(),
		},
		venues: []model.Venue{
			{ID: "ven-1", Name: "Blue Hall", City: "Austin", Capacity: 300},
			{ID: "ven-2", Name: "Red Arena", City: "Dallas", Capacity: 5000},
		},
		sections: map[string][]model.Section{
			"ven-1": {{ID: "sec-1", VenueID: "ven-1", Name: "Floor", Capacity: 200}},
		},
		tickets: []model.Ticket{
			{ID: "t-1", EventID: "evt-1", Price: 40, Status: model.TicketStatusSold},
			{ID: "t-2", EventID: "evt-1", Price: 40, Status: model.TicketStatusReserved},
			{ID: "t-3", EventID: "evt-2", Price: 90, Status: model.TicketStatusCancelled},
		},
		foods: []model.FoodItem{{ID: "food-1", Name: "Nachos", Price: 8.5, Available: true}},
		fail:  map[string]string{},
	}
}

func (f *fakeAPIs) Backends() service.Backends {
	return service.Backends{
		Events:   fakeEvents{f},
		Venues:   fakeVenues{f},
		Sections: fakeSections{f},
		Tickets:  fakeTickets{f},
		Foods:    fakeFoods{f},
		Upload:   fakeUpload{f},
	}
}

// Fail makes every call to resource fail until cleared with an empty message.
func (f *fakeAPIs) Fail(resource, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg == "" {
		delete(f.fail, resource)
		return
	}
	f.fail[resource] = msg
}

// Tokens returns the bearer tokens seen so far.
func (f *fakeAPIs) Tokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tokens...)
}

// begin records the token and reports the configured failure, if any.
func begin[T any](f *fakeAPIs, resource, token string) (model.Result[T], bool) {
	f.tokens = append(f.tokens, token)
	if msg, ok := f.fail[resource]; ok {
		res := model.Fail[T](msg)
		res.Status = http.StatusInternalServerError
		return res, false
	}
	return model.Result[T]{}, true
}

func notFound[T any](what string) model.Result[T] {
	res := model.Fail[T](what + " not found")
	res.Status = http.StatusNotFound
	return res
}

func (f *fakeAPIs) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-new-%d", prefix, f.nextID)
}

type fakeEvents struct{ f *fakeAPIs }

func (e fakeEvents) List(_ context.Context, token string) model.Result[[]model.Event] {
	e.f.mu.Lock()
	defer e.f.mu.Unlock()
	if res, ok := begin[[]model.Event](e.f, "events", token); !ok {
		return res
	}
	return model.OK(append([]model.Event(nil), e.f.events...))
}

func (e fakeEvents) Get(_ context.Context, token, id string) model.Result[*model.Event] {
	e.f.mu.Lock()
	defer e.f.mu.Unlock()
	if res, ok := begin[*model.Event](e.f, "events", token); !ok {
		return res
	}
	for _, ev := range e.f.events {
		if ev.ID == id {
			return model.OK(&ev)
		}
	}
	return notFound[*model.Event]("Event")
}

func (e fakeEvents) Create(_ context.Context, token string, in model.EventInput) model.Result[*model.Event] {
	e.f.mu.Lock()
	defer e.f.mu.Unlock()
	if res, ok := begin[*model.Event](e.f, "events", token); !ok {
		return res
	}
	ev := model.Event{
		ID:         e.f.id("evt"),
		Name:       in.Name,
		Category:   in.Category,
		VenueID:    in.VenueID,
		StartsAt:   in.StartsAt,
		EndsAt:     in.EndsAt,
		Status:     in.Status,
		PriceTiers: in.PriceTiers,
	}
	e.f.events = append(e.f.events, ev)
	return model.OK(&ev)
}

func (e fakeEvents) Update(_ context.Context, token, id string, in model.EventInput) model.Result[*model.Event] {
	e.f.mu.Lock()
	defer e.f.mu.Unlock()
	if res, ok := begin[*model.Event](e.f, "events", token); !ok {
		return res
	}
	for i := range e.f.events {
		if e.f.events[i].ID == id {
			e.f.events[i].Name = in.Name
			e.f.events[i].Category = in.Category
			ev := e.f.events[i]
			return model.OK(&ev)
		}
	}
	return notFound[*model.Event]("Event")
}

func (e fakeEvents) Delete(_ context.Context, token, id string) model.Result[struct{}] {
	e.f.mu.Lock()
	defer e.f.mu.Unlock()
	if res, ok := begin[struct{}](e.f, "events", token); !ok {
		return res
	}
	for i := range e.f.events {
		if e.f.events[i].ID == id {
			e.f.events = append(e.f.events[:i], e.f.events[i+1:]...)
			return model.OK(struct{}{})
		}
	}
	return notFound[struct{}]("Event")
}

type fakeVenues struct{ f *fakeAPIs }

func (v fakeVenues) List(_ context.Context, token string) model.Result[[]model.Venue] {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()
	if res, ok := begin[[]model.Venue](v.f, "venues", token); !ok {
		return res
	}
	return model.OK(append([]model.Venue(nil), v.f.venues...))
}

func (v fakeVenues) Get(_ context.Context, token, id string) model.Result[*model.Venue] {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()
	if res, ok := begin[*model.Venue](v.f, "venues", token); !ok {
		return res
	}
	for _, ven := range v.f.venues {
		if ven.ID == id {
			return model.OK(&ven)
		}
	}
	return notFound[*model.Venue]("Venue")
}

func (v fakeVenues) Create(_ context.Context, token string, in model.VenueInput) model.Result[*model.Venue] {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()
	if res, ok := begin[*model.Venue](v.f, "venues", token); !ok {
		return res
	}
	ven := model.Venue{ID: v.f.id("ven"), Name: in.Name, City: in.City, Address: in.Address, Capacity: in.Capacity}
	v.f.venues = append(v.f.venues, ven)
	return model.OK(&ven)
}

func (v fakeVenues) Update(_ context.Context, token, id string, in model.VenueInput) model.Result[*model.Venue] {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()
	if res, ok := begin[*model.Venue](v.f, "venues", token); !ok {
		return res
	}
	for i := range v.f.venues {
		if v.f.venues[i].ID == id {
			v.f.venues[i].Name = in.Name
			ven := v.f.venues[i]
			return model.OK(&ven)
		}
	}
	return notFound[*model.Venue]("Venue")
}

func (v fakeVenues) Delete(_ context.Context, token, id string) model.Result[struct{}] {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()
	if res, ok := begin[struct{}](v.f, "venues", token); !ok {
		return res
	}
	for i := range v.f.venues {
		if v.f.venues[i].ID == id {
			v.f.venues = append(v.f.venues[:i], v.f.venues[i+1:]...)
			return model.OK(struct{}{})
		}
	}
	return notFound[struct{}]("Venue")
}

type fakeSections struct{ f *fakeAPIs }

func (s fakeSections) List(_ context.Context, token, venueID string) model.Result[[]model.Section] {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if res, ok := begin[[]model.Section](s.f, "sections", token); !ok {
		return res
	}
	return model.OK(append([]model.Section{}, s.f.sections[venueID]...))
}

func (s fakeSections) Create(
	_ context.Context,
	token, venueID string,
	in model.SectionInput,
) model.Result[*model.Section] {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if res, ok := begin[*model.Section](s.f, "sections", token); !ok {
		return res
	}
	sec := model.Section{ID: s.f.id("sec"), VenueID: venueID, Name: in.Name, Capacity: in.Capacity}
	s.f.sections[venueID] = append(s.f.sections[venueID], sec)
	return model.OK(&sec)
}

func (s fakeSections) Update(
	_ context.Context,
	token, venueID, id string,
	in model.SectionInput,
) model.Result[*model.Section] {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if res, ok := begin[*model.Section](s.f, "sections", token); !ok {
		return res
	}
	secs := s.f.sections[venueID]
	for i := range secs {
		if secs[i].ID == id {
			secs[i].Name = in.Name
			secs[i].Capacity = in.Capacity
			sec := secs[i]
			return model.OK(&sec)
		}
	}
	return notFound[*model.Section]("Section")
}

func (s fakeSections) Delete(_ context.Context, token, venueID, id string) model.Result[struct{}] {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if res, ok := begin[struct{}](s.f, "sections", token); !ok {
		return res
	}
	secs := s.f.sections[venueID]
	for i := range secs {
		if secs[i].ID == id {
			s.f.sections[venueID] = append(secs[:i], secs[i+1:]...)
			return model.OK(struct{}{})
		}
	}
	return notFound[struct{}]("Section")
}

type fakeTickets struct{ f *fakeAPIs }

func (t fakeTickets) List(_ context.Context, token string) model.Result[[]model.Ticket] {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	if res, ok := begin[[]model.Ticket](t.f, "tickets", token); !ok {
		return res
	}
	return model.OK(append([]model.Ticket(nil), t.f.tickets...))
}

func (t fakeTickets) Get(_ context.Context, token, id string) model.Result[*model.Ticket] {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	if res, ok := begin[*model.Ticket](t.f, "tickets", token); !ok {
		return res
	}
	for _, tk := range t.f.tickets {
		if tk.ID == id {
			return model.OK(&tk)
		}
	}
	return notFound[*model.Ticket]("Ticket")
}

func (t fakeTickets) UpdateStatus(
	_ context.Context,
	token, id string,
	in model.TicketStatusInput,
) model.Result[*model.Ticket] {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	if res, ok := begin[*model.Ticket](t.f, "tickets", token); !ok {
		return res
	}
	for i := range t.f.tickets {
		if t.f.tickets[i].ID == id {
			t.f.tickets[i].Status = in.Status
			tk := t.f.tickets[i]
			return model.OK(&tk)
		}
	}
	return notFound[*model.Ticket]("Ticket")
}

type fakeFoods struct{ f *fakeAPIs }

func (d fakeFoods) List(_ context.Context, token string) model.Result[[]model.FoodItem] {
	d.f.mu.Lock()
	defer d.f.mu.Unlock()
	if res, ok := begin[[]model.FoodItem](d.f, "foods", token); !ok {
		return res
	}
	return model.OK(append([]model.FoodItem(nil), d.f.foods...))
}

func (d fakeFoods) Create(_ context.Context, token string, in model.FoodItemInput) model.Result[*model.FoodItem] {
	d.f.mu.Lock()
	defer d.f.mu.Unlock()
	if res, ok := begin[*model.FoodItem](d.f, "foods", token); !ok {
		return res
	}
	item := model.FoodItem{ID: d.f.id("food"), Name: in.Name, Price: in.Price, Available: in.Available}
	d.f.foods = append(d.f.foods, item)
	return model.OK(&item)
}

func (d fakeFoods) Update(
	_ context.Context,
	token, id string,
	in model.FoodItemInput,
) model.Result[*model.FoodItem] {
	d.f.mu.Lock()
	defer d.f.mu.Unlock()
	if res, ok := begin[*model.FoodItem](d.f, "foods", token); !ok {
		return res
	}
	for i := range d.f.foods {
		if d.f.foods[i].ID == id {
			d.f.foods[i].Name = in.Name
			d.f.foods[i].Price = in.Price
			item := d.f.foods[i]
			return model.OK(&item)
		}
	}
	return notFound[*model.FoodItem]("Food item")
}

func (d fakeFoods) Delete(_ context.Context, token, id string) model.Result[struct{}] {
	d.f.mu.Lock()
	defer d.f.mu.Unlock()
	if res, ok := begin[struct{}](d.f, "foods", token); !ok {
		return res
	}
	for i := range d.f.foods {
		if d.f.foods[i].ID == id {
			d.f.foods = append(d.f.foods[:i], d.f.foods[i+1:]...)
			return model.OK(struct{}{})
		}
	}
	return notFound[struct{}]("Food item")
}

type fakeUpload struct{ f *fakeAPIs }

func (u fakeUpload) UploadImage(
	_ context.Context,
	token, filename string,
	r io.Reader,
) model.Result[*model.UploadedImage] {
	u.f.mu.Lock()
	defer u.f.mu.Unlock()
	if res, ok := begin[*model.UploadedImage](u.f, "upload", token); !ok {
		return res
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return model.Fail[*model.UploadedImage](err.Error())
	}
	return model.OK(&model.UploadedImage{URL: "https://cdn.example.com/" + filename})
}

// testApp is a fully wired router over in-memory storage and fake backends.
type testApp struct {
	Handler http.Handler
	KV      *memstore.KVStore
	Backend *mockauth.FakeBackend
	APIs    *fakeAPIs
	Auth    *service.AuthService
	Wizard  *service.EventWizard
}

func newTestApp(t *testing.T, opts ...func(*RouterServices)) *testApp {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	kv := memstore.NewKVStore()
	backend := mockauth.NewFakeBackend()
	apis := newFakeAPIs()
	b := apis.Backends()

	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Backend:  backend,
		Sessions: service.NewSessionStore(service.SessionStoreOptions{KV: kv, Logger: logger}),
		Logger:   logger,
	})
	wizard := service.NewEventWizard(service.EventWizardOptions{
		KV:     kv,
		Events: b.Events,
		Config: service.WizardConfig{Logger: logger},
	})
	catalog := service.NewCatalogService(service.CatalogServiceOptions{Backends: b, Logger: logger})

	services := RouterServices{
		Auth:    authSvc,
		Catalog: catalog,
		Wizard:  wizard,
		Logger:  logger,
	}
	for _, opt := range opts {
		opt(&services)
	}
	h := NewRouter(services)
	return &testApp{Handler: h, KV: kv, Backend: backend, APIs: apis, Auth: authSvc, Wizard: wizard}
}

// login signs in through the JSON endpoint and returns the scope cookie.
func (a *testApp) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == DefaultScopeCookieName {
			return c
		}
	}
	t.Fatal("login did not issue a scope cookie")
	return nil
}

// do sends req with the optional cookies and returns the recorder.
func (a *testApp) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}
	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, req)
	return rec
}

// browserGet builds a GET that looks like a page navigation.
func browserGet(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	return req
}

// apiRequest builds a JSON API request.
func apiRequest(method, target string, payload any) *http.Request {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			panic(err)
		}
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// decodeEnvelope decodes a {success,data,error} body.
func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) model.Result[T] {
	t.Helper()
	var res model.Result[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	return res
}
