package httpx

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/boxoffice/internal/domain/model"
	"github.com/target/boxoffice/internal/service"
)

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func validEventPayload() map[string]any {
	start := time.Date(2026, 12, 31, 20, 0, 0, 0, time.UTC)
	return map[string]any{
		"name":      "New Year Gala",
		"category":  "party",
		"venue_id":  "ven-1",
		"starts_at": start,
		"ends_at":   start.Add(4 * time.Hour),
	}
}

func TestAPI_RequiresSession(t *testing.T) {
	app := newTestApp(t)

	for _, target := range []string{"/api/events", "/api/venues", "/api/tickets", "/api/foods", "/api/stats"} {
		rec := app.do(apiRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		body := decodeErrorBody(t, rec)
		assert.Equal(t, "authentication_required", body["error"], target)
	}
	assert.Empty(t, app.APIs.Tokens(), "no backend call without a session")
}

func TestAPI_Events(t *testing.T) {
	app := newTestApp(t)
	scope := app.login(t, "admin@example.com", "admin-pass")

	t.Run("list joins venues", func(t *testing.T) {
		rec := app.do(apiRequest(http.MethodGet, "/api/events", nil), scope)
		require.Equal(t, http.StatusOK, rec.Code)
		res := decodeEnvelope[[]model.Event](t, rec)
		require.True(t, res.Success)
		require.Len(t, res.Data, 2)
		require.NotNil(t, res.Data[0].Venue)
		assert.Equal(t, "Blue Hall", res.Data[0].Venue.Name)
	})

	t.Run("search", func(t *testing.T) {
		rec := app.do(apiRequest(http.MethodGet, "/api/events?q=jazz", nil), scope)
		res := decodeEnvelope[[]model.Event](t, rec)
		require.Len(t, res.Data, 1)
		assert.Equal(t, "evt-1", res.Data[0].ID)
	})

	t.Run("get missing keeps backend status", func(t *testing.T) {
		rec := app.do(apiRequest(http.MethodGet, "/api/events/nope", nil), scope)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		res := decodeEnvelope[*model.Event](t, rec)
		assert.False(t, res.Success)
		assert.Equal(t, "Event not found", res.Error)
	})

	t.Run("create", func(t *testing.T) {
		rec := app.do(apiRequest(http.MethodPost, "/api/events", validEventPayload()), scope)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		res := decodeEnvelope[*model.Event](t, rec)
		require.True(t, res.Success)
		assert.Equal(t, "New Year Gala", res.Data.Name)
		assert.NotEmpty(t, res.Data.ID)
	})

	t.Run("create validates", func(t *testing.T) {
		payload := validEventPayload()
		payload["name"] = ""
		rec := app.do(apiRequest(http.MethodPost, "/api/events", payload), scope)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "name", decodeErrorBody(t, rec)["field"])
	})

	t.Run("ends before starts", func(t *testing.T) {
		payload := validEventPayload()
		payload["ends_at"] = payload["starts_at"].(time.Time).Add(-time.Hour)
		rec := app.do(apiRequest(http.MethodPost, "/api/events", payload), scope)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "ends_at", decodeErrorBody(t, rec)["field"])
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		rec := app.do(req, scope)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update and delete", func(t *testing.T) {
		payload := validEventPayload()
		payload["name"] = "Jazz Night Reprise"
		rec := app.do(apiRequest(http.MethodPut, "/api/events/evt-1", payload), scope)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Jazz Night Reprise", decodeEnvelope[*model.Event](t, rec).Data.Name)

		rec = app.do(apiRequest(http.MethodDelete, "/api/events/evt-1", nil), scope)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decodeEnvelope[struct{}](t, rec).Success)

		rec = app.do(apiRequest(http.MethodDelete, "/api/events/evt-1", nil), scope)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAPI_StaffIsReadOnly(t *testing.T) {
	app := newTestApp(t)
	scope := app.login(t, "staff@example.com", "staff-pass")

	rec := app.do(apiRequest(http.MethodGet, "/api/venues", nil), scope)
	require.Equal(t, http.StatusOK, rec.Code)

	mutations := []*http.Request{
		apiRequest(http.MethodPost, "/api/events", validEventPayload()),
		apiRequest(http.MethodDelete, "/api/venues/ven-1", nil),
		apiRequest(http.MethodPatch, "/api/tickets/t-1/status", map[string]string{"status": "cancelled"}),
		apiRequest(http.MethodPost, "/api/foods", map[string]any{"name": "Fries", "price": 4}),
	}
	before := len(app.APIs.Tokens())
	for _, req := range mutations {
		target := req.URL.Path
		rec := app.do(req, scope)
		assert.Equal(t, http.StatusForbidden, rec.Code, target)
		assert.Equal(t, "insufficient_permissions", decodeErrorBody(t, rec)["error"], target)
	}
	assert.Len(t, app.APIs.Tokens(), before, "denied mutations never reach the backend")
}

func TestAPI_VenuesAndSections(t *testing.T) {
	app := newTestApp(t)
	scope := app.login(t, "admin@example.com", "admin-pass")

	rec := app.do(apiRequest(http.MethodGet, "/api/venues/ven-1", nil), scope)
	require.Equal(t, http.StatusOK, rec.Code)
	venue := decodeEnvelope[*model.Venue](t, rec).Data
	require.Len(t, venue.Sections, 1)
	assert.Equal(t, "Floor", venue.Sections[0].Name)

	rec = app.do(apiRequest(http.MethodPost, "/api/venues", map[string]any{"name": "Green Room", "capacity": 80}), scope)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeEnvelope[*model.Venue](t, rec).Data
	assert.Equal(t, "Green Room", created.Name)

	rec = app.do(apiRequest(http.MethodPost, "/api/venues/ven-1/sections",
		map[string]any{"name": "Balcony", "capacity": 100}), scope)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	section := decodeEnvelope[*model.Section](t, rec).Data
	assert.Equal(t, "ven-1", section.VenueID)

	rec = app.do(apiRequest(http.MethodPost, "/api/venues/ven-1/sections",
		map[string]any{"name": "Pit", "capacity": 0}), scope)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "capacity", decodeErrorBody(t, rec)["field"])

	rec = app.do(apiRequest(http.MethodGet, "/api/venues/ven-1/sections", nil), scope)
	assert.Len(t, decodeEnvelope[[]model.Section](t, rec).Data, 2)

	rec = app.do(apiRequest(http.MethodDelete, "/api/venues/ven-1/sections/sec-1", nil), scope)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_Tickets(t *testing.T) {
	app := newTestApp(t)
	scope := app.login(t, "admin@example.com", "admin-pass")

	rec := app.do(apiRequest(http.MethodGet, "/api/tickets?status=SOLD", nil), scope)
	require.Equal(t, http.StatusOK, rec.Code)
	tickets := decodeEnvelope[[]model.Ticket](t, rec).Data
	require.Len(t, tickets, 1)
	assert.Equal(t, "t-1", tickets[0].ID)

	rec = app.do(apiRequest(http.MethodPatch, "/api/tickets/t-2/status", map[string]string{"status": "sold"}), scope)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.TicketStatusSold, decodeEnvelope[*model.Ticket](t, rec).Data.Status)

	rec = app.do(apiRequest(http.MethodPatch, "/api/tickets/t-2/status", map[string]string{"status": "lost"}), scope)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "status", decodeErrorBody(t, rec)["field"])

	rec = app.do(apiRequest(http.MethodGet, "/api/tickets/t-2", nil), scope)
	assert.Equal(t, model.TicketStatusSold, decodeEnvelope[*model.Ticket](t, rec).Data.Status)
}

func TestAPI_Foods(t *testing.T) {
	app := newTestApp(t)
	scope := app.login(t, "admin@example.com", "admin-pass")

	rec := app.do(apiRequest(http.MethodPost, "/api/foods", map[string]any{"name": "Pretzel", "price": 5.5, "available": true}), scope)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decodeEnvelope[*model.FoodItem](t, rec).Data

	rec = app.do(apiRequest(http.MethodPut, "/api/foods/"+item.ID, map[string]any{"name": "Giant Pretzel", "price": 7}), scope)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 7.0, decodeEnvelope[*model.FoodItem](t, rec).Data.Price, 0.001)

	rec = app.do(apiRequest(http.MethodPost, "/api/foods", map[string]any{"name": "Free lunch", "price": -1}), scope)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(apiRequest(http.MethodDelete, "/api/foods/food-1", nil), scope)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(apiRequest(http.MethodGet, "/api/foods", nil), scope)
	foods := decodeEnvelope[[]model.FoodItem](t, rec).Data
	require.Len(t, foods, 1)
	assert.Equal(t, "Giant Pretzel", foods[0].Name)
}

func TestAPI_FoodsNotConfigured(t *testing.T) {
	apis := newFakeAPIs()
	b := apis.Backends()
	b.Foods = nil
	h := &APIHandlers{Catalog: service.NewCatalogService(service.CatalogServiceOptions{Backends: b})}

	rec := httptest.NewRecorder()
	h.ListFoods(rec, httptest.NewRequest(http.MethodGet, "/api/foods", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not_configured", decodeErrorBody(t, rec)["error"])
}

func multipartImage(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return req
}

func TestAPI_UploadImage(t *testing.T) {
	app := newTestApp(t)
	scope := app.login(t, "admin@example.com", "admin-pass")

	t.Run("success", func(t *testing.T) {
		rec := app.do(multipartImage(t, "image", "poster.png", []byte("\x89PNG fake")), scope)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		res := decodeEnvelope[*model.UploadedImage](t, rec)
		assert.Equal(t, "https://cdn.example.com/poster.png", res.Data.URL)
	})

	t.Run("wrong field", func(t *testing.T) {
		rec := app.do(multipartImage(t, "file", "poster.png", []byte("x")), scope)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "missing_image", decodeErrorBody(t, rec)["error"])
	})

	t.Run("not multipart", func(t *testing.T) {
		rec := app.do(apiRequest(http.MethodPost, "/api/upload/image", map[string]string{"image": "x"}), scope)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_upload", decodeErrorBody(t, rec)["error"])
	})
}

func TestAPI_UploadImageTooLarge(t *testing.T) {
	apis := newFakeAPIs()
	h := &APIHandlers{
		Catalog:        service.NewCatalogService(service.CatalogServiceOptions{Backends: apis.Backends()}),
		MaxUploadBytes: 512,
	}
	rec := httptest.NewRecorder()
	h.UploadImage(rec, multipartImage(t, "image", "big.png", bytes.Repeat([]byte("a"), 4096)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, apis.Tokens())
}

func TestAPI_Stats(t *testing.T) {
	app := newTestApp(t)
	scope := app.login(t, "staff@example.com", "staff-pass")

	rec := app.do(apiRequest(http.MethodGet, "/api/stats", nil), scope)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeEnvelope[service.DashboardStats](t, rec).Data
	assert.Equal(t, 3, stats.Totals.TotalTickets)
	assert.Equal(t, 1, stats.Totals.Sold)
	assert.NotEmpty(t, stats.ByEvent)
}

func TestAPI_BackendFailurePassesThrough(t *testing.T) {
	app := newTestApp(t)
	scope := app.login(t, "staff@example.com", "staff-pass")
	app.APIs.Fail("tickets", "tickets unavailable")

	rec := app.do(apiRequest(http.MethodGet, "/api/tickets", nil), scope)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	res := decodeEnvelope[[]model.Ticket](t, rec)
	assert.False(t, res.Success)
	assert.Equal(t, "tickets unavailable", res.Error)

	// Stats need tickets, so they fail with the same message.
	rec = app.do(apiRequest(http.MethodGet, "/api/stats", nil), scope)
	assert.False(t, decodeEnvelope[service.DashboardStats](t, rec).Success)
}
