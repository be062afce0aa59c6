package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/target/boxoffice/internal/domain/model"
	"github.com/target/boxoffice/internal/service"
)

// DefaultMaxUploadBytes caps image uploads.
const DefaultMaxUploadBytes = 10 << 20

// APIHandlers proxies the backend resources as JSON for the scope's principal.
// Every response body is the backend envelope {success, data, error}.
type APIHandlers struct {
	Catalog        CatalogReader
	Tokens         TokenSource
	MaxUploadBytes int64
	Logger         *slog.Logger
}

func (h *APIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *APIHandlers) token(r *http.Request) string {
	scope := ScopeFromContext(r.Context())
	if scope == "" || h.Tokens == nil {
		return ""
	}
	return h.Tokens.Token(r.Context(), scope)
}

// decodeInput decodes and validates a JSON payload, writing the error response on failure.
func decodeInput[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var in T
	if !DecodeJSON(w, r, &in) {
		return in, false
	}
	if err := service.ValidateInput(in); err != nil {
		writeAppError(w, err)
		return in, false
	}
	return in, true
}

func notConfigured(w http.ResponseWriter, what string) {
	WriteError(w, ErrorParams{
		Code:    http.StatusServiceUnavailable,
		ErrCode: "not_configured",
		Err:     errors.New(what + " backend not configured"),
	})
}

// ListEvents handles GET /api/events?q=.
func (h *APIHandlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	res := h.Catalog.ListEvents(r.Context(), h.token(r))
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" && res.Success {
		res.Data = service.FilterEvents(res.Data, q)
	}
	writeResult(w, http.StatusOK, res)
}

// GetEvent handles GET /api/events/{id}.
func (h *APIHandlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	writeResult(w, http.StatusOK, h.Catalog.GetEvent(r.Context(), h.token(r), r.PathValue("id")))
}

// CreateEvent handles POST /api/events.
func (h *APIHandlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput[model.EventInput](w, r)
	if !ok {
		return
	}
	writeResult(w, http.StatusCreated, h.Catalog.Backends().Events.Create(r.Context(), h.token(r), in))
}

// UpdateEvent handles PUT /api/events/{id}.
func (h *APIHandlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput[model.EventInput](w, r)
	if !ok {
		return
	}
	writeResult(w, http.StatusOK, h.Catalog.Backends().Events.Update(r.Context(), h.token(r), r.PathValue("id"), in))
}

// DeleteEvent handles DELETE /api/events/{id}.
func (h *APIHandlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	writeResult(w, http.StatusOK, h.Catalog.Backends().Events.Delete(r.Context(), h.token(r), r.PathValue("id")))
}

// ListVenues handles GET /api/venues.
func (h *APIHandlers) ListVenues(w http.ResponseWriter, r *http.Request) {
	writeResult(w, http.StatusOK, h.Catalog.ListVenues(r.Context(), h.token(r)))
}

// GetVenue handles GET /api/venues/{id}; sections are included when they could be loaded.
func (h *APIHandlers) GetVenue(w http.ResponseWriter, r *http.Request) {
	writeResult(w, http.StatusOK, h.Catalog.GetVenue(r.Context(), h.token(r), r.PathValue("id")))
}

// CreateVenue handles POST /api/venues.
func (h *APIHandlers) CreateVenue(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput[model.VenueInput](w, r)
	if !ok {
		return
	}
	writeResult(w, http.StatusCreated, h.Catalog.Backends().Venues.Create(r.Context(), h.token(r), in))
}

// UpdateVenue handles PUT /api/venues/{id}.
func (h *APIHandlers) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput[model.VenueInput](w, r)
	if !ok {
		return
	}
	writeResult(w, http.StatusOK, h.Catalog.Backends().Venues.Update(r.Context(), h.token(r), r.PathValue("id"), in))
}

// DeleteVenue handles DELETE /api/venues/{id}.
func (h *APIHandlers) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	writeResult(w, http.StatusOK, h.Catalog.Backends().Venues.Delete(r.Context(), h.token(r), r.PathValue("id")))
}

// ListSections handles GET /api/venues/{id}/sections.
func (h *APIHandlers) ListSections(w http.ResponseWriter, r *http.Request) {
	writeResult(w, http.StatusOK, h.Catalog.Backends().Sections.List(r.Context(), h.token(r), r.PathValue("id")))
}

// CreateSection handles POST /api/venues/{id}/sections.
func (h *APIHandlers) CreateSection(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput[model.SectionInput](w, r)
	if !ok {
		return
	}
	writeResult(w, http.StatusCreated,
		h.Catalog.Backends().Sections.Create(r.Context(), h.token(r), r.PathValue("id"), in))
}

// UpdateSection handles PUT /api/venues/{id}/sections/{sid}.
func (h *APIHandlers) UpdateSection(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput[model.SectionInput](w, r)
	if !ok {
		return
	}
	writeResult(w, http.StatusOK,
		h.Catalog.Backends().Sections.Update(r.Context(), h.token(r), r.PathValue("id"), r.PathValue("sid"), in))
}

// DeleteSection handles DELETE /api/venues/{id}/sections/{sid}.
func (h *APIHandlers) DeleteSection(w http.ResponseWriter, r *http.Request) {
	writeResult(w, http.StatusOK,
		h.Catalog.Backends().Sections.Delete(r.Context(), h.token(r), r.PathValue("id"), r.PathValue("sid")))
}

// ListTickets handles GET /api/tickets?status=.
func (h *APIHandlers) ListTickets(w http.ResponseWriter, r *http.Request) {
	res := h.Catalog.ListTickets(r.Context(), h.token(r))
	if res.Success {
		q := r.URL.Query()
		res.Data = service.FilterTickets(res.Data, q.Get("status"), q.Get("event_id"))
	}
	writeResult(w, http.StatusOK, res)
}

// GetTicket handles GET /api/tickets/{id}.
func (h *APIHandlers) GetTicket(w http.ResponseWriter, r *http.Request) {
	writeResult(w, http.StatusOK, h.Catalog.Backends().Tickets.Get(r.Context(), h.token(r), r.PathValue("id")))
}

// UpdateTicketStatus handles PATCH /api/tickets/{id}/status.
func (h *APIHandlers) UpdateTicketStatus(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput[model.TicketStatusInput](w, r)
	if !ok {
		return
	}
	writeResult(w, http.StatusOK,
		h.Catalog.Backends().Tickets.UpdateStatus(r.Context(), h.token(r), r.PathValue("id"), in))
}

// ListFoods handles GET /api/foods.
func (h *APIHandlers) ListFoods(w http.ResponseWriter, r *http.Request) {
	foods := h.Catalog.Backends().Foods
	if foods == nil {
		notConfigured(w, "menu")
		return
	}
	writeResult(w, http.StatusOK, foods.List(r.Context(), h.token(r)))
}

// CreateFood handles POST /api/foods.
func (h *APIHandlers) CreateFood(w http.ResponseWriter, r *http.Request) {
	foods := h.Catalog.Backends().Foods
	if foods == nil {
		notConfigured(w, "menu")
		return
	}
	in, ok := decodeInput[model.FoodItemInput](w, r)
	if !ok {
		return
	}
	writeResult(w, http.StatusCreated, foods.Create(r.Context(), h.token(r), in))
}

// UpdateFood handles PUT /api/foods/{id}.
func (h *APIHandlers) UpdateFood(w http.ResponseWriter, r *http.Request) {
	foods := h.Catalog.Backends().Foods
	if foods == nil {
		notConfigured(w, "menu")
		return
	}
	in, ok := decodeInput[model.FoodItemInput](w, r)
	if !ok {
		return
	}
	writeResult(w, http.StatusOK, foods.Update(r.Context(), h.token(r), r.PathValue("id"), in))
}

// DeleteFood handles DELETE /api/foods/{id}.
func (h *APIHandlers) DeleteFood(w http.ResponseWriter, r *http.Request) {
	foods := h.Catalog.Backends().Foods
	if foods == nil {
		notConfigured(w, "menu")
		return
	}
	writeResult(w, http.StatusOK, foods.Delete(r.Context(), h.token(r), r.PathValue("id")))
}

// UploadImage handles POST /api/upload/image with a multipart "image" field.
func (h *APIHandlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	upload := h.Catalog.Backends().Upload
	if upload == nil {
		notConfigured(w, "upload")
		return
	}
	limit := h.MaxUploadBytes
	if limit <= 0 {
		limit = DefaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_upload", Err: err})
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_image", Err: err})
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			h.logger().WarnContext(r.Context(), "close uploaded file", "error", cerr)
		}
	}()
	writeResult(w, http.StatusCreated, upload.UploadImage(r.Context(), h.token(r), header.Filename, file))
}

// Stats handles GET /api/stats.
func (h *APIHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	writeResult(w, http.StatusOK, h.Catalog.Dashboard(r.Context(), h.token(r)))
}
