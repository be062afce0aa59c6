package httpx

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/target/boxoffice/internal/domain/model"
	apperrors "github.com/target/boxoffice/internal/errors"
	"github.com/target/boxoffice/internal/service"
)

// wizardInputLayout is the layout of datetime-local inputs.
const wizardInputLayout = "2006-01-02T15:04"

//nolint:gochecknoglobals // static read-only step labels
var wizardStepLabels = [service.WizardSteps]string{"Basics", "Schedule", "Venue", "Pricing", "Review"}

// WizardStep is one entry of the wizard's step list.
type WizardStep struct {
	Number  int
	Label   string
	Done    bool
	Enabled bool
}

// WizardSection is a venue section offered in step 3.
type WizardSection struct {
	ID       string
	Name     string
	Capacity int
	Selected bool
}

// WizardTier is one row of the pricing form.
type WizardTier struct {
	SectionID   string
	SectionName string
	Price       string
	Capacity    string
}

// WizardStart sends the user to the first incomplete step.
// GET /events/new.
func (h *UIHandlers) WizardStart(w http.ResponseWriter, r *http.Request) {
	d, err := h.Wizard.Draft(r.Context(), ScopeFromContext(r.Context()))
	if err != nil {
		h.wizardFailure(w, r, err)
		return
	}
	navigate(w, r, wizardStepPath(d.NextStep()))
}

// WizardStepForm renders one step. Steps whose predecessors are incomplete redirect
// to the first incomplete step.
// GET /events/new/step/{step}.
func (h *UIHandlers) WizardStepForm(w http.ResponseWriter, r *http.Request) {
	step, ok := parseWizardStep(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	d, err := h.Wizard.Draft(r.Context(), ScopeFromContext(r.Context()))
	if err != nil {
		h.wizardFailure(w, r, err)
		return
	}
	if !d.CanEnter(step) {
		navigate(w, r, wizardStepPath(d.NextStep()))
		return
	}
	h.renderWizard(w, r, wizardView{Draft: d, Step: step, VenueID: r.URL.Query().Get("venue_id")})
}

// WizardStepSubmit accepts one step and moves to the next. The final step creates the event.
// POST /events/new/step/{step}.
func (h *UIHandlers) WizardStepSubmit(w http.ResponseWriter, r *http.Request) {
	step, ok := parseWizardStep(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderWizard(w, r, wizardView{Step: step, Err: apperrors.Validation("Invalid form submission.")})
		return
	}
	if step == service.StepReview {
		h.wizardSubmit(w, r)
		return
	}

	ctx := r.Context()
	scope := ScopeFromContext(ctx)
	var (
		d   *service.WizardDraft
		err error
	)
	// shown keeps the submitted values so a rejected form is re-rendered as typed.
	shown := func(d *service.WizardDraft) *service.WizardDraft { return d }
	switch step {
	case service.StepBasics:
		in := service.WizardBasics{
			Name:        r.PostFormValue("name"),
			Description: strings.TrimSpace(r.PostFormValue("description")),
			Category:    r.PostFormValue("category"),
		}
		d, err = h.Wizard.SaveBasics(ctx, scope, in)
		shown = func(d *service.WizardDraft) *service.WizardDraft { c := *d; c.Basics = in; return &c }
	case service.StepSchedule:
		in := service.WizardSchedule{
			StartsAt: parseInputTime(r.PostFormValue("starts_at")),
			EndsAt:   parseInputTime(r.PostFormValue("ends_at")),
		}
		d, err = h.Wizard.SaveSchedule(ctx, scope, in)
		shown = func(d *service.WizardDraft) *service.WizardDraft { c := *d; c.Schedule = in; return &c }
	case service.StepVenue:
		in := service.WizardVenue{
			VenueID:    strings.TrimSpace(r.PostFormValue("venue_id")),
			SectionIDs: formValues(r, "section_ids"),
		}
		d, err = h.Wizard.SaveVenue(ctx, scope, in)
		shown = func(d *service.WizardDraft) *service.WizardDraft { c := *d; c.Venue = in; return &c }
	case service.StepPricing:
		in := parsePricing(r)
		d, err = h.Wizard.SavePricing(ctx, scope, in)
		shown = func(d *service.WizardDraft) *service.WizardDraft { c := *d; c.Pricing = in; return &c }
	}

	if err != nil {
		if d == nil {
			h.wizardFailure(w, r, err)
			return
		}
		if apperrors.GetField(err) == "step" {
			navigate(w, r, wizardStepPath(d.NextStep()))
			return
		}
		h.renderWizard(w, r, wizardView{Draft: shown(d), Step: step, Err: err})
		return
	}
	navigate(w, r, wizardStepPath(step+1))
}

func (h *UIHandlers) wizardSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope := ScopeFromContext(ctx)
	res, err := h.Wizard.Submit(ctx, scope, h.token(r))
	if err != nil {
		if apperrors.GetField(err) == "step" {
			if d, derr := h.Wizard.Draft(ctx, scope); derr == nil {
				navigate(w, r, wizardStepPath(d.NextStep()))
				return
			}
		}
		h.wizardFailure(w, r, err)
		return
	}
	if !res.Success {
		d, derr := h.Wizard.Draft(ctx, scope)
		if derr != nil {
			h.wizardFailure(w, r, derr)
			return
		}
		h.renderWizard(w, r, wizardView{Draft: d, Step: service.StepReview, Err: resultError(res)})
		return
	}
	if res.Data != nil && res.Data.ID != "" {
		h.logger().InfoContext(ctx, "event created", "event_id", res.Data.ID)
		navigate(w, r, "/events/"+res.Data.ID)
		return
	}
	navigate(w, r, "/events")
}

// WizardReset discards the draft.
// POST /events/new/reset.
func (h *UIHandlers) WizardReset(w http.ResponseWriter, r *http.Request) {
	if err := h.Wizard.Reset(r.Context(), ScopeFromContext(r.Context())); err != nil {
		h.wizardFailure(w, r, err)
		return
	}
	navigate(w, r, wizardStepPath(service.StepBasics))
}

type wizardView struct {
	Draft   *service.WizardDraft
	Step    int
	VenueID string
	Err     error
}

func (h *UIHandlers) renderWizard(w http.ResponseWriter, r *http.Request, v wizardView) {
	ctx := r.Context()
	if v.Draft == nil {
		d, err := h.Wizard.Draft(ctx, ScopeFromContext(ctx))
		if err != nil {
			h.wizardFailure(w, r, err)
			return
		}
		v.Draft = d
	}
	data := basePageData(r, PageMeta{
		Title:       "Box Office - New event",
		PageTitle:   "New event: " + wizardStepLabels[v.Step-1],
		CurrentPage: PageWizard,
	})
	data["Step"] = v.Step
	data["Draft"] = v.Draft
	data["Steps"] = wizardSteps(v.Draft)

	venueID := v.VenueID
	if venueID == "" {
		venueID = v.Draft.Venue.VenueID
	}
	data["VenueID"] = venueID

	switch v.Step {
	case service.StepVenue:
		h.loadVenueChoices(ctx, r, data, venueID, v.Draft.Venue.SectionIDs)
	case service.StepPricing:
		data["Tiers"] = h.pricingRows(ctx, r, v.Draft)
	}

	if v.Err == nil {
		h.renderDashboardPage(w, r, data)
		return
	}
	RenderError(ErrorOpts{
		W:      w,
		R:      r,
		Err:    v.Err,
		Data:   data,
		Render: h.renderDashboardPage,
	})
}

func wizardSteps(d *service.WizardDraft) []WizardStep {
	steps := make([]WizardStep, 0, service.WizardSteps)
	for i, label := range wizardStepLabels {
		n := i + 1
		steps = append(steps, WizardStep{Number: n, Label: label, Done: d.Completed >= n, Enabled: d.CanEnter(n)})
	}
	return steps
}

// loadVenueChoices fills the venue select and the sections of the chosen venue.
// Lookup failures leave the lists empty and show a banner.
func (h *UIHandlers) loadVenueChoices(
	ctx context.Context,
	r *http.Request,
	data map[string]any,
	venueID string,
	selected []string,
) {
	tok := h.token(r)
	data["Venues"] = []model.Venue{}
	data["Sections"] = []WizardSection{}
	venues := h.Catalog.ListVenues(ctx, tok)
	if err := resultError(venues); err != nil {
		markPageError(data, err)
		return
	}
	data["Venues"] = venues.Data
	if venueID == "" {
		return
	}
	sections := h.Catalog.Backends().Sections.List(ctx, tok, venueID)
	if err := resultError(sections); err != nil {
		markPageError(data, err)
		return
	}
	rows := make([]WizardSection, 0, len(sections.Data))
	for _, s := range sections.Data {
		rows = append(rows, WizardSection{
			ID:       s.ID,
			Name:     s.Name,
			Capacity: s.Capacity,
			Selected: slices.Contains(selected, s.ID),
		})
	}
	data["Sections"] = rows
}

// pricingRows lists one row per selected section, prefilled from existing tiers.
// Section names fall back to ids when the venue's sections cannot be loaded.
func (h *UIHandlers) pricingRows(ctx context.Context, r *http.Request, d *service.WizardDraft) []WizardTier {
	names := map[string]string{}
	if sections := h.Catalog.Backends().Sections.List(ctx, h.token(r), d.Venue.VenueID); sections.Success {
		for _, s := range sections.Data {
			names[s.ID] = s.Name
		}
	}
	tiers := map[string]model.PriceTier{}
	for _, t := range d.Pricing.Tiers {
		tiers[t.SectionID] = t
	}
	rows := make([]WizardTier, 0, len(d.Venue.SectionIDs))
	for _, id := range d.Venue.SectionIDs {
		row := WizardTier{SectionID: id, SectionName: names[id]}
		if row.SectionName == "" {
			row.SectionName = id
		}
		if t, ok := tiers[id]; ok {
			row.Price = strconv.FormatFloat(t.Price, 'f', 2, 64)
			row.Capacity = strconv.Itoa(t.Capacity)
		}
		rows = append(rows, row)
	}
	return rows
}

// wizardFailure renders a storage or ordering failure on the wizard page.
func (h *UIHandlers) wizardFailure(w http.ResponseWriter, r *http.Request, err error) {
	h.logger().WarnContext(r.Context(), "wizard request failed", "path", r.URL.Path, "error", err)
	data := basePageData(r, PageMeta{Title: "Box Office - New event", PageTitle: "New event", CurrentPage: PageEvents})
	data["Events"] = []model.Event{}
	markPageError(data, err)
	h.renderDashboardPage(w, r, data)
}

func wizardStepPath(step int) string {
	return "/events/new/step/" + strconv.Itoa(step)
}

func parseWizardStep(r *http.Request) (int, bool) {
	n, err := strconv.Atoi(r.PathValue("step"))
	if err != nil || n < service.StepBasics || n > service.WizardSteps {
		return 0, false
	}
	return n, true
}

// parseInputTime reads a datetime-local value as UTC. Unparsable input yields the zero time.
func parseInputTime(v string) time.Time {
	t, err := time.ParseInLocation(wizardInputLayout, strings.TrimSpace(v), time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parsePricing pairs the section_id, price and capacity columns row by row.
// Unparsable numbers become values the validator rejects.
func parsePricing(r *http.Request) service.WizardPricing {
	ids := r.PostForm["section_id"]
	prices := r.PostForm["price"]
	caps := r.PostForm["capacity"]
	tiers := make([]model.PriceTier, 0, len(ids))
	for i, id := range ids {
		t := model.PriceTier{SectionID: strings.TrimSpace(id), Price: -1}
		if i < len(prices) {
			if p, err := strconv.ParseFloat(strings.TrimSpace(prices[i]), 64); err == nil {
				t.Price = p
			}
		}
		if i < len(caps) {
			if c, err := strconv.Atoi(strings.TrimSpace(caps[i])); err == nil {
				t.Capacity = c
			}
		}
		tiers = append(tiers, t)
	}
	return service.WizardPricing{Tiers: tiers}
}
