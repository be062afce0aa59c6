package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/target/boxoffice/internal/domain/model"
	apperrors "github.com/target/boxoffice/internal/errors"
	"github.com/target/boxoffice/internal/ports"
)

// Wizard steps.
const (
	StepBasics   = 1
	StepSchedule = 2
	StepVenue    = 3
	StepPricing  = 4
	StepReview   = 5
	// WizardSteps is the number of steps.
	WizardSteps = StepReview
)

// WizardBasics is step 1.
type WizardBasics struct {
	Name        string `json:"name"        validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Category    string `json:"category"    validate:"required"`
}

// WizardSchedule is step 2.
type WizardSchedule struct {
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at"   validate:"required,gtfield=StartsAt"`
}

// WizardVenue is step 3.
type WizardVenue struct {
	VenueID    string   `json:"venue_id"    validate:"required"`
	SectionIDs []string `json:"section_ids" validate:"min=1,dive,required"`
}

// WizardPricing is step 4: one tier per selected section.
type WizardPricing struct {
	Tiers []model.PriceTier `json:"price_tiers" validate:"min=1,dive"`
}

// WizardDraft is the in-progress event, persisted per scope between requests.
type WizardDraft struct {
	ID string `json:"id"`
	// Completed is the highest step whose input has been accepted (0 for a fresh draft).
	Completed int            `json:"completed"`
	Basics    WizardBasics   `json:"basics"`
	Schedule  WizardSchedule `json:"schedule"`
	Venue     WizardVenue    `json:"venue"`
	Pricing   WizardPricing  `json:"pricing"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CanEnter reports whether step may be shown or posted: every earlier step must be complete.
func (d *WizardDraft) CanEnter(step int) bool {
	return step >= StepBasics && step <= WizardSteps && d.Completed >= step-1
}

// NextStep is the first step that has not been completed.
func (d *WizardDraft) NextStep() int {
	return min(d.Completed+1, WizardSteps)
}

// EventInput assembles the create payload from the draft.
func (d *WizardDraft) EventInput() model.EventInput {
	return model.EventInput{
		Name:        strings.TrimSpace(d.Basics.Name),
		Description: strings.TrimSpace(d.Basics.Description),
		Category:    strings.TrimSpace(d.Basics.Category),
		VenueID:     d.Venue.VenueID,
		StartsAt:    d.Schedule.StartsAt,
		EndsAt:      d.Schedule.EndsAt,
		Status:      model.EventStatusDraft,
		PriceTiers:  slices.Clone(d.Pricing.Tiers),
	}
}

// EventWizardOptions groups dependencies for EventWizard.
type EventWizardOptions struct {
	KV     ports.KeyValueStore // Required: draft storage
	Events ports.EventsAPI     // Required: receives the final event
	Config WizardConfig        // Optional
}

// WizardConfig holds optional wizard settings.
type WizardConfig struct {
	Prefix string
	Logger *slog.Logger
	Now    func() time.Time
}

// EventWizard drives the five-step event creation flow.
type EventWizard struct {
	kv       ports.KeyValueStore
	events   ports.EventsAPI
	prefix   string
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
}

// NewEventWizard constructs an EventWizard. It panics when a required dependency is nil.
func NewEventWizard(opts EventWizardOptions) *EventWizard {
	if opts.KV == nil || opts.Events == nil {
		panic("EventWizard requires KV and Events")
	}
	cfg := opts.Config
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultKeyPrefix
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &EventWizard{
		kv:       opts.KV,
		events:   opts.Events,
		prefix:   cfg.Prefix,
		validate: newValidator(),
		logger:   cfg.Logger.With("component", "event_wizard"),
		now:      cfg.Now,
	}
}

func (w *EventWizard) key(scope string) string { return w.prefix + scope + ":wizard" }

// Draft returns the scope's draft, or a fresh one when none is stored or the stored one is unreadable.
func (w *EventWizard) Draft(ctx context.Context, scope string) (*WizardDraft, error) {
	data, ok, err := w.kv.Get(ctx, w.key(scope))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeStorage, "Could not load the event draft.")
	}
	if ok {
		var d WizardDraft
		if jsonErr := json.Unmarshal([]byte(data), &d); jsonErr == nil && d.ID != "" {
			return &d, nil
		}
		w.logger.DebugContext(ctx, "discarding unreadable wizard draft", "scope", scope)
	}
	return &WizardDraft{ID: uuid.NewString(), UpdatedAt: w.now()}, nil
}

func (w *EventWizard) save(ctx context.Context, scope string, d *WizardDraft) error {
	d.UpdatedAt = w.now()
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := w.kv.Set(ctx, w.key(scope), string(data)); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorage, "Could not save the event draft.")
	}
	return nil
}

// Reset discards the scope's draft.
func (w *EventWizard) Reset(ctx context.Context, scope string) error {
	if err := w.kv.Delete(ctx, w.key(scope)); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorage, "Could not discard the event draft.")
	}
	return nil
}

// stepLocked is returned when a step is posted before its predecessors are complete.
func stepLocked(d *WizardDraft) error {
	return apperrors.ValidationField("step", fmt.Sprintf("Complete step %d first.", d.NextStep()))
}

// saveStep loads the draft, checks ordering and input, applies it and persists the result.
func (w *EventWizard) saveStep(
	ctx context.Context,
	scope string,
	step int,
	apply func(d *WizardDraft) error,
) (*WizardDraft, error) {
	d, err := w.Draft(ctx, scope)
	if err != nil {
		return nil, err
	}
	if !d.CanEnter(step) {
		return d, stepLocked(d)
	}
	if err := apply(d); err != nil {
		return d, err
	}
	d.Completed = max(d.Completed, step)
	if err := w.save(ctx, scope, d); err != nil {
		return d, err
	}
	return d, nil
}

// SaveBasics accepts step 1.
func (w *EventWizard) SaveBasics(ctx context.Context, scope string, in WizardBasics) (*WizardDraft, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	return w.saveStep(ctx, scope, StepBasics, func(d *WizardDraft) error {
		if err := validationError(w.validate.Struct(in)); err != nil {
			return err
		}
		d.Basics = in
		return nil
	})
}

// SaveSchedule accepts step 2.
func (w *EventWizard) SaveSchedule(ctx context.Context, scope string, in WizardSchedule) (*WizardDraft, error) {
	return w.saveStep(ctx, scope, StepSchedule, func(d *WizardDraft) error {
		if err := validationError(w.validate.Struct(in)); err != nil {
			return err
		}
		d.Schedule = in
		return nil
	})
}

// SaveVenue accepts step 3. Changing the venue or sections drops price tiers for
// sections no longer selected and reopens the pricing step.
func (w *EventWizard) SaveVenue(ctx context.Context, scope string, in WizardVenue) (*WizardDraft, error) {
	in.SectionIDs = dedupe(in.SectionIDs)
	return w.saveStep(ctx, scope, StepVenue, func(d *WizardDraft) error {
		if err := validationError(w.validate.Struct(in)); err != nil {
			return err
		}
		changed := d.Venue.VenueID != in.VenueID || !slices.Equal(d.Venue.SectionIDs, in.SectionIDs)
		d.Venue = in
		if changed {
			if d.Venue.VenueID != in.VenueID {
				d.Pricing.Tiers = nil
			}
			d.Pricing.Tiers = slices.DeleteFunc(d.Pricing.Tiers, func(t model.PriceTier) bool {
				return !slices.Contains(in.SectionIDs, t.SectionID)
			})
			d.Completed = min(d.Completed, StepVenue-1)
		}
		return nil
	})
}

// SavePricing accepts step 4. There must be exactly one tier per selected section.
func (w *EventWizard) SavePricing(ctx context.Context, scope string, in WizardPricing) (*WizardDraft, error) {
	return w.saveStep(ctx, scope, StepPricing, func(d *WizardDraft) error {
		if err := validationError(w.validate.Struct(in)); err != nil {
			return err
		}
		seen := make(map[string]bool, len(in.Tiers))
		for _, t := range in.Tiers {
			if !slices.Contains(d.Venue.SectionIDs, t.SectionID) {
				return apperrors.ValidationField("section_id", "Price tiers must match the selected sections.")
			}
			if seen[t.SectionID] {
				return apperrors.ValidationField("section_id", "Each section can only have one price tier.")
			}
			seen[t.SectionID] = true
		}
		for _, id := range d.Venue.SectionIDs {
			if !seen[id] {
				return apperrors.ValidationField("price_tiers", "Set a price for every selected section.")
			}
		}
		d.Pricing = in
		return nil
	})
}

// Submit creates the event from a complete draft. The draft is cleared only when the
// backend accepts the event; on failure it is kept so the user can retry.
// The returned error is non-nil only for ordering, validation or storage problems;
// backend failures are reported through the envelope.
func (w *EventWizard) Submit(ctx context.Context, scope, token string) (model.Result[*model.Event], error) {
	d, err := w.Draft(ctx, scope)
	if err != nil {
		return model.Result[*model.Event]{}, err
	}
	if !d.CanEnter(StepReview) {
		return model.Result[*model.Event]{}, stepLocked(d)
	}
	in := d.EventInput()
	if err := validationError(w.validate.Struct(in)); err != nil {
		return model.Result[*model.Event]{}, err
	}

	res := w.events.Create(ctx, token, in)
	if !res.Success {
		w.logger.InfoContext(ctx, "event creation rejected", "scope", scope, "draft_id", d.ID, "error", res.Error)
		return res, nil
	}
	if err := w.Reset(ctx, scope); err != nil {
		w.logger.WarnContext(ctx, "clear wizard draft after submit", "scope", scope, "error", err)
	}
	return res, nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
