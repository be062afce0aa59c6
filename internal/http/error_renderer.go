package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/target/boxoffice/internal/domain/model"
	apperrors "github.com/target/boxoffice/internal/errors"
)

// StatusForError maps an error to the HTTP status a JSON client should see.
func StatusForError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeUpstream:
		if appErr.Status >= http.StatusBadRequest {
			return appErr.Status
		}
		return http.StatusBadGateway
	case apperrors.ErrCodeTransport:
		return http.StatusBadGateway
	case apperrors.ErrCodeStorage:
		return http.StatusServiceUnavailable
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// userMessage returns a message safe to show in the UI. Errors that are not
// AppErrors are replaced by fallback.
func userMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if ctxErr := apperrors.FromContext(err); ctxErr != nil {
		return ctxErr.Message
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

// resultError turns a failed envelope into an upstream AppError, nil on success.
func resultError[T any](res model.Result[T]) error {
	if res.Success {
		return nil
	}
	return apperrors.Upstream(res.Status, res.Error)
}

// ErrorOpts contains the options needed to re-render a form with errors.
type ErrorOpts struct {
	W http.ResponseWriter
	R *http.Request
	// Err is the error that occurred (optional when only field errors are given)
	Err error
	// FieldErrors maps field name to message
	FieldErrors map[string]string
	// Render renders the page; usually the handler's page renderer
	Render func(w http.ResponseWriter, r *http.Request, data map[string]any)
	// Data is the page data the form was rendered with
	Data map[string]any
	// StatusCode is written before rendering (0 keeps 200 for HTMX swaps)
	StatusCode int
}

// RenderError re-renders a form with a general message and per-field errors.
// A validation AppError with a Field becomes a field error.
func RenderError(opts ErrorOpts) {
	if opts.Render == nil {
		http.Error(opts.W, "misconfigured error renderer", http.StatusInternalServerError)
		return
	}
	data := opts.Data
	if data == nil {
		data = map[string]any{}
	}
	fieldErrs := map[string]string{}
	for k, v := range opts.FieldErrors {
		fieldErrs[k] = v
	}

	general := ""
	if opts.Err != nil {
		if field := apperrors.GetField(opts.Err); field != "" && apperrors.IsValidation(opts.Err) {
			fieldErrs[field] = apperrors.Message(opts.Err)
		} else {
			general = userMessage(opts.Err, "An error occurred. Please try again.")
		}
	}
	if general == "" && len(fieldErrs) > 0 {
		general = errMsgFixBelow
	}

	data["Errors"] = fieldErrs
	if general != "" {
		data["Error"] = true
		data["ErrorMessage"] = general
	}
	if opts.StatusCode != 0 {
		opts.W.WriteHeader(opts.StatusCode)
	}
	opts.Render(opts.W, opts.R, data)
}
