// internal/web/respond.go
//
// JSON response helpers and the domain-error → HTTP status mapping.
//
// Every payload on this surface carries the same envelope: `success`,
// `message`, and—on validation failure—a per-field `errors` map.  The
// mapping lives in one place so handlers stay short and no two handlers
// disagree about what a duplicate email looks like on the wire.
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/launchlist/launchlist/internal/project"
	"github.com/launchlist/launchlist/internal/signup"
	"github.com/launchlist/launchlist/internal/template"
	"github.com/launchlist/launchlist/internal/tenant"
	"github.com/launchlist/launchlist/internal/validate"
)

// envelope is the uniform response wrapper.
type envelope struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Errors  validate.FieldErrors `json:"errors,omitempty"`
	Data    any                  `json:"data,omitempty"`
}

// respondJSON writes v with the given status.  Encoding failures are
// logged and otherwise dropped; headers are already on the wire.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("response encode failed", zap.Error(err))
	}
}

// respondData wraps v in a success envelope.
func respondData(w http.ResponseWriter, status int, v any) {
	respondJSON(w, status, envelope{Success: true, Data: v})
}

// respondMessage writes a bare success envelope.
func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, envelope{Success: true, Message: msg})
}

// respondError maps a domain error onto the wire.
//
//	validate.FieldErrors      → 422 with the field map
//	*.ErrNotFound             → 404
//	project.ErrBindingMismatch → 409
//	anything else             → 500, logged
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErrs validate.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		respondJSON(w, http.StatusUnprocessableEntity, envelope{
			Success: false,
			Message: "Validation errors",
			Errors:  fieldErrs,
		})
	case errors.Is(err, tenant.ErrNotFound):
		respondJSON(w, http.StatusNotFound, envelope{
			Success: false,
			Message: "Project not found or inactive.",
		})
	case errors.Is(err, project.ErrNotFound):
		respondJSON(w, http.StatusNotFound, envelope{
			Success: false,
			Message: "Project not found.",
		})
	case errors.Is(err, template.ErrNotFound):
		respondJSON(w, http.StatusNotFound, envelope{
			Success: false,
			Message: "Template not found.",
		})
	case errors.Is(err, signup.ErrNotFound):
		respondJSON(w, http.StatusNotFound, envelope{
			Success: false,
			Message: "Signup not found.",
		})
	case errors.Is(err, project.ErrBindingMismatch):
		respondJSON(w, http.StatusConflict, envelope{
			Success: false,
			Message: "Project is not using this template.",
		})
	default:
		zap.L().Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, envelope{
			Success: false,
			Message: "Internal server error.",
		})
	}
}

// decodeBody decodes a JSON request body into dst, rejecting unknown
// fields so client typos fail loudly.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		errs := validate.FieldErrors{}
		errs.Add("body", "Request body must be valid JSON.")
		return errs
	}
	return nil
}
