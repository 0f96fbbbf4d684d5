// internal/project/binding.go
//
// Project ↔ template binding (direct-FK design).
//
// Context
// -------
// A project holds a single nullable template reference plus its own
// customization overlay, so "at most one live template" is a structural
// guarantee—one foreign key cannot point at two rows.  The historical
// many-to-many pivot design this replaces needed an explicit
// deactivate-all-then-activate dance on every switch; with the direct FK
// each operation below is a single UPDATE and no observer can ever see
// two active bindings.
//
// Behavioral contract
// -------------------
//   • SetTemplate resets the overlay to the empty map: switching
//     templates deliberately discards prior customizations rather than
//     carrying stale keys onto a structure they no longer match.  This
//     applies even when re-setting the template already bound.
//   • RemoveTemplate clears the overlay to NULL, not {}—"never
//     configured" stays distinct from "configured with defaults."
//   • UpdateCustomizations is a shallow merge: patch keys overwrite,
//     absent keys are retained.
package project

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/launchlist/launchlist/internal/template"
)

// ErrBindingMismatch is returned when a customization update names a
// template the project is not currently bound to.
var ErrBindingMismatch = errors.New("project is not bound to this template")

// SetTemplate binds tmpl to p and resets the customization overlay to an
// empty map.  p is updated in place on success.
func SetTemplate(ctx context.Context, db *sqlx.DB, p *Record, tmpl *template.Record) error {
	const q = `UPDATE projects
	              SET waitlist_template_id = ?, template_customizations = ?
	            WHERE id = ?`
	fresh := template.Overlay{}
	if _, err := db.ExecContext(ctx, q, tmpl.ID, fresh, p.ID); err != nil {
		return err
	}
	p.TemplateID = &tmpl.ID
	p.Customizations = fresh
	return nil
}

// UpdateCustomizations merges patch into p's overlay.  The project must
// currently be bound to templateID, otherwise ErrBindingMismatch; invalid
// patch keys or color values come back as validate.FieldErrors.
func UpdateCustomizations(ctx context.Context, db *sqlx.DB, p *Record, templateID uint64, patch template.Overlay) error {
	if p.TemplateID == nil || *p.TemplateID != templateID {
		return ErrBindingMismatch
	}
	if errs := template.ValidateOverlay(patch); errs.Any() {
		return errs
	}

	merged := template.Overlay{}
	for k, v := range p.Customizations {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}

	const q = `UPDATE projects
	              SET template_customizations = ?
	            WHERE id = ?`
	if _, err := db.ExecContext(ctx, q, merged, p.ID); err != nil {
		return err
	}
	p.Customizations = merged
	return nil
}

// RemoveTemplate clears both the template reference and the overlay.
func RemoveTemplate(ctx context.Context, db *sqlx.DB, p *Record) error {
	const q = `UPDATE projects
	              SET waitlist_template_id = NULL, template_customizations = NULL
	            WHERE id = ?`
	if _, err := db.ExecContext(ctx, q, p.ID); err != nil {
		return err
	}
	p.TemplateID = nil
	p.Customizations = nil
	return nil
}

// MergedView loads the bound template and applies the three-tier merge.
// It returns (nil, nil) when no template is bound so callers can render a
// "no template" state instead of failing.
func MergedView(ctx context.Context, db *sqlx.DB, p *Record) (*template.Merged, error) {
	if p.TemplateID == nil {
		return nil, nil
	}
	tmpl, err := template.ByID(ctx, db, *p.TemplateID)
	if err != nil {
		return nil, err
	}
	m := template.Merge(tmpl, p.Customizations)
	return &m, nil
}
