// internal/template/store.go
//
// Small query helpers for the template catalog.
//
// Context
// -------
// The catalog is read-mostly: rows are seeded by conf/schema.sql and
// administered out of band, so the store exposes only lookups.  Helpers
// accept a *sqlx.DB and perform simple parameterised queries—callers may
// wrap results in their own per-request state if they wish.
package template

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when no template matches the lookup.
var ErrNotFound = errors.New("template not found")

const columns = `id, name, slug, description, structure, thumbnail_path,
                 is_active, is_default, created_at, updated_at`

// ListActive returns every active template, oldest first.
func ListActive(ctx context.Context, db *sqlx.DB) ([]Record, error) {
	const q = `SELECT ` + columns + `
	             FROM waitlist_templates
	            WHERE is_active = TRUE
	            ORDER BY id`
	out := make([]Record, 0, 8)
	if err := db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// ByID returns one template row by primary key.
func ByID(ctx context.Context, db *sqlx.DB, id uint64) (*Record, error) {
	const q = `SELECT ` + columns + `
	             FROM waitlist_templates
	            WHERE id = ?`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// BySlug returns one template row by its catalog slug.
func BySlug(ctx context.Context, db *sqlx.DB, slug string) (*Record, error) {
	const q = `SELECT ` + columns + `
	             FROM waitlist_templates
	            WHERE slug = ?`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}
