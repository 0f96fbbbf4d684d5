// internal/project/store.go
//
// Query helpers for project rows.
//
// Context
// -------
// Every owner-facing lookup takes the requesting user's ID and folds it
// into the WHERE clause, so a cross-tenant probe is indistinguishable
// from a missing row: both return ErrNotFound.  There is no separate
// policy layer—the predicate *is* the authorization check, which keeps
// the store safe to call directly in tests.
//
// The `subdomain` column carries a UNIQUE index; the pre-insert existence
// check only exists to produce a friendly field error, and a 1062
// duplicate-key race on INSERT is translated to the same error.
package project

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/launchlist/launchlist/internal/validate"
)

// ErrNotFound is returned when no project matches the lookup, including
// rows that exist but belong to another user.
var ErrNotFound = errors.New("project not found")

const columns = `id, user_id, name, subdomain, description, logo_path, settings,
                 is_active, waitlist_template_id, template_customizations,
                 created_at, updated_at`

//
// Lookups
//

// ByID returns one project owned by userID.
func ByID(ctx context.Context, db *sqlx.DB, id, userID uint64) (*Record, error) {
	const q = `SELECT ` + columns + `
	             FROM projects
	            WHERE id = ? AND user_id = ?`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// BySubdomain returns the active project serving a subdomain.  Inactive
// and missing projects are both ErrNotFound—the public surface must not
// distinguish them.
func BySubdomain(ctx context.Context, db *sqlx.DB, subdomain string) (*Record, error) {
	const q = `SELECT ` + columns + `
	             FROM projects
	            WHERE subdomain = ? AND is_active = TRUE`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, subdomain); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// ByUser returns every project owned by userID, newest first.
func ByUser(ctx context.Context, db *sqlx.DB, userID uint64) ([]Record, error) {
	const q = `SELECT ` + columns + `
	             FROM projects
	            WHERE user_id = ?
	            ORDER BY created_at DESC, id DESC`
	out := make([]Record, 0, 8)
	if err := db.SelectContext(ctx, &out, q, userID); err != nil {
		return nil, err
	}
	return out, nil
}

//
// Writes
//

// Input carries the user-supplied fields for create and update.
type Input struct {
	Name        string
	Subdomain   string
	Description *string
	LogoPath    *string
	Settings    Settings
	IsActive    *bool // nil on create means active
}

// Create validates in and inserts a new project for userID.  User-
// correctable problems come back as validate.FieldErrors.
func Create(ctx context.Context, db *sqlx.DB, userID uint64, in Input) (*Record, error) {
	if errs := validateInput(ctx, db, in, 0); errs.Any() {
		return nil, errs
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	const q = `INSERT INTO projects
	               (user_id, name, subdomain, description, logo_path, settings, is_active)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := db.ExecContext(ctx, q,
		userID, in.Name, in.Subdomain, in.Description, in.LogoPath, in.Settings, active)
	if err != nil {
		if isDuplicateKey(err) {
			errs := validate.FieldErrors{}
			errs.Add("subdomain", "This subdomain is already taken.")
			return nil, errs
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return ByID(ctx, db, uint64(id), userID)
}

// Update validates in and overwrites the mutable fields of an existing
// project owned by userID.
func Update(ctx context.Context, db *sqlx.DB, id, userID uint64, in Input) (*Record, error) {
	if errs := validateInput(ctx, db, in, id); errs.Any() {
		return nil, errs
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	const q = `UPDATE projects
	              SET name = ?, subdomain = ?, description = ?, logo_path = ?,
	                  settings = ?, is_active = ?
	            WHERE id = ? AND user_id = ?`
	res, err := db.ExecContext(ctx, q,
		in.Name, in.Subdomain, in.Description, in.LogoPath, in.Settings, active, id, userID)
	if err != nil {
		if isDuplicateKey(err) {
			errs := validate.FieldErrors{}
			errs.Add("subdomain", "This subdomain is already taken.")
			return nil, errs
		}
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either missing, foreign, or unchanged; disambiguate with a read.
		if _, err := ByID(ctx, db, id, userID); err != nil {
			return nil, err
		}
	}
	return ByID(ctx, db, id, userID)
}

// Delete removes a project owned by userID.  Signups go with it via the
// ON DELETE CASCADE foreign key.
func Delete(ctx context.Context, db *sqlx.DB, id, userID uint64) error {
	const q = `DELETE FROM projects WHERE id = ? AND user_id = ?`
	res, err := db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

//
// Validation helpers
//

// validateInput applies the field rules shared by Create and Update.
// excludeID skips the uniqueness pre-check against the row being updated.
func validateInput(ctx context.Context, db *sqlx.DB, in Input, excludeID uint64) validate.FieldErrors {
	errs := validate.FieldErrors{}

	if in.Name == "" || len(in.Name) > 255 {
		errs.Add("name", "Name is required and must be at most 255 characters.")
	}
	if !validate.Subdomain(in.Subdomain) {
		errs.Add("subdomain",
			"The subdomain may only contain lowercase letters, numbers, and hyphens. "+
				"It cannot start or end with a hyphen.")
	}
	if in.Description != nil && len(*in.Description) > 1000 {
		errs.Add("description", "Description must be at most 1000 characters.")
	}
	switch in.Settings.Theme {
	case "", "light", "dark", "auto":
	default:
		errs.Add("settings.theme", "Theme must be light, dark, or auto.")
	}

	if _, ok := errs["subdomain"]; !ok {
		taken, err := subdomainTaken(ctx, db, in.Subdomain, excludeID)
		if err == nil && taken {
			errs.Add("subdomain", "This subdomain is already taken.")
		}
		// A lookup error is ignored here; the UNIQUE index is the authority.
	}
	return errs
}

// subdomainTaken reports whether another project already uses subdomain.
func subdomainTaken(ctx context.Context, db *sqlx.DB, subdomain string, excludeID uint64) (bool, error) {
	const q = `SELECT 1 FROM projects WHERE subdomain = ? AND id <> ? LIMIT 1`
	var dummy int
	err := db.QueryRowContext(ctx, q, subdomain, excludeID).Scan(&dummy)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// isDuplicateKey recognises MySQL/MariaDB error 1062 (duplicate entry).
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
