// internal/signup/store.go
//
// Query helpers for the signup ledger.
//
// Context
// -------
// Per-project email uniqueness is enforced by the UNIQUE(project_id,
// email) index—the application-level existence check in ledger.go only
// exists for a friendly field error, and a 1062 duplicate-key race on
// INSERT is translated to the same error.  Token redemption is a single
// guarded UPDATE, so a consumed token can never be redeemed twice: the
// second caller's UPDATE matches zero rows.  The lookup and the consuming
// write are separate helpers because the ledger must check the owning
// project's state between them without mutating anything.
//
// Deletion folds the owning project into the WHERE clause; a cross-
// tenant attempt is indistinguishable from a missing row.
package signup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/launchlist/launchlist/internal/validate"
)

// ErrNotFound is returned when no signup matches the lookup, including
// rows that belong to another project.
var ErrNotFound = errors.New("signup not found")

const columns = `id, project_id, email, name, metadata, verification_token,
                 verified_at, ip_address, user_agent, referrer, created_at, updated_at`

//
// Writes
//

// Create inserts a pending signup.  A duplicate (project, email) pair
// comes back as the same field error the ledger's pre-check produces.
func Create(ctx context.Context, db *sqlx.DB, rec *Record) error {
	const q = `INSERT INTO signups
	               (project_id, email, name, metadata, verification_token,
	                ip_address, user_agent, referrer)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := db.ExecContext(ctx, q,
		rec.ProjectID, rec.Email, rec.Name, rec.Metadata, rec.VerificationToken,
		rec.IPAddress, rec.UserAgent, rec.Referrer)
	if err != nil {
		if isDuplicateKey(err) {
			errs := validate.FieldErrors{}
			errs.Add("email", "This email is already on the waitlist.")
			return errs
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return nil
}

// ByToken returns the signup holding an unredeemed verification token.
// Read-only; the caller decides whether the token may be consumed.
func ByToken(ctx context.Context, db *sqlx.DB, token string) (*Record, error) {
	const q = `SELECT ` + columns + `
	             FROM signups
	            WHERE verification_token = ?`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Consume redeems a token: stamps verified_at and clears the token as one
// guarded UPDATE, returning the verification time.  A token already
// consumed by a concurrent redemption matches zero rows and reports
// ErrNotFound.
func Consume(ctx context.Context, db *sqlx.DB, token string) (time.Time, error) {
	now := time.Now().UTC()
	const q = `UPDATE signups
	              SET verified_at = ?, verification_token = NULL
	            WHERE verification_token = ?`
	res, err := db.ExecContext(ctx, q, now, token)
	if err != nil {
		return time.Time{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return time.Time{}, ErrNotFound
	}
	return now, nil
}

// Delete removes one signup, verifying project ownership in the same
// statement.
func Delete(ctx context.Context, db *sqlx.DB, id, projectID uint64) error {
	const q = `DELETE FROM signups WHERE id = ? AND project_id = ?`
	res, err := db.ExecContext(ctx, q, id, projectID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

//
// Reads
//

// Filters narrows ListForProject.  Zero values mean "no constraint";
// Limit == 0 disables pagination (the CSV export wants the full list).
type Filters struct {
	Verified *bool
	Search   string // substring match on email or name
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

// ListForProject returns signups for one project, newest first, plus the
// total row count before pagination.
func ListForProject(ctx context.Context, db *sqlx.DB, projectID uint64, f Filters) ([]Record, int, error) {
	where := []string{"project_id = ?"}
	args := []any{projectID}

	if f.Verified != nil {
		if *f.Verified {
			where = append(where, "verified_at IS NOT NULL")
		} else {
			where = append(where, "verified_at IS NULL")
		}
	}
	if f.Search != "" {
		where = append(where, "(email LIKE ? OR name LIKE ?)")
		pat := "%" + f.Search + "%"
		args = append(args, pat, pat)
	}
	if f.DateFrom != nil {
		where = append(where, "created_at >= ?")
		args = append(args, *f.DateFrom)
	}
	if f.DateTo != nil {
		where = append(where, "created_at <= ?")
		args = append(args, *f.DateTo)
	}

	cond := strings.Join(where, " AND ")

	var total int
	countQ := `SELECT COUNT(*) FROM signups WHERE ` + cond
	if err := db.GetContext(ctx, &total, countQ, args...); err != nil {
		return nil, 0, err
	}

	listQ := `SELECT ` + columns + ` FROM signups WHERE ` + cond +
		` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		listQ += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	out := make([]Record, 0, 32)
	if err := db.SelectContext(ctx, &out, listQ, args...); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

//
// Dashboard stats
//

// Stats is the dashboard summary block for one project.
type Stats struct {
	Total          int     `json:"total_signups"`
	Verified       int     `json:"verified_signups"`
	ConversionRate float64 `json:"conversion_rate"` // percent, one decimal
}

// StatsForProject computes the summary counters in one query.
func StatsForProject(ctx context.Context, db *sqlx.DB, projectID uint64) (Stats, error) {
	const q = `SELECT COUNT(*)                                   AS total,
	                  COALESCE(SUM(verified_at IS NOT NULL), 0)  AS verified
	             FROM signups
	            WHERE project_id = ?`
	var row struct {
		Total    int `db:"total"`
		Verified int `db:"verified"`
	}
	if err := db.GetContext(ctx, &row, q, projectID); err != nil {
		return Stats{}, err
	}
	s := Stats{Total: row.Total, Verified: row.Verified}
	if s.Total > 0 {
		s.ConversionRate = float64(int(float64(s.Verified)/float64(s.Total)*1000+0.5)) / 10
	}
	return s, nil
}

// DailyCount is one bucket of the signups-per-day series.
type DailyCount struct {
	Date  string `db:"date"  json:"date"` // YYYY-MM-DD
	Count int    `db:"count" json:"count"`
}

// CountByDay returns per-day signup counts over the trailing window.
func CountByDay(ctx context.Context, db *sqlx.DB, projectID uint64, days int) ([]DailyCount, error) {
	const q = `SELECT DATE(created_at) AS date, COUNT(*) AS count
	             FROM signups
	            WHERE project_id = ? AND created_at >= ?
	            GROUP BY DATE(created_at)
	            ORDER BY date`
	since := time.Now().UTC().AddDate(0, 0, -days)
	out := make([]DailyCount, 0, days)
	if err := db.SelectContext(ctx, &out, q, projectID, since); err != nil {
		return nil, err
	}
	return out, nil
}

// isDuplicateKey recognises MySQL/MariaDB error 1062 (duplicate entry).
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
