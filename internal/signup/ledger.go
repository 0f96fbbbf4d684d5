// internal/signup/ledger.go
//
// Signup orchestration: public submission and token verification.
//
// Context
// -------
// Submit is the one write path reachable without authentication, so it
// fails closed: the tenant must resolve to an active project before any
// validation or insert happens, and every tenant failure collapses into
// tenant.ErrNotFound.  Validation problems come back as
// validate.FieldErrors so the handler can render the per-field 422
// payload.
package signup

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/launchlist/launchlist/internal/metrics"
	"github.com/launchlist/launchlist/internal/project"
	"github.com/launchlist/launchlist/internal/requestinfo"
	"github.com/launchlist/launchlist/internal/tenant"
	"github.com/launchlist/launchlist/internal/validate"
)

// Ledger coordinates the public signup lifecycle.
type Ledger struct {
	DB       *sqlx.DB
	Resolver *tenant.Resolver
}

// NewLedger returns a Ledger over db.
func NewLedger(db *sqlx.DB, res *tenant.Resolver) *Ledger {
	return &Ledger{DB: db, Resolver: res}
}

// Submission is the public signup payload after handler decoding.
type Submission struct {
	Subdomain string
	Email     string
	Name      string
}

// Submit records one waitlist entry for the project behind sub.
//
// Errors:
//   - tenant.ErrNotFound        — unknown subdomain or inactive project
//   - validate.FieldErrors      — bad email, missing name, duplicate email
func (l *Ledger) Submit(ctx context.Context, s Submission, info *requestinfo.RequestInfo) (*Record, error) {
	proj, err := l.Resolver.BySubdomain(ctx, s.Subdomain)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(s.Email))
	name := strings.TrimSpace(s.Name)

	errs := validate.FieldErrors{}
	if !validate.Email(email) {
		errs.Add("email", "Please enter a valid email address.")
	}
	if proj.Settings.CollectName && name == "" {
		errs.Add("name", "Please enter your name.")
	}
	if len(name) > 255 {
		errs.Add("name", "Must be 255 characters or fewer.")
	}
	if errs.Any() {
		return nil, errs
	}

	// Friendly pre-check; the UNIQUE index still backstops races.
	if exists, err := existsForProject(ctx, l.DB, proj.ID, email); err != nil {
		return nil, err
	} else if exists {
		metrics.SignupDuplicatesTotal.Inc()
		errs.Add("email", "This email is already on the waitlist.")
		return nil, errs
	}

	token, err := NewToken()
	if err != nil {
		return nil, err
	}

	rec := &Record{
		ProjectID:         proj.ID,
		Email:             email,
		VerificationToken: &token,
	}
	if name != "" {
		rec.Name = &name
	}
	if info != nil {
		rec.Metadata = buildMetadata(info)
		if info.Geo.IP != nil {
			ip := info.Geo.IP.String()
			rec.IPAddress = &ip
		}
		if info.UA.Raw != "" {
			ua := info.UA.Raw
			rec.UserAgent = &ua
		}
		if info.Referrer != "" {
			ref := info.Referrer
			rec.Referrer = &ref
		}
	}

	if err := Create(ctx, l.DB, rec); err != nil {
		if _, ok := err.(validate.FieldErrors); ok {
			metrics.SignupDuplicatesTotal.Inc()
		}
		return nil, err
	}

	metrics.SignupsTotal.Inc()
	zap.L().Info("signup recorded",
		zap.Uint64("project_id", proj.ID),
		zap.String("subdomain", proj.Subdomain),
		zap.Uint64("signup_id", rec.ID))
	return rec, nil
}

// Verify redeems a verification token and returns the row along with its
// owning project, so the handler can redirect to the right subdomain.
// The project is checked before anything is written: a token pointing at
// an inactive project fails with ErrNotFound and leaves the signup
// pending, so the same link works again if the project is reactivated.
func (l *Ledger) Verify(ctx context.Context, token string) (*Record, *project.Record, error) {
	rec, err := ByToken(ctx, l.DB, token)
	if err != nil {
		return nil, nil, err
	}

	// Owner-scoped lookup is wrong here; fetch by primary key directly.
	const q = `SELECT id, user_id, name, subdomain, description, logo_path,
	                  settings, is_active, waitlist_template_id,
	                  template_customizations, created_at, updated_at
	             FROM projects
	            WHERE id = ?`
	var proj project.Record
	if err := l.DB.GetContext(ctx, &proj, q, rec.ProjectID); err != nil {
		return nil, nil, err
	}
	if !proj.IsActive {
		return nil, nil, ErrNotFound
	}

	now, err := Consume(ctx, l.DB, token)
	if err != nil {
		return nil, nil, err
	}
	rec.VerifiedAt = &now
	rec.VerificationToken = nil

	metrics.VerificationsTotal.Inc()
	zap.L().Info("signup verified",
		zap.Uint64("project_id", proj.ID),
		zap.Uint64("signup_id", rec.ID))
	return rec, &proj, nil
}

// existsForProject reports whether email already signed up for project.
func existsForProject(ctx context.Context, db *sqlx.DB, projectID uint64, email string) (bool, error) {
	const q = `SELECT COUNT(*) FROM signups WHERE project_id = ? AND email = ?`
	var n int
	if err := db.GetContext(ctx, &n, q, projectID, email); err != nil {
		return false, err
	}
	return n > 0, nil
}

// buildMetadata flattens the request snapshot into the stored blob.
func buildMetadata(info *requestinfo.RequestInfo) Metadata {
	m := Metadata{}
	if info.UA.Browser != "" {
		m["browser"] = info.UA.Browser
	}
	if info.UA.Version != "" && info.UA.Version != "0" {
		m["browser_version"] = info.UA.Version
	}
	if info.UA.OS != "" {
		m["os"] = info.UA.OS
	}
	if info.UA.Device != "" {
		m["device"] = info.UA.Device
	}
	if info.UA.IsBot {
		m["bot"] = true
	}
	if info.Geo.CountryISO != "" {
		m["country"] = info.Geo.CountryISO
	}
	if info.Geo.City != "" {
		m["city"] = info.Geo.City
	}
	if !info.Timestamp.IsZero() {
		m["submitted_at"] = info.Timestamp.UTC().Format(time.RFC3339)
	}
	if len(m) == 0 {
		return nil
	}
	return m
}
