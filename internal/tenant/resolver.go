// internal/tenant/resolver.go
//
// Host → project resolution.
//
// Context
// -------
// Every public request arrives on a project subdomain
// (`acme.launchlist.dev`).  The resolver strips the port, takes the
// leftmost label as the candidate subdomain—only when the host carries
// more than two dot-separated labels, so the bare apex never matches—and
// performs a point read for an active project.  Lookups are cheap and
// re-queried per request; there is deliberately no tenant cache to keep
// consistent.
//
// Failure is terminal for the request: no fallback tenant, no retry.
// Unknown hosts, apex requests, and inactive projects all collapse into
// ErrNotFound so the public surface leaks nothing.
package tenant

import (
	"context"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/launchlist/launchlist/internal/metrics"
	"github.com/launchlist/launchlist/internal/project"
)

// ErrNotFound is returned when a host resolves to no active project.
var ErrNotFound = errors.New("tenant not found")

// Resolver performs per-request host → project lookups.  The app domain
// is injected at construction; there is no global.
type Resolver struct {
	db *sqlx.DB
}

// NewResolver returns a Resolver reading from db.
func NewResolver(db *sqlx.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve maps a raw Host header to its active project.
func (r *Resolver) Resolve(ctx context.Context, host string) (*project.Record, error) {
	sub := SubdomainFromHost(host)
	if sub == "" {
		metrics.TenantResolveErrorsTotal.Inc()
		return nil, ErrNotFound
	}
	return r.BySubdomain(ctx, sub)
}

// BySubdomain maps an already-extracted subdomain to its active project.
func (r *Resolver) BySubdomain(ctx context.Context, sub string) (*project.Record, error) {
	rec, err := project.BySubdomain(ctx, r.db, sub)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			metrics.TenantResolveErrorsTotal.Inc()
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// SubdomainFromHost extracts the candidate subdomain from a Host header.
// The port is stripped first.  Hosts with two or fewer labels (the apex
// domain, "localhost") yield "".
func SubdomainFromHost(host string) string {
	host = stripPort(host)
	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return ""
	}
	return labels[0]
}

// stripPort removes any ":port" suffix from the Host header.
func stripPort(h string) string {
	if i := strings.IndexByte(h, ':'); i != -1 {
		return h[:i]
	}
	return h
}
