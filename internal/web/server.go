// internal/web/server.go
//
// Router assembly and HTTP server construction.
//
// Context
// -------
// The public surface (signup, verify, landing) is tenant-scoped: the
// landing page resolves by Host header, the signup endpoint by path
// subdomain.  The owner surface lives under /api behind the identity
// middleware.  /healthz and /metrics are flat operational endpoints.
//
// Production hardening keeps the timeouts the server has always shipped
// with:
//
//   • ReadTimeout   – abort slow-loris headers (10 s)
//   • WriteTimeout  – cap total response time (15 s)
//   • IdleTimeout   – close keep-alives on idle clients (60 s)
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/launchlist/launchlist/internal/requestinfo"
	"github.com/launchlist/launchlist/internal/signup"
	"github.com/launchlist/launchlist/internal/tenant"
)

// Server bundles the dependencies the handlers need.
type Server struct {
	DB         *sqlx.DB
	Resolver   *tenant.Resolver
	Ledger     *signup.Ledger
	URLs       tenant.URLBuilder
	ForceHTTPS bool
}

// NewServer wires a Server over db with the public URL builder.
func NewServer(db *sqlx.DB, urls tenant.URLBuilder, forceHTTPS bool) *Server {
	res := tenant.NewResolver(db)
	return &Server{
		DB:         db,
		Resolver:   res,
		Ledger:     signup.NewLedger(db, res),
		URLs:       urls,
		ForceHTTPS: forceHTTPS,
	}
}

// Router builds the full chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if s.ForceHTTPS {
		r.Use(forceHTTPS)
	}
	r.Use(securityHeaders)
	r.Use(requestinfo.Enrich)

	// Operational endpoints.
	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Public, tenant-scoped surface.
	r.Post("/signup/{subdomain}", s.handleSignup)
	r.Get("/verify/{token}", s.handleVerify)
	r.Get("/", s.handleLanding)

	// Owner API.  Authentication is the fronting proxy's job; requireUser
	// only extracts the verified identity it injected.
	r.Route("/api", func(r chi.Router) {
		r.Use(requireUser)

		r.Get("/templates", s.handleTemplateList)
		r.Get("/templates/{id}", s.handleTemplateGet)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.handleProjectList)
			r.Post("/", s.handleProjectCreate)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleProjectGet)
				r.Patch("/", s.handleProjectUpdate)
				r.Delete("/", s.handleProjectDelete)

				r.Put("/template", s.handleTemplateSet)
				r.Delete("/template", s.handleTemplateRemove)
				r.Patch("/template/customizations", s.handleCustomize)
				r.Get("/template/preview", s.handlePreview)

				r.Get("/signups", s.handleSignupList)
				r.Get("/signups/export", s.handleSignupExport)
				r.Get("/signups/stats", s.handleSignupStats)
				r.Delete("/signups/{signupID}", s.handleSignupDelete)
			})
		})
	})

	return r
}

// NewHTTPServer constructs an *http.Server with the hardened defaults.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		// TLSConfig may be injected by callers (e.g., autocert).
	}
}

// handleHealthz reports liveness plus a database ping.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.DB.PingContext(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, envelope{
			Success: false,
			Message: "database unreachable",
		})
		return
	}
	respondMessage(w, http.StatusOK, "ok")
}
