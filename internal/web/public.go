// internal/web/public.go
//
// Unauthenticated tenant-facing handlers: signup submission, email
// verification, and the landing-page payload.
//
// Context
// -------
// The landing handler is the only route resolved by Host header; signup
// and verify carry their routing key in the path, so they work from any
// host the load balancer points here.  All three collapse tenant
// failures into the same 404 payload.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/launchlist/launchlist/internal/metrics"
	"github.com/launchlist/launchlist/internal/project"
	"github.com/launchlist/launchlist/internal/requestinfo"
	"github.com/launchlist/launchlist/internal/signup"
	"github.com/launchlist/launchlist/internal/template"
)

// signupRequest is the public submission body.
type signupRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// handleSignup records a waitlist entry for the project in the path.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body signupRequest
	if err := decodeBody(r, &body); err != nil {
		respondError(w, r, err)
		return
	}

	_, err := s.Ledger.Submit(r.Context(), signup.Submission{
		Subdomain: chi.URLParam(r, "subdomain"),
		Email:     body.Email,
		Name:      body.Name,
	}, requestinfo.FromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondMessage(w, http.StatusOK, "Thank you for signing up!")
}

// handleVerify redeems a verification token and redirects the visitor to
// the project's public page.  Failures redirect to the apex with an
// error flag rather than rendering a dead end; the ledger refuses to
// consume a token for an inactive project, so nothing is written on that
// path.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	_, proj, err := s.Ledger.Verify(r.Context(), token)
	if err != nil {
		http.Redirect(w, r, s.URLs.Home()+"/?verify_error=1", http.StatusFound)
		return
	}

	http.Redirect(w, r, s.URLs.Public(proj.Subdomain)+"/?verified=1", http.StatusFound)
}

// landingProject is the public slice of a project row.
type landingProject struct {
	Name        string           `json:"name"`
	Subdomain   string           `json:"subdomain"`
	Description *string          `json:"description,omitempty"`
	LogoPath    *string          `json:"logo_path,omitempty"`
	Settings    project.Settings `json:"settings"`
}

// landingPayload is the full landing response.  Template is null when
// the project has not bound one; the UI renders its "no template" state.
type landingPayload struct {
	Project  landingProject   `json:"project"`
	Template *template.Merged `json:"template"`
}

// handleLanding resolves the tenant from the Host header and returns the
// merged landing view.
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	proj, err := s.Resolver.Resolve(r.Context(), r.Host)
	if err != nil {
		respondError(w, r, err)
		return
	}

	merged, err := project.MergedView(r.Context(), s.DB, proj)
	if err != nil {
		respondError(w, r, err)
		return
	}

	metrics.LandingViewsTotal.Inc()
	respondData(w, http.StatusOK, landingPayload{
		Project: landingProject{
			Name:        proj.Name,
			Subdomain:   proj.Subdomain,
			Description: proj.Description,
			LogoPath:    proj.LogoPath,
			Settings:    proj.Settings,
		},
		Template: merged,
	})
}
