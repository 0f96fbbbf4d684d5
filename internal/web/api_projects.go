// internal/web/api_projects.go
//
// Owner API: project CRUD.
//
// Every handler resolves the requesting user from the identity
// middleware and hands it to the store, where ownership is part of the
// WHERE clause.  PATCH is a read-modify-write: absent fields keep their
// stored values, so clients may send only what changed.
package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/launchlist/launchlist/internal/project"
	"github.com/launchlist/launchlist/internal/template"
	"github.com/launchlist/launchlist/internal/validate"
)

// projectView is the owner-facing JSON shape of a project row.
type projectView struct {
	ID             uint64           `json:"id"`
	Name           string           `json:"name"`
	Subdomain      string           `json:"subdomain"`
	PublicURL      string           `json:"public_url"`
	Description    *string          `json:"description,omitempty"`
	LogoPath       *string          `json:"logo_path,omitempty"`
	Settings       project.Settings `json:"settings"`
	IsActive       bool             `json:"is_active"`
	TemplateID     *uint64          `json:"template_id"`
	Customizations template.Overlay `json:"customizations,omitempty"`
	CreatedAt      string           `json:"created_at"`
	UpdatedAt      string           `json:"updated_at"`
}

const apiTimeFormat = "2006-01-02T15:04:05Z07:00"

func (s *Server) projectToView(p *project.Record) projectView {
	return projectView{
		ID:             p.ID,
		Name:           p.Name,
		Subdomain:      p.Subdomain,
		PublicURL:      s.URLs.Public(p.Subdomain),
		Description:    p.Description,
		LogoPath:       p.LogoPath,
		Settings:       p.Settings,
		IsActive:       p.IsActive,
		TemplateID:     p.TemplateID,
		Customizations: p.Customizations,
		CreatedAt:      p.CreatedAt.UTC().Format(apiTimeFormat),
		UpdatedAt:      p.UpdatedAt.UTC().Format(apiTimeFormat),
	}
}

// projectPayload is the create/update request body.  Pointer fields
// distinguish "absent" from "zero" for PATCH semantics.
type projectPayload struct {
	Name        *string           `json:"name"`
	Subdomain   *string           `json:"subdomain"`
	Description *string           `json:"description"`
	LogoPath    *string           `json:"logo_path"`
	Settings    *project.Settings `json:"settings"`
	IsActive    *bool             `json:"is_active"`
}

// pathID parses the {id} chi route parameter.
func pathID(r *http.Request, name string) (uint64, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		errs := validate.FieldErrors{}
		errs.Add(name, "Must be a positive integer.")
		return 0, errs
	}
	return id, nil
}

// loadOwnedProject resolves {id} to a project owned by the requester.
func (s *Server) loadOwnedProject(r *http.Request) (*project.Record, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	return project.ByID(r.Context(), s.DB, id, userID(r))
}

func (s *Server) handleProjectList(w http.ResponseWriter, r *http.Request) {
	recs, err := project.ByUser(r.Context(), s.DB, userID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]projectView, 0, len(recs))
	for i := range recs {
		out = append(out, s.projectToView(&recs[i]))
	}
	respondData(w, http.StatusOK, out)
}

func (s *Server) handleProjectCreate(w http.ResponseWriter, r *http.Request) {
	var body projectPayload
	if err := decodeBody(r, &body); err != nil {
		respondError(w, r, err)
		return
	}

	in := project.Input{
		Description: body.Description,
		LogoPath:    body.LogoPath,
		IsActive:    body.IsActive,
	}
	if body.Name != nil {
		in.Name = *body.Name
	}
	if body.Subdomain != nil {
		in.Subdomain = *body.Subdomain
	}
	if body.Settings != nil {
		in.Settings = *body.Settings
	}

	rec, err := project.Create(r.Context(), s.DB, userID(r), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, s.projectToView(rec))
}

func (s *Server) handleProjectGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadOwnedProject(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, s.projectToView(rec))
}

func (s *Server) handleProjectUpdate(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadOwnedProject(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var body projectPayload
	if err := decodeBody(r, &body); err != nil {
		respondError(w, r, err)
		return
	}

	in := project.Input{
		Name:        rec.Name,
		Subdomain:   rec.Subdomain,
		Description: rec.Description,
		LogoPath:    rec.LogoPath,
		Settings:    rec.Settings,
		IsActive:    &rec.IsActive,
	}
	if body.Name != nil {
		in.Name = *body.Name
	}
	if body.Subdomain != nil {
		in.Subdomain = *body.Subdomain
	}
	if body.Description != nil {
		in.Description = body.Description
	}
	if body.LogoPath != nil {
		in.LogoPath = body.LogoPath
	}
	if body.Settings != nil {
		in.Settings = *body.Settings
	}
	if body.IsActive != nil {
		in.IsActive = body.IsActive
	}

	updated, err := project.Update(r.Context(), s.DB, rec.ID, userID(r), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, s.projectToView(updated))
}

func (s *Server) handleProjectDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := project.Delete(r.Context(), s.DB, id, userID(r)); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Project deleted.")
}
