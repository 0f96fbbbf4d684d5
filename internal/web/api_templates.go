// internal/web/api_templates.go
//
// Owner API: template catalog reads and project ↔ template binding.
//
// Binding is owner-scoped through loadOwnedProject; the catalog itself
// is shared, so the list and get handlers only require a logged-in
// owner, not ownership of anything.
package web

import (
	"net/http"

	"github.com/launchlist/launchlist/internal/project"
	"github.com/launchlist/launchlist/internal/template"
	"github.com/launchlist/launchlist/internal/validate"
)

// templateView is the owner-facing JSON shape of a catalog row.
type templateView struct {
	ID            uint64             `json:"id"`
	Name          string             `json:"name"`
	Slug          string             `json:"slug"`
	Description   string             `json:"description"`
	Structure     template.Structure `json:"structure"`
	ThumbnailPath *string            `json:"thumbnail_path,omitempty"`
	IsDefault     bool               `json:"is_default"`
}

func templateToView(t *template.Record) templateView {
	return templateView{
		ID:            t.ID,
		Name:          t.Name,
		Slug:          t.Slug,
		Description:   t.Description,
		Structure:     t.Structure,
		ThumbnailPath: t.ThumbnailPath,
		IsDefault:     t.IsDefault,
	}
}

func (s *Server) handleTemplateList(w http.ResponseWriter, r *http.Request) {
	recs, err := template.ListActive(r.Context(), s.DB)
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]templateView, 0, len(recs))
	for i := range recs {
		out = append(out, templateToView(&recs[i]))
	}
	respondData(w, http.StatusOK, out)
}

func (s *Server) handleTemplateGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	rec, err := template.ByID(r.Context(), s.DB, id)
	if err != nil || !rec.IsActive {
		respondError(w, r, template.ErrNotFound)
		return
	}
	respondData(w, http.StatusOK, templateToView(rec))
}

// bindRequest names the template to bind.
type bindRequest struct {
	TemplateID uint64 `json:"template_id"`
}

// handleTemplateSet binds a template to the project, resetting any prior
// customizations.
func (s *Server) handleTemplateSet(w http.ResponseWriter, r *http.Request) {
	proj, err := s.loadOwnedProject(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var body bindRequest
	if err := decodeBody(r, &body); err != nil {
		respondError(w, r, err)
		return
	}

	tmpl, err := template.ByID(r.Context(), s.DB, body.TemplateID)
	if err != nil || !tmpl.IsActive {
		errs := validate.FieldErrors{}
		errs.Add("template_id", "This template is not available.")
		respondError(w, r, errs)
		return
	}

	if err := project.SetTemplate(r.Context(), s.DB, proj, tmpl); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, s.projectToView(proj))
}

// customizeRequest carries the sparse overlay patch.
type customizeRequest struct {
	TemplateID     uint64           `json:"template_id"`
	Customizations template.Overlay `json:"customizations"`
}

// handleCustomize merges an overlay patch into the project's current
// binding.
func (s *Server) handleCustomize(w http.ResponseWriter, r *http.Request) {
	proj, err := s.loadOwnedProject(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var body customizeRequest
	if err := decodeBody(r, &body); err != nil {
		respondError(w, r, err)
		return
	}

	if err := project.UpdateCustomizations(r.Context(), s.DB, proj, body.TemplateID, body.Customizations); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, s.projectToView(proj))
}

// handleTemplateRemove unbinds the template and clears the overlay.
func (s *Server) handleTemplateRemove(w http.ResponseWriter, r *http.Request) {
	proj, err := s.loadOwnedProject(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := project.RemoveTemplate(r.Context(), s.DB, proj); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, s.projectToView(proj))
}

// previewPayload mirrors the public landing shape so the dashboard
// preview and the live page render from identical data.
type previewPayload struct {
	Template *template.Merged `json:"template"`
}

// handlePreview returns the merged view for the project's binding, or a
// null template when nothing is bound.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	proj, err := s.loadOwnedProject(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	merged, err := project.MergedView(r.Context(), s.DB, proj)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, previewPayload{Template: merged})
}
