// internal/web/api_signups.go
//
// Owner API: signup list, dashboard stats, CSV export, and deletion.
//
// All four routes resolve the project through loadOwnedProject first, so
// a signup belonging to someone else's project is unreachable no matter
// what IDs the client guesses.
package web

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/launchlist/launchlist/internal/signup"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// listFilters decodes the query-string filters shared by the list and
// export handlers.
func listFilters(r *http.Request, paginate bool) signup.Filters {
	q := r.URL.Query()
	f := signup.Filters{Search: q.Get("search")}

	switch q.Get("verified") {
	case "true", "1", "yes":
		t := true
		f.Verified = &t
	case "false", "0", "no":
		v := false
		f.Verified = &v
	}

	if from, err := time.Parse("2006-01-02", q.Get("from")); err == nil {
		f.DateFrom = &from
	}
	if to, err := time.Parse("2006-01-02", q.Get("to")); err == nil {
		end := to.AddDate(0, 0, 1).Add(-time.Second)
		f.DateTo = &end
	}

	if paginate {
		f.Limit = defaultPageSize
		if n, err := strconv.Atoi(q.Get("per_page")); err == nil && n > 0 {
			f.Limit = min(n, maxPageSize)
		}
		if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 1 {
			f.Offset = (page - 1) * f.Limit
		}
	}
	return f
}

// signupListPayload is the paginated list response.
type signupListPayload struct {
	Signups []signup.Record `json:"signups"`
	Total   int             `json:"total"`
	PerPage int             `json:"per_page"`
}

func (s *Server) handleSignupList(w http.ResponseWriter, r *http.Request) {
	proj, err := s.loadOwnedProject(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	f := listFilters(r, true)
	recs, total, err := signup.ListForProject(r.Context(), s.DB, proj.ID, f)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, signupListPayload{
		Signups: recs,
		Total:   total,
		PerPage: f.Limit,
	})
}

// signupStatsPayload is the dashboard summary response.
type signupStatsPayload struct {
	signup.Stats
	Daily []signup.DailyCount `json:"daily"`
}

func (s *Server) handleSignupStats(w http.ResponseWriter, r *http.Request) {
	proj, err := s.loadOwnedProject(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	stats, err := signup.StatsForProject(r.Context(), s.DB, proj.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	daily, err := signup.CountByDay(r.Context(), s.DB, proj.ID, 30)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, signupStatsPayload{Stats: stats, Daily: daily})
}

// handleSignupExport streams the full filtered list as a CSV attachment.
func (s *Server) handleSignupExport(w http.ResponseWriter, r *http.Request) {
	proj, err := s.loadOwnedProject(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	// Exports are unpaginated: the dashboard wants the whole list.
	recs, _, err := signup.ListForProject(r.Context(), s.DB, proj.ID, listFilters(r, false))
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		`attachment; filename="`+signup.ExportFilename(proj.Name, time.Now().UTC())+`"`)
	if err := signup.WriteCSV(w, recs); err != nil {
		// Headers are already on the wire; all we can do is log.
		zap.L().Error("csv export failed",
			zap.Uint64("project_id", proj.ID), zap.Error(err))
	}
}

func (s *Server) handleSignupDelete(w http.ResponseWriter, r *http.Request) {
	proj, err := s.loadOwnedProject(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	signupID, err := pathID(r, "signupID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := signup.Delete(r.Context(), s.DB, signupID, proj.ID); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Signup deleted.")
}
