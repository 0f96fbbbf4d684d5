// internal/project/model.go
//
// Project (tenant) row model.
//
// Context
// -------
// A project is the tenant unit: one owning user, one globally unique
// subdomain, and at most one live landing-page template (direct FK plus a
// JSON customization overlay).  The operational state is a single
// `is_active` flag—inactive projects resolve to tenant-not-found on the
// public surface.
//
// Notes
// -----
//   • `template_customizations` is NULL until a template is configured;
//     NULL scans to a nil Overlay, distinct from the empty map written by
//     SetTemplate.
//   • Subdomain format is enforced at write time (internal/validate); the
//     resolver only looks up stored values.
package project

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/launchlist/launchlist/internal/template"
)

//
// Settings
//

// Settings is the per-project options blob stored in the `settings` JSON
// column.
type Settings struct {
	Theme         string `json:"theme,omitempty"` // light, dark, or auto
	CollectName   bool   `json:"collect_name,omitempty"`
	SocialSharing bool   `json:"social_sharing,omitempty"`
}

// Value implements driver.Valuer.
func (s Settings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *Settings) Scan(value any) error {
	switch data := value.(type) {
	case nil:
		*s = Settings{}
		return nil
	case []byte:
		return json.Unmarshal(data, s)
	case string:
		return json.Unmarshal([]byte(data), s)
	default:
		return fmt.Errorf("project: cannot scan %T into Settings", value)
	}
}

//
// Row model
//

// Record mirrors one row in the `projects` table.
type Record struct {
	ID             uint64           `db:"id"`
	UserID         uint64           `db:"user_id"`
	Name           string           `db:"name"`
	Subdomain      string           `db:"subdomain"`
	Description    *string          `db:"description"`
	LogoPath       *string          `db:"logo_path"`
	Settings       Settings         `db:"settings"`
	IsActive       bool             `db:"is_active"`
	TemplateID     *uint64          `db:"waitlist_template_id"`
	Customizations template.Overlay `db:"template_customizations"`
	CreatedAt      time.Time        `db:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at"`
}

// HasTemplate reports whether a landing-page template is bound.
func (r *Record) HasTemplate() bool { return r.TemplateID != nil }
