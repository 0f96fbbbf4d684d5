// internal/signup/model.go
//
// Signup row model and lifecycle helpers.
//
// Context
// -------
// A signup is one visitor's waitlist entry for one project.  It is born
// pending—verification token set, verified_at NULL—and transitions once,
// irreversibly, to verified: token cleared, verified_at stamped.  There
// is no reject or unsubscribe state.
//
// The verification token and IP address never leave the service in API
// payloads (`json:"-"`), mirroring what the dashboard is allowed to see.
package signup

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

//
// Metadata
//

// Metadata is the free-form JSON blob captured at submission time
// (browser, device, country, and similar request hints).
type Metadata map[string]any

// Value implements driver.Valuer.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *Metadata) Scan(value any) error {
	switch data := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return json.Unmarshal(data, m)
	case string:
		return json.Unmarshal([]byte(data), m)
	default:
		return fmt.Errorf("signup: cannot scan %T into Metadata", value)
	}
}

//
// Row model
//

// Record mirrors one row in the `signups` table.
type Record struct {
	ID                uint64     `db:"id"                 json:"id"`
	ProjectID         uint64     `db:"project_id"         json:"project_id"`
	Email             string     `db:"email"              json:"email"`
	Name              *string    `db:"name"               json:"name,omitempty"`
	Metadata          Metadata   `db:"metadata"           json:"metadata,omitempty"`
	VerificationToken *string    `db:"verification_token" json:"-"`
	VerifiedAt        *time.Time `db:"verified_at"        json:"verified_at,omitempty"`
	IPAddress         *string    `db:"ip_address"         json:"-"`
	UserAgent         *string    `db:"user_agent"         json:"user_agent,omitempty"`
	Referrer          *string    `db:"referrer"           json:"referrer,omitempty"`
	CreatedAt         time.Time  `db:"created_at"         json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"         json:"updated_at"`
}

// IsVerified reports whether the one-way transition has happened.
func (r *Record) IsVerified() bool { return r.VerifiedAt != nil }
