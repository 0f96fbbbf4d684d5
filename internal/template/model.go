// internal/template/model.go
//
// Waitlist template catalog: row model and structure tree.
//
// Context
// -------
// A template is a reusable landing-page definition shared by every
// project.  Its `structure` column is a JSON document: template-level
// default settings (colors) plus an ordered tree of typed components.
// The tree is decoded into a fixed tagged-variant model—discriminated by
// the `type` field—so a malformed template fails at load time, not at
// render time.
//
// Notes
// -----
//   • Templates are seeded and administered out of band; the service only
//     reads them.
//   • Oxford commas, two spaces after periods.
package template

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

//
// Row model
//

// Record mirrors one row in the `waitlist_templates` table.
type Record struct {
	ID            uint64    `db:"id"`
	Name          string    `db:"name"`
	Slug          string    `db:"slug"`
	Description   string    `db:"description"`
	Structure     Structure `db:"structure"`
	ThumbnailPath *string   `db:"thumbnail_path"`
	IsActive      bool      `db:"is_active"`
	IsDefault     bool      `db:"is_default"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

//
// Structure tree
//

// Settings holds the template-level default colors.  Overlay values, when
// present, win over these; the application defaults in merge.go are the
// final fallback.
type Settings struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	ButtonColor     string `json:"buttonColor,omitempty"`
	ButtonTextColor string `json:"buttonTextColor,omitempty"`
	AccentColor     string `json:"accentColor,omitempty"`
}

// Structure is the decoded `structure` JSON column.
type Structure struct {
	TemplateType string      `json:"template_type,omitempty"`
	Settings     Settings    `json:"settings"`
	Components   []Component `json:"components"`
}

// Value implements driver.Valuer so Structure persists as JSON.
func (s Structure) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *Structure) Scan(value any) error {
	switch data := value.(type) {
	case nil:
		*s = Structure{}
		return nil
	case []byte:
		return json.Unmarshal(data, s)
	case string:
		return json.Unmarshal([]byte(data), s)
	default:
		return fmt.Errorf("template: cannot scan %T into Structure", value)
	}
}

//
// Components
//

// ComponentType discriminates the variants of the structure tree.
type ComponentType string

const (
	TypeHeader  ComponentType = "header"
	TypeText    ComponentType = "text"
	TypeForm    ComponentType = "form"
	TypeImage   ComponentType = "image"
	TypeLayout  ComponentType = "layout"
	TypeContent ComponentType = "content"
	TypeDiv     ComponentType = "div"
)

var knownTypes = map[ComponentType]struct{}{
	TypeHeader:  {},
	TypeText:    {},
	TypeForm:    {},
	TypeImage:   {},
	TypeLayout:  {},
	TypeContent: {},
	TypeDiv:     {},
}

// Component is one node of the structure tree.  Fields beyond Type are
// populated per variant: header and text carry Content, image carries
// Src/Alt, form carries Fields and Button, and layout, content, and div
// carry Children.
type Component struct {
	Type           ComponentType `json:"type"`
	Content        string        `json:"content,omitempty"`
	Level          int           `json:"level,omitempty"`
	ClassName      string        `json:"className,omitempty"`
	Variant        string        `json:"variant,omitempty"`
	Position       string        `json:"position,omitempty"`
	Src            string        `json:"src,omitempty"`
	Alt            string        `json:"alt,omitempty"`
	Children       []Component   `json:"children,omitempty"`
	Fields         []FormField   `json:"fields,omitempty"`
	Button         *FormButton   `json:"button,omitempty"`
	SuccessMessage string        `json:"success_message,omitempty"`
}

// FormField is one input of a form component.
type FormField struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Placeholder string `json:"placeholder,omitempty"`
	Label       string `json:"label,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// FormButton is the submit control of a form component.
type FormButton struct {
	Text      string `json:"text"`
	ClassName string `json:"className,omitempty"`
}

// UnmarshalJSON decodes one component and rejects unknown discriminators
// so a corrupt catalog row surfaces immediately.
func (c *Component) UnmarshalJSON(data []byte) error {
	type alias Component
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if _, ok := knownTypes[a.Type]; !ok {
		return fmt.Errorf("template: unknown component type %q", a.Type)
	}
	*c = Component(a)
	return nil
}

//
// Tree walks used by the merge
//

// FirstHeader returns the content of the first header component in
// document order, or "".
func (s Structure) FirstHeader() string {
	return firstContent(s.Components, TypeHeader)
}

// FirstText returns the content of the first text component in document
// order, or "".
func (s Structure) FirstText() string {
	return firstContent(s.Components, TypeText)
}

// ButtonText returns the submit-button label of the first form component,
// or "".
func (s Structure) ButtonText() string {
	var out string
	walk(s.Components, func(c *Component) bool {
		if c.Type == TypeForm && c.Button != nil {
			out = c.Button.Text
			return false
		}
		return true
	})
	return out
}

func firstContent(cs []Component, t ComponentType) string {
	var out string
	walk(cs, func(c *Component) bool {
		if c.Type == t && c.Content != "" {
			out = c.Content
			return false
		}
		return true
	})
	return out
}

// walk visits components depth-first; the visitor returns false to stop.
func walk(cs []Component, fn func(*Component) bool) bool {
	for i := range cs {
		if !fn(&cs[i]) {
			return false
		}
		if !walk(cs[i].Children, fn) {
			return false
		}
	}
	return true
}
