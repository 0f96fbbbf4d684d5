// internal/template/merge.go
//
// Three-tier customization merge.
//
// Context
// -------
// A project may override a fixed set of template fields through its
// customization overlay.  The merge rule, applied identically in owner
// preview and public rendering, is:
//
//	overlay value → template structure default → application default
//
// The structure default for `heading` is the first header component's
// content; for `description`, the first text component; for `buttonText`,
// the first form button label.  Colors fall back to the structure's
// settings block.  The hardcoded application defaults are the last resort
// so a sparse template still renders.
package template

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/launchlist/launchlist/internal/validate"
)

//
// Overlay
//

// Overlay keys.  Anything outside this set is rejected at validation time.
const (
	KeyHeading         = "heading"
	KeyDescription     = "description"
	KeyButtonText      = "buttonText"
	KeyBackgroundColor = "backgroundColor"
	KeyTextColor       = "textColor"
	KeyButtonColor     = "buttonColor"
	KeyButtonTextColor = "buttonTextColor"
)

var colorKeys = map[string]struct{}{
	KeyBackgroundColor: {},
	KeyTextColor:       {},
	KeyButtonColor:     {},
	KeyButtonTextColor: {},
}

var overlayKeys = map[string]struct{}{
	KeyHeading:         {},
	KeyDescription:     {},
	KeyButtonText:      {},
	KeyBackgroundColor: {},
	KeyTextColor:       {},
	KeyButtonColor:     {},
	KeyButtonTextColor: {},
}

// Overlay is a project's sparse customization map, persisted as the JSON
// `template_customizations` column on `projects`.
type Overlay map[string]string

// Value implements driver.Valuer.
func (o Overlay) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal(o)
}

// Scan implements sql.Scanner.  A NULL column scans to a nil map, which
// is how "never configured" stays distinct from "configured with
// defaults" (empty map).
func (o *Overlay) Scan(value any) error {
	switch data := value.(type) {
	case nil:
		*o = nil
		return nil
	case []byte:
		return json.Unmarshal(data, o)
	case string:
		return json.Unmarshal([]byte(data), o)
	default:
		return fmt.Errorf("template: cannot scan %T into Overlay", value)
	}
}

// ValidateOverlay checks patch keys and color formats, returning field
// errors keyed by overlay key.
func ValidateOverlay(patch Overlay) validate.FieldErrors {
	errs := validate.FieldErrors{}
	for k, v := range patch {
		if _, ok := overlayKeys[k]; !ok {
			errs.Add(k, "Unknown customization field.")
			continue
		}
		if _, isColor := colorKeys[k]; isColor && v != "" && !validate.HexColor(v) {
			errs.Add(k, "Must be a 3- or 6-digit hex color.")
		}
	}
	return errs
}

//
// Merge
//

// Application defaults, the final fallback tier.
const (
	DefaultHeading         = "Join the waitlist"
	DefaultDescription     = "Be the first to know when we launch."
	DefaultButtonText      = "Join the waitlist"
	DefaultBackgroundColor = "#ffffff"
	DefaultTextColor       = "#000000"
	DefaultButtonColor     = "#4f46e5"
	DefaultButtonTextColor = "#ffffff"
)

// Merged is the renderable view handed to the UI layer: flattened fields
// after the three-tier merge plus the raw structure tree.
type Merged struct {
	Heading         string    `json:"heading"`
	Description     string    `json:"description"`
	ButtonText      string    `json:"buttonText"`
	BackgroundColor string    `json:"backgroundColor"`
	TextColor       string    `json:"textColor"`
	ButtonColor     string    `json:"buttonColor"`
	ButtonTextColor string    `json:"buttonTextColor"`
	Structure       Structure `json:"structure"`
}

// Merge applies overlay over t's structure defaults over the application
// defaults.  Read-only and side-effect-free; a nil overlay behaves like
// an empty one.
func Merge(t *Record, o Overlay) Merged {
	pick := func(key, structureDefault, appDefault string) string {
		if v, ok := o[key]; ok && v != "" {
			return v
		}
		if structureDefault != "" {
			return structureDefault
		}
		return appDefault
	}

	s := t.Structure
	return Merged{
		Heading:         pick(KeyHeading, s.FirstHeader(), DefaultHeading),
		Description:     pick(KeyDescription, s.FirstText(), DefaultDescription),
		ButtonText:      pick(KeyButtonText, s.ButtonText(), DefaultButtonText),
		BackgroundColor: pick(KeyBackgroundColor, s.Settings.BackgroundColor, DefaultBackgroundColor),
		TextColor:       pick(KeyTextColor, s.Settings.TextColor, DefaultTextColor),
		ButtonColor:     pick(KeyButtonColor, s.Settings.ButtonColor, DefaultButtonColor),
		ButtonTextColor: pick(KeyButtonTextColor, s.Settings.ButtonTextColor, DefaultButtonTextColor),
		Structure:       s,
	}
}
