// internal/validate/validate.go
//
// Field-level validation helpers shared by the public signup surface and
// the owner API.
//
// Context
// -------
// Handlers collect user input, run the checks below, and accumulate
// failures in a FieldErrors map keyed by input name.  A non-empty map maps
// to a 422 response whose `errors` object mirrors the map; system failures
// stay ordinary errors and become 500s.  Built-in formats (email, hex
// color) ride on go-playground/validator; the subdomain rule is a custom
// pattern because DNS labels are stricter than `hostname_rfc1123` alone.
//
// Notes
// -----
//   • Subdomains: lowercase alphanumeric plus hyphen, 3–63 chars, no
//     leading or trailing hyphen.  Validated here, at write time—the
//     tenant resolver only looks up already-stored values.
//   • Colors: 3- or 6-digit hex with leading “#”.
package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var v = validator.New()

var (
	subdomainRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$`)
	hexColorRe  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

//
// FieldErrors
//

// FieldErrors maps an input field name to one or more user-facing
// messages.  It satisfies error so store and service code can return it
// through ordinary error plumbing; callers unwrap with errors.As.
type FieldErrors map[string][]string

func (fe FieldErrors) Error() string { return "validation failed" }

// Add appends a message for field.
func (fe FieldErrors) Add(field, msg string) { fe[field] = append(fe[field], msg) }

// Any reports whether at least one field failed.
func (fe FieldErrors) Any() bool { return len(fe) > 0 }

//
// Field checks
//

// Email reports whether s is a syntactically valid email address of at
// most 255 characters.
func Email(s string) bool {
	if s == "" || len(s) > 255 {
		return false
	}
	return v.Var(s, "email") == nil
}

// Subdomain reports whether s is a valid project subdomain label.
func Subdomain(s string) bool {
	if len(s) < 3 || len(s) > 63 {
		return false
	}
	return subdomainRe.MatchString(s)
}

// HexColor reports whether s is a 3- or 6-digit hex color.
func HexColor(s string) bool { return hexColorRe.MatchString(s) }
