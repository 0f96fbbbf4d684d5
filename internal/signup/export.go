// internal/signup/export.go
//
// CSV export of a project's signup list.
//
// Rules
// -----
// 1. Fixed header: Name, Email, Signup Date, Verified.
// 2. Verified renders Yes/No; dates render "2006-01-02 15:04:05".
// 3. Filename is "{slug}-waitlist-{YYYY-MM-DD}.csv" from the project name
//    and the export date.
package signup

import (
	"encoding/csv"
	"io"
	"strings"
	"time"
)

const exportDateFormat = "2006-01-02 15:04:05"

// WriteCSV streams recs to w in export order (caller decides ordering).
func WriteCSV(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "Email", "Signup Date", "Verified"}); err != nil {
		return err
	}
	for i := range recs {
		r := &recs[i]
		name := ""
		if r.Name != nil {
			name = *r.Name
		}
		verified := "No"
		if r.IsVerified() {
			verified = "Yes"
		}
		row := []string{name, r.Email, r.CreatedAt.Format(exportDateFormat), verified}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename builds the attachment name from the project name and the
// export date, e.g. "Acme Launch!" → "acme-launch-waitlist-2026-08-28.csv".
func ExportFilename(projectName string, now time.Time) string {
	return slugify(projectName) + "-waitlist-" + now.Format("2006-01-02") + ".csv"
}

// slugify converts arbitrary text to lower-kebab ASCII: runs of anything
// outside [a-z0-9] collapse to one dash, edges trimmed, empty → "project".
func slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastWasDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasDash = false
		default:
			if !lastWasDash {
				b.WriteRune('-')
				lastWasDash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "project"
	}
	return slug
}
