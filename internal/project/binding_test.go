// internal/project/binding_test.go
//
// Unit-tests for the template-binding operations using sqlmock.
//
// Run: go test ./internal/project -v

package project

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/launchlist/launchlist/internal/template"
	"github.com/launchlist/launchlist/internal/validate"
)

func boundProject(tmplID uint64, overlay template.Overlay) *Record {
	p := &Record{ID: 7, UserID: 1, Name: "Acme", Subdomain: "acme", IsActive: true}
	if tmplID != 0 {
		p.TemplateID = &tmplID
		p.Customizations = overlay
	}
	return p
}

func TestSetTemplateResetsOverlay(t *testing.T) {
	db, mock := newMockDB(t)

	// Rebinding—even to the template already bound—discards the overlay.
	p := boundProject(3, template.Overlay{"heading": "Old"})
	tmpl := &template.Record{ID: 3}

	mock.ExpectExec("UPDATE projects").
		WithArgs(uint64(3), []byte(`{}`), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := SetTemplate(context.Background(), db, p, tmpl); err != nil {
		t.Fatalf("SetTemplate error: %v", err)
	}
	if p.TemplateID == nil || *p.TemplateID != 3 {
		t.Fatalf("binding not applied: %#v", p)
	}
	if p.Customizations == nil || len(p.Customizations) != 0 {
		t.Fatalf("overlay not reset to empty map: %#v", p.Customizations)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestUpdateCustomizationsMismatch(t *testing.T) {
	db, _ := newMockDB(t)

	p := boundProject(3, template.Overlay{})
	err := UpdateCustomizations(context.Background(), db, p, 4,
		template.Overlay{"heading": "Hi"})
	if !errors.Is(err, ErrBindingMismatch) {
		t.Fatalf("want ErrBindingMismatch, got %v", err)
	}

	// Unbound projects mismatch every template.
	err = UpdateCustomizations(context.Background(), db, boundProject(0, nil), 3,
		template.Overlay{"heading": "Hi"})
	if !errors.Is(err, ErrBindingMismatch) {
		t.Fatalf("want ErrBindingMismatch for unbound project, got %v", err)
	}
}

func TestUpdateCustomizationsInvalidPatch(t *testing.T) {
	db, _ := newMockDB(t)

	p := boundProject(3, template.Overlay{})
	err := UpdateCustomizations(context.Background(), db, p, 3,
		template.Overlay{"buttonColor": "blue"})

	var errs validate.FieldErrors
	if !errors.As(err, &errs) {
		t.Fatalf("want FieldErrors, got %v", err)
	}
	if _, ok := errs["buttonColor"]; !ok {
		t.Fatalf("missing buttonColor error: %#v", errs)
	}
}

func TestUpdateCustomizationsShallowMerge(t *testing.T) {
	db, mock := newMockDB(t)

	p := boundProject(3, template.Overlay{"heading": "Old", "textColor": "#111"})

	mock.ExpectExec("UPDATE projects").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := UpdateCustomizations(context.Background(), db, p, 3,
		template.Overlay{"heading": "New"})
	if err != nil {
		t.Fatalf("UpdateCustomizations error: %v", err)
	}
	if p.Customizations["heading"] != "New" {
		t.Errorf("patched key not overwritten: %#v", p.Customizations)
	}
	if p.Customizations["textColor"] != "#111" {
		t.Errorf("absent key not retained: %#v", p.Customizations)
	}
}

func TestRemoveTemplateClearsToNull(t *testing.T) {
	db, mock := newMockDB(t)

	p := boundProject(3, template.Overlay{"heading": "Hi"})

	mock.ExpectExec("UPDATE projects").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := RemoveTemplate(context.Background(), db, p); err != nil {
		t.Fatalf("RemoveTemplate error: %v", err)
	}
	if p.TemplateID != nil {
		t.Error("template reference not cleared")
	}
	if p.Customizations != nil {
		t.Error("overlay must clear to nil, not empty map")
	}
}

func TestMergedViewUnbound(t *testing.T) {
	db, _ := newMockDB(t)

	// No binding → (nil, nil): the caller renders the "no template" state
	// without touching the catalog.
	m, err := MergedView(context.Background(), db, boundProject(0, nil))
	if err != nil {
		t.Fatalf("MergedView error: %v", err)
	}
	if m != nil {
		t.Fatalf("want nil view, got %#v", m)
	}
}
