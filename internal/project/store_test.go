// internal/project/store_test.go
//
// Unit-tests for the project query helpers using sqlmock.
//
// Run: go test ./internal/project -v

package project

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/launchlist/launchlist/internal/validate"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "sqlmock"), mock
}

func rowColumns() []string {
	return []string{"id", "user_id", "name", "subdomain", "description", "logo_path",
		"settings", "is_active", "waitlist_template_id", "template_customizations",
		"created_at", "updated_at"}
}

func addProjectRow(rows *sqlmock.Rows, id, userID uint64, sub string, tmplID any, custom any) *sqlmock.Rows {
	return rows.AddRow(id, userID, "Acme", sub, nil, nil, []byte(`{"theme":"light"}`),
		true, tmplID, custom, time.Now(), time.Now())
}

func TestByIDOwnershipInPredicate(t *testing.T) {
	db, mock := newMockDB(t)

	// The row exists but belongs to user 1; the query for user 2 returns
	// nothing, and the caller cannot tell that apart from a missing row.
	mock.ExpectQuery("FROM projects").
		WithArgs(uint64(7), uint64(2)).
		WillReturnRows(sqlmock.NewRows(rowColumns()))

	_, err := ByID(context.Background(), db, 7, 2)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestBySubdomainScansOverlay(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("FROM projects").
		WithArgs("acme").
		WillReturnRows(addProjectRow(sqlmock.NewRows(rowColumns()),
			7, 1, "acme", 3, []byte(`{"heading":"Hi"}`)))

	rec, err := BySubdomain(context.Background(), db, "acme")
	if err != nil {
		t.Fatalf("BySubdomain error: %v", err)
	}
	if !rec.HasTemplate() || *rec.TemplateID != 3 {
		t.Fatalf("template not scanned: %#v", rec)
	}
	if rec.Customizations["heading"] != "Hi" {
		t.Fatalf("overlay not scanned: %#v", rec.Customizations)
	}
	if rec.Settings.Theme != "light" {
		t.Fatalf("settings not scanned: %#v", rec.Settings)
	}
}

func TestBySubdomainNullOverlayIsNil(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("FROM projects").
		WithArgs("acme").
		WillReturnRows(addProjectRow(sqlmock.NewRows(rowColumns()), 7, 1, "acme", nil, nil))

	rec, err := BySubdomain(context.Background(), db, "acme")
	if err != nil {
		t.Fatalf("BySubdomain error: %v", err)
	}
	if rec.HasTemplate() {
		t.Fatal("expected no template")
	}
	if rec.Customizations != nil {
		t.Fatalf("NULL overlay must scan to nil, got %#v", rec.Customizations)
	}
}

func TestCreateValidation(t *testing.T) {
	db, _ := newMockDB(t)

	_, err := Create(context.Background(), db, 1, Input{
		Name:      "",
		Subdomain: "-bad-",
		Settings:  Settings{Theme: "neon"},
	})

	var errs validate.FieldErrors
	if !errors.As(err, &errs) {
		t.Fatalf("want FieldErrors, got %v", err)
	}
	for _, field := range []string{"name", "subdomain", "settings.theme"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("missing error for %q: %#v", field, errs)
		}
	}
}

func TestCreateDuplicateSubdomain(t *testing.T) {
	db, mock := newMockDB(t)

	// Pre-check passes, the INSERT races another writer, and 1062 is
	// translated into the same friendly error.
	mock.ExpectQuery("SELECT 1 FROM projects").
		WithArgs("acme", uint64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectExec("INSERT INTO projects").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := Create(context.Background(), db, 1, Input{Name: "Acme", Subdomain: "acme"})

	var errs validate.FieldErrors
	if !errors.As(err, &errs) {
		t.Fatalf("want FieldErrors, got %v", err)
	}
	if got := errs["subdomain"]; len(got) != 1 || got[0] != "This subdomain is already taken." {
		t.Fatalf("unexpected message: %#v", errs)
	}
}

func TestDeleteNotOwned(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("DELETE FROM projects").
		WithArgs(uint64(7), uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := Delete(context.Background(), db, 7, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
