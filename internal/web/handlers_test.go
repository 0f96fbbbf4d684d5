// internal/web/handlers_test.go
//
// HTTP-surface tests: response shapes, status codes, and redirects using
// httptest over a sqlmock-backed server.
//
// Run: go test ./internal/web -v

package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/launchlist/launchlist/internal/tenant"
)

func newTestServer(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { raw.Close() })
	db := sqlx.NewDb(raw, "sqlmock")

	urls := tenant.URLBuilder{Scheme: "https", Domain: "launchlist.dev"}
	return NewServer(db, urls, false).Router(), mock
}

func projectRowColumns() []string {
	return []string{"id", "user_id", "name", "subdomain", "description", "logo_path",
		"settings", "is_active", "waitlist_template_id", "template_customizations",
		"created_at", "updated_at"}
}

// wireEnvelope mirrors the response wrapper for decoding in assertions.
type wireEnvelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
	Data    json.RawMessage     `json:"data"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) wireEnvelope {
	t.Helper()
	var env wireEnvelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return env
}

func TestSignupUnknownProject(t *testing.T) {
	h, mock := newTestServer(t)

	mock.ExpectQuery("FROM projects").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(projectRowColumns()))

	req := httptest.NewRequest(http.MethodPost, "/signup/ghost",
		strings.NewReader(`{"email":"user@example.com"}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	env := decodeEnvelope(t, rr)
	if env.Success || env.Message != "Project not found or inactive." {
		t.Fatalf("unexpected payload: %+v", env)
	}
}

func TestSignupValidationErrors(t *testing.T) {
	h, mock := newTestServer(t)

	mock.ExpectQuery("FROM projects").
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows(projectRowColumns()).
			AddRow(7, 1, "Acme", "acme", nil, nil, []byte(`{}`), true, nil, nil,
				time.Now(), time.Now()))

	req := httptest.NewRequest(http.MethodPost, "/signup/acme",
		strings.NewReader(`{"email":"bogus"}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rr.Code)
	}
	env := decodeEnvelope(t, rr)
	if env.Message != "Validation errors" {
		t.Errorf("message = %q", env.Message)
	}
	if len(env.Errors["email"]) == 0 {
		t.Errorf("missing email field error: %+v", env.Errors)
	}
}

func TestSignupSuccess(t *testing.T) {
	h, mock := newTestServer(t)

	mock.ExpectQuery("FROM projects").
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows(projectRowColumns()).
			AddRow(7, 1, "Acme", "acme", nil, nil, []byte(`{}`), true, nil, nil,
				time.Now(), time.Now()))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))
	mock.ExpectExec("INSERT INTO signups").
		WillReturnResult(sqlmock.NewResult(11, 1))

	req := httptest.NewRequest(http.MethodPost, "/signup/acme",
		strings.NewReader(`{"email":"user@example.com","name":"Amy"}`))
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh) Chrome/124.0")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rr.Code, rr.Body.String())
	}
	env := decodeEnvelope(t, rr)
	if !env.Success || env.Message != "Thank you for signing up!" {
		t.Fatalf("unexpected payload: %+v", env)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestVerifyUnknownTokenRedirectsHome(t *testing.T) {
	h, mock := newTestServer(t)

	mock.ExpectQuery("FROM signups").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := httptest.NewRequest(http.MethodGet, "/verify/nope", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "https://launchlist.dev/?verify_error=1" {
		t.Fatalf("location = %q", loc)
	}
}

func TestLandingNoTemplate(t *testing.T) {
	h, mock := newTestServer(t)

	mock.ExpectQuery("FROM projects").
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows(projectRowColumns()).
			AddRow(7, 1, "Acme", "acme", nil, nil, []byte(`{}`), true, nil, nil,
				time.Now(), time.Now()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "acme.launchlist.dev"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rr.Code, rr.Body.String())
	}

	var payload struct {
		Project  struct{ Subdomain string } `json:"project"`
		Template json.RawMessage            `json:"template"`
	}
	env := decodeEnvelope(t, rr)
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if payload.Project.Subdomain != "acme" {
		t.Errorf("subdomain = %q", payload.Project.Subdomain)
	}
	if string(payload.Template) != "null" {
		t.Errorf("template = %s, want null", payload.Template)
	}
}

func TestLandingUnknownHost(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "launchlist.dev" // apex, never a tenant
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestSecurityHeadersReachTheWire(t *testing.T) {
	h, mock := newTestServer(t)

	// A handler that has already called WriteHeader must still carry the
	// security headers, so they have to be set before the handler runs.
	mock.ExpectQuery("FROM projects").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(projectRowColumns()))

	req := httptest.NewRequest(http.MethodPost, "/signup/ghost",
		strings.NewReader(`{"email":"user@example.com"}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	// Result() snapshots the header map at WriteHeader time, exactly as
	// net/http does on a live connection; headers added after the handler
	// wrote would be invisible here.
	res := rr.Result()
	defer res.Body.Close()

	want := map[string]string{
		"Strict-Transport-Security": "max-age=63072000; includeSubDomains; preload",
		"X-Frame-Options":           "DENY",
		"X-Content-Type-Options":    "nosniff",
		"Referrer-Policy":           "strict-origin-when-cross-origin",
	}
	for name, val := range want {
		if got := res.Header.Get(name); got != val {
			t.Errorf("%s = %q, want %q", name, got, val)
		}
	}
	if res.Header.Get("Content-Security-Policy") == "" {
		t.Error("Content-Security-Policy missing")
	}
}

func TestAPIRequiresUser(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/projects/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestAPITemplateList(t *testing.T) {
	h, mock := newTestServer(t)

	mock.ExpectQuery("FROM waitlist_templates").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "description",
			"structure", "thumbnail_path", "is_active", "is_default",
			"created_at", "updated_at"}).
			AddRow(1, "One-Page Centered", "one-page-centered", "Clean layout.",
				[]byte(`{"components":[]}`), nil, true, true, time.Now(), time.Now()))

	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	req.Header.Set("X-User-ID", "42")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rr.Code, rr.Body.String())
	}
	env := decodeEnvelope(t, rr)
	var views []struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(env.Data, &views); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(views) != 1 || views[0].Slug != "one-page-centered" {
		t.Fatalf("unexpected list: %+v", views)
	}
}
