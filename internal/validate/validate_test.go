// internal/validate/validate_test.go
//
// Table tests for the shared field checks.
//
// Run: go test ./internal/validate -v

package validate

import (
	"strings"
	"testing"
)

func TestEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"user@example.com", true},
		{"USER+tag@sub.example.co.uk", true},
		{"", false},
		{"not-an-email", false},
		{"missing@tld@twice.com", false},
		{strings.Repeat("a", 250) + "@example.com", false}, // over 255
	}
	for _, c := range cases {
		if got := Email(c.in); got != c.want {
			t.Errorf("Email(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSubdomain(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"acme", true},
		{"my-app-2", true},
		{"abc", true},
		{"ab", false},                       // too short
		{strings.Repeat("a", 64), false},    // too long
		{strings.Repeat("a", 63), true},     // boundary
		{"-acme", false},                    // leading hyphen
		{"acme-", false},                    // trailing hyphen
		{"Acme", false},                     // uppercase
		{"acme.app", false},                 // dot
		{"app_2", false},                    // underscore
	}
	for _, c := range cases {
		if got := Subdomain(c.in); got != c.want {
			t.Errorf("Subdomain(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"#fff", true},
		{"#FFFFFF", true},
		{"#4f46e5", true},
		{"fff", false},
		{"#ffff", false},
		{"#gggggg", false},
		{"", false},
	}
	for _, c := range cases {
		if got := HexColor(c.in); got != c.want {
			t.Errorf("HexColor(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFieldErrors(t *testing.T) {
	fe := FieldErrors{}
	if fe.Any() {
		t.Fatal("empty map should report no errors")
	}
	fe.Add("email", "first")
	fe.Add("email", "second")
	if !fe.Any() || len(fe["email"]) != 2 {
		t.Fatalf("unexpected map state: %#v", fe)
	}
	if fe.Error() != "validation failed" {
		t.Errorf("Error() = %q", fe.Error())
	}
}
