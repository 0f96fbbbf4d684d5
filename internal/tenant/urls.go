// internal/tenant/urls.go
//
// Public URL construction for tenant pages.
//
// The app domain and scheme are injected at startup—configuration, not a
// global—so tests can build URLs without environment plumbing.
package tenant

// URLBuilder builds public-facing URLs for project subdomains.
type URLBuilder struct {
	Scheme string // "https" in production
	Domain string // apex, e.g. "launchlist.dev"
}

// Public returns the landing-page URL for a subdomain, e.g.
// "https://acme.launchlist.dev".
func (b URLBuilder) Public(subdomain string) string {
	return b.Scheme + "://" + subdomain + "." + b.Domain
}

// Home returns the apex URL, used as the redirect target for failed
// verification links.
func (b URLBuilder) Home() string {
	return b.Scheme + "://" + b.Domain
}
