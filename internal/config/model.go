// internal/config/model.go
//
// Typed configuration model for Launchlist.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                         – dotenv values,
//   • `conf/global.yaml`                           – primary static file,
//   • `LAUNCHLIST_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *after* unmarshalling, so secrets such as the
// database password never live in flat files or git history.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// App section
//

// App carries tenant-addressing knobs.  `Domain` is the apex under which
// every project subdomain is served (e.g., `launchlist.dev` serves
// `acme.launchlist.dev`).  It is injected into the tenant resolver and the
// public URL builder at startup—never read from a global.
type App struct {
	Domain string `koanf:"domain" validate:"required,hostname"`
	Scheme string `koanf:"scheme" validate:"omitempty,oneof=http https"`
}

//
// Database section
//

// Database holds the DSN template and its secret.
//
// The *template* (`DSN`) is kept in YAML so operators can tweak host,
// port, or flags without touching Vault.  The *password* may be a literal
// or a `vault:path#key` reference resolved at load time.
type Database struct {
	DSN      string `koanf:"dsn"      validate:"required"`
	Password string `koanf:"password"`
}

//
// GeoIP section
//

// GeoIP points at an optional MaxMind database used to enrich signup
// metadata with country and city.  Empty path disables the lookup.
type GeoIP struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or LAUNCHLIST_ROOT override) so later code
// can build absolute file paths.
type Paths struct {
	Root string // LAUNCHLIST_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	App      App      `koanf:"app"`
	Database Database `koanf:"database"`
	GeoIP    GeoIP    `koanf:"geoip"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}

// PublicScheme returns the scheme for tenant-facing URLs, defaulting to
// https when unset.
func (c *Config) PublicScheme() string {
	if c.App.Scheme == "" {
		return "https"
	}
	return c.App.Scheme
}
