// cmd/web/main.go
//
// Launchlist – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Start daily rotating logger (tees to console when running in a TTY).
//
//  2. Load layered config (conf/.env → conf/global.yaml → LAUNCHLIST_ env),
//     resolving any `vault:` secret references.
//
//  3. Open the MySQL pool and log the active-project count as an early
//     sanity check.
//
//  4. Open the optional GeoLite2 database for signup metadata enrichment.
//
//  5. Assemble the router (public tenant surface + owner API + /metrics)
//     and serve it with hardened timeouts.
//
//  6. Shut down gracefully on SIGINT/SIGTERM via errgroup: the listener
//     drains in-flight requests for up to ten seconds.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/launchlist/launchlist/internal/config"
	"github.com/launchlist/launchlist/internal/database"
	"github.com/launchlist/launchlist/internal/logger"
	"github.com/launchlist/launchlist/internal/requestinfo"
	"github.com/launchlist/launchlist/internal/tenant"
	"github.com/launchlist/launchlist/internal/web"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// buildDSN splices the resolved password into the DSN template.  The
// template keeps host, port, and flags in YAML; the `{password}` token is
// the only secret-bearing part.
func buildDSN(cfg *config.Config) string {
	return strings.ReplaceAll(cfg.Database.DSN, "{password}", cfg.Database.Password)
}

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	//
	// ── 1.  Config ──────────────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalw("load config", "err", err)
	}

	//
	// ── 2.  Database ────────────────────────────────────────────────────
	//
	logOut.Infow("connecting to database")
	db, err := database.Open(buildDSN(cfg))
	if err != nil {
		logOut.Fatalw("connect database", "err", err)
	}
	defer db.Close()

	// Log active-project count as an early sanity check.
	var active int
	_ = db.Get(&active, `SELECT COUNT(*) FROM projects WHERE is_active = TRUE`)
	logOut.Infow("database online", "active_projects", active)

	//
	// ── 3.  GeoIP (optional) ────────────────────────────────────────────
	//
	if err := requestinfo.InitGeo(cfg.GeoIP.DBPath); err != nil {
		logOut.Warnw("geoip disabled", "path", cfg.GeoIP.DBPath, "err", err)
	}

	//
	// ── 4.  Router + server ─────────────────────────────────────────────
	//
	urls := tenant.URLBuilder{Scheme: cfg.PublicScheme(), Domain: cfg.App.Domain}
	srv := web.NewServer(db, urls, cfg.HTTP.ForceHTTPS)
	httpSrv := web.NewHTTPServer(cfg.HTTP.ListenAddr, srv.Router())

	//
	// ── 5.  Serve until signalled ───────────────────────────────────────
	//
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logOut.Infow("http listening", "addr", cfg.HTTP.ListenAddr, "domain", cfg.App.Domain)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logOut.Infow("shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		logOut.Fatalw("server exited", "err", err)
	}
	logOut.Infow("shutdown complete")
}
