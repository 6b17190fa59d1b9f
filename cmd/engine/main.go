package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"

	"rushjob-engine/internal/ats"
	"rushjob-engine/internal/ats/board"
	"rushjob-engine/internal/ats/greenhouse"
	"rushjob-engine/internal/ats/lever"
	"rushjob-engine/internal/config"
	"rushjob-engine/internal/dispatch"
	"rushjob-engine/internal/events"
	"rushjob-engine/internal/httpapi"
	"rushjob-engine/internal/location"
	"rushjob-engine/internal/match"
	"rushjob-engine/internal/notify"
	"rushjob-engine/internal/poll"
	"rushjob-engine/internal/secrets"
	"rushjob-engine/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	dataDir := os.Getenv("RUSHJOB_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; a second instance would race the sqlite file.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("acquire data dir lock: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance already holds %s", lock.Path())
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	raw, err := config.Load(userCfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg, vr := config.NormalizeAndValidate(raw)
	for _, w := range vr.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !vr.OK() {
		for _, e := range vr.Errors {
			log.Printf("[config] error: %s", e)
		}
		log.Fatalf("config invalid (%s)", userCfgPath)
	}

	var cfgVal atomic.Value
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "rushjob.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.SeedOrganizations(ctx, seedOrgs(cfg)); err != nil {
		log.Fatalf("seed organizations: %v", err)
	}
	if err := db.SeedAlerts(ctx, seedAlerts(cfg)); err != nil {
		log.Fatalf("seed alerts: %v", err)
	}

	hub := events.NewHub()

	senders := map[string]notify.Sender{}
	dc := notify.NewDiscord()
	dc.Username = cfg.Notify.DiscordUsername
	senders[dc.Kind()] = dc
	if cfg.Notify.Telegram.Enabled {
		tok, err := secrets.GetTelegramToken()
		if err != nil {
			log.Fatalf("telegram enabled but %v", err)
		}
		tg, err := notify.NewTelegram(tok)
		if err != nil {
			log.Fatalf("telegram setup: %v", err)
		}
		senders[tg.Kind()] = tg
	}

	connectors := map[string]ats.Connector{}
	for _, c := range []ats.Connector{greenhouse.New(), lever.New(), board.New()} {
		connectors[c.Type()] = c
	}

	dispatcher := &dispatch.Dispatcher{
		Store:   db,
		Match:   &match.Engine{Loc: location.New(location.DefaultTable())},
		Senders: senders,
		Hub:     hub,
	}
	poller := poll.New(cfg.PollConfig(), db, connectors, dispatcher, hub)

	go func() {
		if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("[engine] scheduler stopped: %v", err)
		}
	}()

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[engine] listening on http://%s (db=%s)", addr, dbPath)

	mux := httpapi.NewMux(httpapi.Deps{
		Store:  db,
		Hub:    hub,
		CfgVal: &cfgVal,
		Poller: poller,
	})
	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.RequestID,
			httpapi.Recover,
			httpapi.AccessLog,
			httpapi.Cors,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Printf("[engine] bye")
}
