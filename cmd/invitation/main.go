package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"invitation/internal/config"
	"invitation/internal/gateway"
	"invitation/internal/localstore"
	"invitation/internal/logging"
	"invitation/internal/remote"
	"invitation/internal/render"
	"invitation/internal/web"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		boot := logging.New("info", "json")
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logging.New(cfg.Level, cfg.Format).With().Str("service", "invitation").Logger()

	slots, closeSlots, err := openSlots(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open local store")
	}
	defer closeSlots()

	local := localstore.New(slots,
		localstore.WithMaxRecords(cfg.LocalMaxRecords),
		localstore.WithLogger(log.With().Str("component", "localstore").Logger()),
	)
	gw := gateway.New(
		gateway.Endpoints{Messages: cfg.RemoteMessagesURL, Preferences: cfg.RemotePreferencesURL},
		remote.NewClient(remote.WithTimeout(cfg.RemoteTimeout)),
		local,
		log,
	)

	rnd, err := render.New(cfg.Location())
	if err != nil {
		log.Fatal().Err(err).Msg("load templates")
	}

	h := &web.Handler{
		GW:       gw,
		Renderer: rnd,
		Event:    render.Event{Couple: cfg.Couple, Venue: cfg.Venue, Date: cfg.WeddingDate},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           web.NewRouter(h, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("local_store", cfg.LocalStore).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("serve")
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}

func openSlots(cfg config.App) (localstore.Slots, func(), error) {
	if cfg.LocalStore == "sqlite" {
		s, err := localstore.OpenSQLiteSlots(cfg.LocalSQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	}
	return localstore.NewFileSlots(cfg.LocalDir), func() {}, nil
}
