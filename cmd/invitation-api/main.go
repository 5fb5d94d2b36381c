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
	"invitation/internal/db"
	httpx "invitation/internal/http"
	"invitation/internal/invite"
	"invitation/internal/jobs"
	"invitation/internal/logging"
	"invitation/internal/records"

	"github.com/google/uuid"
)

func main() {
	cfg, err := config.LoadAPI()
	if err != nil {
		boot := logging.New("info", "json")
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logging.New(cfg.Level, cfg.Format).With().Str("service", "invitation-api").Logger()

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	svc := &records.Service{DB: gdb, OwnerEmail: cfg.OwnerEmail}
	if cfg.InviteSecret != "" {
		signer := invite.NewSigner(cfg.InviteSecret)
		svc.Verify = func(id string) bool {
			_, err := signer.Verify(id)
			return err == nil
		}
	}
	r := httpx.NewRouter(cfg, svc, log)

	// worker
	worker := &jobs.Worker{
		ID:       "worker-" + uuid.NewString()[:8],
		Queue:    &jobs.Repo{DB: gdb},
		Notifier: jobs.LogNotifier{Log: log.With().Str("component", "notifier").Logger()},
		Interval: cfg.WorkerPollInterval,
		Log:      log.With().Str("component", "worker").Logger(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	go worker.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("serve")
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
