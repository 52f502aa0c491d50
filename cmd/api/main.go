package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pet-walks/internal/adapters/auth/backendauth"
	"pet-walks/internal/adapters/backend"
	"pet-walks/internal/config"
	"pet-walks/internal/platform/httpclient"
	"pet-walks/internal/platform/logger"
	"pet-walks/internal/ports/auth"
	"pet-walks/internal/router"
)

// @title pet-walks BFF
// @version 1.0
// @description BFF del marketplace de paseos: chat, tickets, solicitudes de paseador, agenda y seguimiento.
// @BasePath /
func main() {
	log := logger.NewFromEnv("pet-walks")

	if err := config.LoadDotEnv(); err != nil {
		log.Warn("dotenv not loaded", logger.Fields{"err": err})
	}
	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid config", logger.Fields{"err": err})
		os.Exit(1)
	}

	hc, err := httpclient.NewWithBaseURL(cfg.BackendBaseURL, cfg.BackendTimeout)
	if err != nil {
		log.Error("invalid backend url", logger.Fields{"err": err})
		os.Exit(1)
	}
	if cfg.BackendAPIKey != "" {
		hc.Headers["X-Api-Key"] = cfg.BackendAPIKey
	}

	// sin verifier para modo dev: la identidad viene en headers
	var verifier auth.AuthVerifier
	if cfg.AuthMode == config.AuthModeBackend {
		verifier = backendauth.NewVerifier(backend.NewAuthRepo(backend.NewClient(hc)), cfg.AuthCacheTTL)
	}

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: router.NewRouter(router.Options{
			Config:       cfg,
			Backend:      hc,
			AuthVerifier: verifier,
			Logger:       log,
		}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", logger.Fields{
		"addr":      cfg.HTTPAddr,
		"backend":   cfg.BackendBaseURL,
		"auth_mode": cfg.AuthMode,
	})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", logger.Fields{"err": err})
		os.Exit(1)
	}
}
