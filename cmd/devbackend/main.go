package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pg "pet-walks/internal/adapters/storage/postgres"
	"pet-walks/internal/adapters/storage/redisstore"
	"pet-walks/internal/config"
	"pet-walks/internal/devbackend"
	"pet-walks/internal/platform/logger"
)

func main() {
	log := logger.NewFromEnv("pet-walks-devbackend")

	if err := config.LoadDotEnv(); err != nil {
		log.Warn("dotenv not loaded", logger.Fields{"err": err})
	}
	cfg, err := config.LoadDevBackend()
	if err != nil {
		log.Error("invalid config", logger.Fields{"err": err})
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores := devbackend.NewMemoryStores()

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres open failed", logger.Fields{"err": err})
			os.Exit(1)
		}
		defer db.Close()
		if err := pg.Migrate(ctx, db); err != nil {
			log.Error("postgres migrate failed", logger.Fields{"err": err})
			os.Exit(1)
		}
		stores.Tickets = pg.NewTicketsRepo(db)
		stores.Registrations = pg.NewRegistrationsRepo(db)
		stores.Walks = pg.NewWalksRepo(db)
		stores.Chat = pg.NewChatRepo(db)
		stores.Users = pg.NewUsersRepo(db)
		log.Info("using postgres stores", nil)
	}

	if cfg.RedisAddr != "" {
		rc := redisstore.NewClient(cfg.RedisAddr, cfg.RedisPassword)
		defer rc.Close()
		if err := rc.Ping(ctx).Err(); err != nil {
			log.Error("redis ping failed", logger.Fields{"addr": cfg.RedisAddr, "err": err})
			os.Exit(1)
		}
		stores.Tracks = redisstore.NewTrackRepo(rc, cfg.RouteTTL)
		log.Info("using redis route store", logger.Fields{"addr": cfg.RedisAddr})
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      devbackend.New(stores, log).Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting dev backend", logger.Fields{"addr": cfg.HTTPAddr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", logger.Fields{"err": err})
		os.Exit(1)
	}
}
