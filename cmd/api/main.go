package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/biblioteca/library-system/internal/api"
	"github.com/biblioteca/library-system/internal/core/ports"
	"github.com/biblioteca/library-system/internal/core/service"
	"github.com/biblioteca/library-system/internal/infrastructure/db/redis"
	"github.com/biblioteca/library-system/internal/infrastructure/storage"
	"github.com/biblioteca/library-system/internal/pkg/config"
	"github.com/biblioteca/library-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Persistence and in-memory state ---
	store := storage.New(cfg.DataDir, log)

	users := service.NewUserStore(store.LoadUsers(ctx))
	catalog := service.NewCatalog(log)
	for _, b := range store.LoadBooks(ctx) {
		catalog.AddBook(b)
	}
	for _, l := range store.LoadLoans(ctx) {
		catalog.AddLoan(l)
	}

	// --- Session registry ---
	var sessions ports.SessionRegistry
	var rdb *goredis.Client
	if cfg.SessionStore == config.SessionStoreRedis {
		var err error
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis connection failed")
		}
		defer rdb.Close()
		sessions = redis.NewSessionStore(rdb, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sessions backed by redis")
	} else {
		sessions = service.NewSessionRegistry()
	}

	// --- Services ---
	authService := service.NewAuthService(users, sessions, store, log)
	libraryService := service.NewLibraryService(sessions, catalog, store, log)

	saveAll := func(ctx context.Context) error {
		all, err := users.All(ctx)
		if err != nil {
			return err
		}
		if err := store.SaveUsers(ctx, all); err != nil {
			return err
		}
		if err := store.SaveBooks(ctx, catalog.AllBooks()); err != nil {
			return err
		}
		return store.SaveLoans(ctx, catalog.AllLoans())
	}
	go storage.Autosave(ctx, cfg.AutosaveInterval, saveAll, log)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Logger:   log,
		Auth:     authService,
		Library:  libraryService,
		Sessions: sessions,
		Store:    store,
		Redis:    rdb,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := saveAll(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("final snapshot failed")
	}
	log.Info().Msg("server stopped")
}
