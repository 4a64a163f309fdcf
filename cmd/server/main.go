package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"storeadmin/internal/auth"
	authcontroller "storeadmin/internal/auth/controller"
	"storeadmin/internal/category"
	"storeadmin/internal/commons"
	"storeadmin/internal/config"
	"storeadmin/internal/customer"
	"storeadmin/internal/dashboard"
	"storeadmin/internal/infrastructure/logger"
	"storeadmin/internal/infrastructure/postgres"
	"storeadmin/internal/order"
	"storeadmin/internal/prefs"
	prefsrepository "storeadmin/internal/prefs/repository"
	"storeadmin/internal/product"
	"storeadmin/internal/realtime"
	"storeadmin/internal/refresh"
	"storeadmin/internal/server"
	"storeadmin/internal/settings"
	"storeadmin/internal/signals"
	"storeadmin/internal/storage"
	uploadscontroller "storeadmin/internal/uploads/controller"
	"storeadmin/internal/view"
)

// loadConfig prefers an explicit yaml file; environment variables are
// the default path in containers.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return commons.LoadConfig(path)
	}
	return config.Load()
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	preferences := prefs.NewStore(prefsrepository.NewPostgresPrefsRepository(db), zapLogger)
	if err := preferences.Load(ctx); err != nil {
		zapLogger.Fatal("loading preferences", zap.Error(err))
	}

	store, err := storage.NewDiskStore(cfg.Storage.Root, cfg.Storage.BaseURL, zapLogger)
	if err != nil {
		zapLogger.Fatal("creating object store", zap.Error(err))
	}

	bus := signals.NewBus()
	views := view.NewRegistry()
	hub := realtime.NewHub(zapLogger)
	go hub.Run()

	coord := refresh.NewCoordinator(preferences, cfg.Refresh.PollInterval, zapLogger)
	go coord.Run(ctx)

	// Signing in forces one refresh; signing out clears every cached
	// snapshot so the next session starts from fresh data.
	bus.Subscribe(signals.SignedIn, coord.Bump)
	bus.Subscribe(signals.SignedOut, views.ClearAll)

	// A date range change invalidates anything computed against the
	// previous window.
	preferences.Subscribe(func(ev prefs.Event) {
		if ev.Name == prefs.EventDateRangeChanged {
			coord.Bump()
		}
	})

	listener, err := realtime.NewListener(postgres.DSN(cfg.Database), cfg.Refresh.Channel, zapLogger)
	if err != nil {
		zapLogger.Warn("realtime listener unavailable, polling only", zap.Error(err))
	} else {
		go listener.Run(ctx)
		go realtime.Forward(ctx, listener.Events(), coord, hub)
	}

	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	productModule := product.NewModule(db, coord, store, views, zapLogger)
	ctrl := server.Controllers{
		Session:    authcontroller.NewSessionController(cfg.Auth, issuer, bus, zapLogger),
		Orders:     order.NewModule(db, coord, hub, bus, views, zapLogger),
		Categories: category.NewModule(db, coord, productModule.Repository, store, views, zapLogger),
		Products:   productModule.Controller,
		Customers:  customer.NewModule(db, coord, bus, views, zapLogger),
		Dashboard:  dashboard.NewModule(db, preferences, zapLogger),
		Settings:   settings.NewModule(db, preferences, zapLogger),
		Uploads:    uploadscontroller.NewUploadsController(store, zapLogger),
	}

	router := server.NewRouter(ctrl, hub, issuer, cfg.Storage.Root, cfg.Storage.BaseURL, zapLogger)
	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
