package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/agrasia-be/internal/api"
	"github.com/isdelr/agrasia-be/internal/auth"
	"github.com/isdelr/agrasia-be/internal/config"
	"github.com/isdelr/agrasia-be/internal/database"
	"github.com/isdelr/agrasia-be/internal/farmdata"
	"github.com/isdelr/agrasia-be/internal/logger"
	"github.com/isdelr/agrasia-be/internal/monitoring"
	"github.com/isdelr/agrasia-be/internal/services"
	"github.com/isdelr/agrasia-be/internal/store"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", "console")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Farm data lives on disk; a missing directory only means every farm is 404.
	if _, err := os.Stat(cfg.DataDir); err != nil {
		log.Warn().Err(err).Str("dir", cfg.DataDir).Msg("Farm data directory is not readable")
	}

	// Set up services
	eventService := services.NewEventService(db)
	tokenManager := auth.NewTokenManager([]byte(cfg.JWTSecret))
	authService := services.NewAuthService(
		store.NewFileStore(cfg.UsersDBPath),
		auth.NewBcryptHasher(cfg.BcryptCost),
		tokenManager,
		eventService,
	)
	provider := farmdata.NewFileProvider(cfg.DataDir)
	catalog := farmdata.NewCatalog(provider)
	if err := catalog.Refresh(); err != nil {
		log.Warn().Err(err).Msg("Initial farm catalog load failed")
	}
	farmService := services.NewFarmService(provider, catalog)

	// Set up and run the background catalog refresher
	refresher, err := monitoring.NewCatalogRefresher(cfg.CatalogRefreshCron, catalog, eventService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up catalog refresher")
	}
	refresher.Run()

	// Set up router
	router := api.NewRouter(api.Dependencies{
		AuthService:    authService,
		FarmService:    farmService,
		EventService:   eventService,
		TokenVerifier:  tokenManager,
		Catalog:        catalog,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	refresher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
