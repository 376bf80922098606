// Package main is the entry point for the catalog API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"catalog/internal/config"
	"catalog/internal/domain/catalog"
	"catalog/internal/domain/catalog/brand"
	"catalog/internal/domain/catalog/item"
	"catalog/internal/domain/catalog/itemtype"
	v1 "catalog/internal/infrastructure/http/v1"
	"catalog/internal/infrastructure/http/v1/dto"
	"catalog/internal/infrastructure/oauth"
	"catalog/internal/infrastructure/storage/postgres"
	"catalog/internal/infrastructure/storage/postgres/catalog_repo"
	"catalog/pkg/logger"
)

const (
	shutdownTimeout = 30 * time.Second
	dbInitTimeout   = 30 * time.Second
)

func main() {
	settings, err := config.Load(config.LoadOptions{})
	if err != nil {
		fmt.Printf("failed to load settings: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.FromSettings(settings, true)
	if err != nil {
		fmt.Printf("invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Infow("starting catalog server", "environment", cfg.Environment, "database", cfg.Database.Redacted())

	// --- Database ---
	// The pool connects lazily. An unreachable database is logged and the
	// server still starts; /health/ready reports it until it answers.
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.Database.DSN()))
	if err != nil {
		log.Fatalw("invalid database configuration", "error", err)
	}
	txManager := postgres.NewTxManager(pool)

	initCtx, cancelInit := context.WithTimeout(ctx, dbInitTimeout)
	if err := postgres.NewInitializer(txManager).Initialize(initCtx); err != nil {
		log.Errorw("database initialization failed", "error", err, "database", cfg.Database.Redacted())
	} else {
		pool.LogStats(ctx)
	}
	cancelInit()

	// --- Repositories and services ---
	catalogService := catalog.NewService(catalog_repo.NewCatalogRepo(txManager))
	brandService := brand.NewService(catalog_repo.NewBrandRepo(txManager), txManager)
	typeService := itemtype.NewService(catalog_repo.NewTypeRepo(txManager), txManager)
	itemService := item.NewService(catalog_repo.NewItemRepo(txManager), txManager)

	// --- Token validation ---
	keysCtx, stopKeyRefresh := context.WithCancel(ctx)
	validator, err := oauth.NewValidator(keysCtx, oauth.Config{
		Authority:  cfg.Authorization.Authority,
		SigningKey: cfg.Authorization.SigningKey,
		Audience:   cfg.Authorization.Audience,
	})
	if err != nil {
		log.Fatalw("failed to configure token validation", "error", err)
	}

	// --- Router ---
	router, err := v1.NewRouter(v1.RouterConfig{
		Logger:              log.WithComponent("http"),
		Validator:           validator,
		Database:            pool,
		Catalog:             catalogService,
		Brands:              brandService,
		Types:               typeService,
		Items:               itemService,
		Mapper:              dto.NewMapper(dto.URLPictureResolver{Host: cfg.Catalog.Host, ImgURL: cfg.Catalog.ImgURL}),
		Environment:         cfg.Environment,
		Development:         cfg.IsDevelopment(),
		VerboseErrors:       !cfg.IsProduction(),
		Authority:           cfg.Authorization.Authority,
		PathBase:            cfg.PathBase,
		CORSOrigins:         []string{cfg.Authorization.Authority, cfg.BaseURL, cfg.GlobalURL, cfg.SpaURL},
		HTTPLogging:         cfg.HTTPLogging,
		ResponseCompression: cfg.ResponseCompression,
		HTTPSPort:           cfg.HTTPSPort,
	})
	if err != nil {
		log.Fatalw("failed to build router", "error", err)
	}

	// --- HTTP Server ---
	server := &http.Server{
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ln, err := cfg.Listen.Listen()
	if err != nil {
		log.Fatalw("failed to bind listener", "error", err)
	}
	if err := cfg.Listen.SignalReady(); err != nil {
		log.Warnw("failed to write init file", "path", cfg.Listen.InitFile, "error", err)
	}

	go func() {
		log.Infow("server starting", "listen", cfg.Listen.String())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				log.Info("shutting down http server")
				err := server.Shutdown(ctx)
				stopKeyRefresh()
				pool.Close()
				return err
			},
		},
	)

	exitCode := <-wait
	log.Infow("server exited", "code", exitCode)
	_ = log.Sync()
	os.Exit(exitCode)
}
