package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/ozkkadir/depo-yonetim-sistemi/config"
	"github.com/ozkkadir/depo-yonetim-sistemi/handlers"
	"github.com/ozkkadir/depo-yonetim-sistemi/middlewares"
	"github.com/ozkkadir/depo-yonetim-sistemi/models"
)

const defaultPort = "5000"

func main() {
	godotenv.Load()

	port := os.Getenv("API_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	db := config.ConnectDatabaseWithRetry()
	if err := models.MigrateTable(db); err != nil {
		logger.Fatalf("migrate: %v", err)
	}
	cache := config.NewCache(config.ConnectRedis())

	users := models.NewUserStore(db)
	refs := models.NewReferenceStore(db, cache)
	registry := models.NewProductRegistry(db)
	entitlements := models.NewEntitlementIndex(db)
	ledger := models.NewInventoryLedger(db)
	catalog := models.NewCatalogAggregator(db, users)
	reconciler := models.NewBatchReconciler(db, users, refs, registry, entitlements, ledger)

	api := &handlers.API{
		Users:        users,
		Refs:         refs,
		Registry:     registry,
		Entitlements: entitlements,
		Ledger:       ledger,
		Catalog:      catalog,
		Reconciler:   reconciler,
		Logger:       logger,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.CorrelationIdMiddleware())

	corsConfig := cors.DefaultConfig()
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if allowedOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "x-correlation-id")
	r.Use(cors.New(corsConfig))
	r.Use(middlewares.AuthMiddleware())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	api.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %v", err)
		}
	}()
	logger.Infof("listening on :%s", port)

	<-sigCtx.Done()
	logger.Info("shutdown signal received, draining")

	// in-flight requests get 15s to finish before the pool closes
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
