package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"jrs-backend/internal/auth"
	"jrs-backend/internal/cache"
	"jrs-backend/internal/config"
	"jrs-backend/internal/database"
	"jrs-backend/internal/db"
	"jrs-backend/internal/handlers"
	"jrs-backend/internal/health"
	h "jrs-backend/internal/http"
	"jrs-backend/internal/middleware"
	"jrs-backend/internal/monitoring"
	"jrs-backend/internal/notify"
	"jrs-backend/internal/realtime"
	"jrs-backend/internal/repositories"
	"jrs-backend/internal/services"
	"jrs-backend/internal/storage"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool := db.Connect(cfg)
	defer pool.Close()

	migrator := database.NewMigrator(pool)
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("[Main] Migration failed: %v", err)
	}

	if err := cache.Init(); err != nil {
		log.Printf("[Main] Redis unavailable, caching disabled: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	priceRepo := repositories.NewPriceRepository(pool)
	jobRepo := repositories.NewJobRepository(pool)
	auditRepo := repositories.NewAuditLogRepository(pool)

	// Realtime hub for the operations board
	hub := realtime.NewHub()

	// Repricing reactor: watches Pending Pricing jobs and promotes them
	// whenever the catalog gains a matching lane.
	reactor := services.NewRepricingService(jobRepo, priceRepo, auditRepo, hub)
	reactor.Start(ctx)

	// Optional integrations
	var notifier services.Notifier
	if tg := notify.NewTelegram(cfg); tg != nil {
		notifier = tg
	}
	podStore := storage.NewPodStore(cfg)

	// Services
	userService := services.NewUserService(userRepo)
	priceService := services.NewPriceService(priceRepo, reactor, hub)
	jobService := services.NewJobService(jobRepo, priceRepo, auditRepo, reactor, hub, notifier)
	dashboardService := services.NewDashboardService(jobRepo)
	reportService := services.NewReportService(jobRepo, auditRepo)

	jwtManager := auth.NewJWTManager(cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, jwtManager)
	userHandler := handlers.NewUserHandler(userService, userRepo)
	priceHandler := handlers.NewPriceHandler(priceService)
	jobHandler := handlers.NewJobHandler(jobService, podStore)
	auditLogHandler := handlers.NewAuditLogHandler(auditRepo)
	reportHandler := handlers.NewReportHandler(reportService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	monitoringHandler := handlers.NewMonitoringHandler(monitoring.New(pool))
	healthHandler := handlers.NewHealthHandler(health.NewChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		userHandler,
		priceHandler,
		jobHandler,
		auditLogHandler,
		reportHandler,
		dashboardHandler,
		monitoringHandler,
		healthHandler,
		hub,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("[Main] Server running on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Main] Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[Main] Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Main] Shutdown error: %v", err)
	}
}
