package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/config"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/roster"
	appHTTP "github.com/cmlabs-hris/attendance-dashboard-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/logger"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/repository/mongodb"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/repository/postgresql"
	redisRepo "github.com/cmlabs-hris/attendance-dashboard-go/internal/repository/redis"
	attendanceService "github.com/cmlabs-hris/attendance-dashboard-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/attendance-dashboard-go/internal/service/dashboard"
	reportService "github.com/cmlabs-hris/attendance-dashboard-go/internal/service/report"
)

const (
	appName    = "attendance-dashboard"
	appVersion = "v1.0.0"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(appName, appVersion, cfg.App.Env, logger.ParseLevel(cfg.App.LogLevel))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores
	var (
		rosterProvider  roster.Provider
		attendanceStore attendance.Store
	)
	switch cfg.Dashboard.Store {
	case config.StoreMongo:
		mongoDB, err := database.NewMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return fmt.Errorf("connect mongodb: %w", err)
		}
		defer mongoDB.Close(context.Background())

		if err := mongodb.EnsureIndexes(ctx, mongoDB.Database); err != nil {
			slog.Warn("Failed to ensure mongodb indexes", "error", err)
		}
		rosterProvider = mongodb.NewRosterRepository(mongoDB.Database)
		attendanceStore = mongodb.NewAttendanceRepository(mongoDB.Database)
	default:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		rosterProvider = postgresql.NewRosterRepository(db)
		attendanceStore = postgresql.NewAttendanceRepository(db)
	}
	slog.Info("Attendance store ready", "store", cfg.Dashboard.Store)

	var mirror dashboard.SnapshotCache
	if cfg.RedisEnabled() {
		var redisClient *redis.Client
		redisClient, err = database.NewRedisClient(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			// The mirror is optional; run with in-process snapshots only
			slog.Warn("Redis unavailable, snapshot mirror disabled", "error", err)
		} else {
			defer redisClient.Close()
			mirror = redisRepo.NewSnapshotCache(redisClient, cfg.Dashboard.SnapshotTTL)
		}
	}

	monthlyMode, err := dashboardService.ParseMonthlyMode(cfg.Dashboard.MonthlyMode)
	if err != nil {
		return err
	}

	// Services
	recorder := metrics.NewRecorder()
	hub := sse.NewHub()
	if err := recorder.TrackStreamSubscribers(hub.TotalSubscribers); err != nil {
		return fmt.Errorf("register stream metrics: %w", err)
	}
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.StreamExpirationTime)

	fetcher := attendanceService.NewFetcher(attendanceStore, cfg.Dashboard.FetchConcurrency, recorder)
	aggregator := dashboardService.NewAggregator(rosterProvider, fetcher, dashboardService.Options{
		Location:       cfg.Location(),
		MonthlyMode:    monthlyMode,
		TopPerformers:  cfg.Dashboard.TopPerformers,
		RecentActivity: cfg.Dashboard.RecentActivity,
	})
	board := dashboardService.NewBoard(hub, mirror)
	dashboardSvc := dashboardService.NewDashboardService(aggregator, board, hub, recorder)
	reportSvc := reportService.NewReportService(rosterProvider, fetcher)

	// Scheduled refreshes
	scheduler := cron.NewScheduler()
	dashboardJobs := cron.NewDashboardJobs(dashboardSvc, cfg.Dashboard.Classes, cfg.Dashboard.RefreshInterval)
	dashboardJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	// SIGHUP forces an immediate refresh of every configured class
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-hup:
				queued := dashboardJobs.TriggerAll(scheduler)
				slog.Info("Manual dashboard refresh requested", "queued", queued)
			case <-ctx.Done():
				return
			}
		}
	}()

	// Handlers
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	streamHandler := appHTTP.NewStreamHandler(dashboardSvc, JWTService, cfg.App.FrontendURL)

	router := appHTTP.NewRouter(
		JWTService,
		appHTTP.RouterOptions{
			Logger:         log,
			AllowedOrigins: cfg.App.FrontendURL,
			Recorder:       recorder,
		},
		dashboardHandler,
		reportHandler,
		streamHandler,
	)

	// No write timeout: stream responses stay open until shutdown cancels their context
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		BaseContext:       func(net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "classes", cfg.Dashboard.Classes)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
