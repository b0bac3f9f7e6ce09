package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thurahtetaung/universal-yoga/config"
	"github.com/thurahtetaung/universal-yoga/internal/api/handler"
	"github.com/thurahtetaung/universal-yoga/internal/api/router"
	"github.com/thurahtetaung/universal-yoga/internal/repository"
	"github.com/thurahtetaung/universal-yoga/internal/service"
	"github.com/thurahtetaung/universal-yoga/pkg/database"
	applogger "github.com/thurahtetaung/universal-yoga/pkg/logger"
	"github.com/thurahtetaung/universal-yoga/pkg/network"
	"github.com/thurahtetaung/universal-yoga/pkg/redis"
	"github.com/thurahtetaung/universal-yoga/pkg/syncclient"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// 1. config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("db_path", cfg.Database.Path),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	// 4. redis (optional; pending decisions fall back to memory)
	var rdb *redis.Client
	decisions := service.NewMemoryDecisionStore()
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, keeping pending edits in memory and sync unthrottled", zap.Error(err))
			rdb = nil
		} else {
			decisions = service.NewRedisDecisionStore(rdb)
		}
	}

	// 5. sync transport
	uploader := syncclient.New(cfg.Sync.BaseURL, cfg.Sync.Timeout)
	prober, err := network.NewTCPProbe(cfg.Sync.BaseURL, cfg.Sync.ConnectivityTimeout)
	if err != nil {
		logger.Fatal("build connectivity probe", zap.Error(err))
	}
	logger.Info("sync target",
		zap.String("upload_url", uploader.UploadURL()),
		zap.String("probe_addr", prober.Addr()),
	)

	// 6. wiring: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, decisions, uploader, prober, logger)
	h := handler.NewHandler(svc)

	// 7. routes
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.Setup(cfg, h, rdb, logger)

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	// 9. wait for a signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("close database", zap.Error(err))
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
