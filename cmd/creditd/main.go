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
	"golang.org/x/sync/errgroup"

	"github.com/wyfcoding/creatorcredit/internal/credit/application"
	"github.com/wyfcoding/creatorcredit/internal/credit/domain"
	"github.com/wyfcoding/creatorcredit/internal/credit/infrastructure/messaging"
	persistence_mysql "github.com/wyfcoding/creatorcredit/internal/credit/infrastructure/persistence/mysql"
	persistence_redis "github.com/wyfcoding/creatorcredit/internal/credit/infrastructure/persistence/redis"
	"github.com/wyfcoding/creatorcredit/internal/credit/infrastructure/signals"
	credit_http "github.com/wyfcoding/creatorcredit/internal/credit/interfaces/http"
	"github.com/wyfcoding/creatorcredit/pkg/cache"
	"github.com/wyfcoding/creatorcredit/pkg/config"
	"github.com/wyfcoding/creatorcredit/pkg/db"
	"github.com/wyfcoding/creatorcredit/pkg/logger"
	"github.com/wyfcoding/creatorcredit/pkg/middleware"
	"github.com/wyfcoding/creatorcredit/pkg/mq"
	"github.com/wyfcoding/creatorcredit/pkg/response"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/credit/config.toml", "path to config file")
	flag.Parse()

	// 1. Config
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("load config failed: %v", err))
	}

	// 2. Logger
	if err := logger.Init(cfg.Logger); err != nil {
		panic(fmt.Sprintf("init logger failed: %v", err))
	}
	ctx := context.Background()

	// 3. Database
	gormDB, err := db.Init(cfg.Database)
	if err != nil {
		logger.Fatal(ctx, "connect db failed", "error", err)
	}

	// Auto Migrate
	if err := gormDB.AutoMigrate(
		&persistence_mysql.CreditConsentModel{},
		&persistence_mysql.CreditAssessmentModel{},
		&persistence_mysql.LoanOfferModel{},
		&persistence_mysql.LoanApplicationModel{},
	); err != nil {
		logger.Fatal(ctx, "migrate db failed", "error", err)
	}

	if err := persistence_mysql.SeedLoanOffers(ctx, gormDB); err != nil {
		logger.Fatal(ctx, "seed loan offers failed", "error", err)
	}

	// 4. Infrastructure
	consentRepo := persistence_mysql.NewConsentRepo(gormDB)
	assessmentRepo := persistence_mysql.NewAssessmentRepo(gormDB)
	applicationRepo := persistence_mysql.NewApplicationRepo(gormDB)
	signalSource := signals.NewMySQLSource(gormDB)

	offerRepo := persistence_mysql.NewOfferRepo(gormDB)
	if redisCache, err := cache.New(cfg.Redis); err != nil {
		logger.Warn(ctx, "redis unavailable, offer catalog served without cache", "error", err)
	} else {
		offerRepo = persistence_redis.NewCachedOfferRepo(offerRepo, redisCache)
		defer redisCache.Close()
	}

	var publisher domain.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Fatal(ctx, "create kafka producer failed", "error", err)
		}
		defer producer.Close()
		publisher = messaging.NewKafkaPublisher(producer)
	} else {
		logger.Warn(ctx, "kafka brokers not configured, domain events disabled")
	}

	// 5. Application
	appService := application.NewCreditService(
		consentRepo,
		assessmentRepo,
		offerRepo,
		applicationRepo,
		signalSource,
		publisher,
		logger.Get(),
	)

	// 6. Interfaces
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		middleware.GinRecoveryMiddleware(),
		middleware.GinLoggingMiddleware(),
		middleware.GinCORSMiddleware(),
	)

	sys := router.Group("/sys")
	{
		sys.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		sys.GET("/ready", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "READY"}) })
	}
	router.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Route not found")
	})

	handler := credit_http.NewCreditHandler(appService)
	handler.RegisterRoutes(router, middleware.GinAuthMiddleware(cfg.Auth.JWTSecret))

	// 7. Start
	g, gctx := errgroup.WithContext(ctx)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	g.Go(func() error {
		logger.Info(ctx, "HTTP server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// 8. Graceful Shutdown
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			logger.Info(ctx, "shutting down server...")
		case <-gctx.Done():
			logger.Info(ctx, "context cancelled, shutting down...")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error(ctx, "server exited with error", "error", err)
	}
}
