package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/trektide/trektide/internal/config"
	dbpkg "github.com/trektide/trektide/internal/db"
	logpkg "github.com/trektide/trektide/internal/log"
	"github.com/trektide/trektide/internal/mail"
	"github.com/trektide/trektide/internal/middleware"
	"github.com/trektide/trektide/internal/payments"
	"github.com/trektide/trektide/internal/routes"
	"github.com/trektide/trektide/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logpkg.New(cfg.Env)

	db := dbpkg.NewDB(cfg, logger)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis unreachable, rate limiting disabled")
		rdb = nil
	}

	store := storage.New(cfg)
	mailer := mail.NewMailer(cfg)
	dispatch := mail.NewDispatcher(mailer, logger)

	checkout, err := payments.NewClient(cfg.MercadoPagoToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize payments")
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.ErrorHandler(cfg.Production(), logger),
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORSMiddleware(),
	)

	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/public", "./web/public")
	r.NoRoute(middleware.NoRoute)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Cfg:      cfg,
		Logger:   logger,
		Redis:    rdb,
		Store:    store,
		Mailer:   mailer,
		Dispatch: dispatch,
		Checkout: checkout,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Fatal().Err(err).Msg("server failed")
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	// Let in-flight requests drain before going away.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		os.Exit(1)
	}

	// No new requests past this point; flush whatever mail is queued.
	dispatch.Close()
}
