package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dailywrite/backend/internal/client"
	"github.com/dailywrite/backend/internal/config"
	"github.com/dailywrite/backend/internal/db"
	"github.com/dailywrite/backend/internal/handler"
	"github.com/dailywrite/backend/internal/job"
	"github.com/dailywrite/backend/internal/service"
	"github.com/dailywrite/backend/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// @title Daily Write API
// @version 1.0
// @description Challenge based daily writing backend.
// @BasePath /
func main() {
	cfg := config.Load()

	logger := newLogger(cfg.Server.Mode)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	gin.SetMode(cfg.Server.Mode)

	loc, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Postgres 연결, 스키마, 카탈로그
	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()

	pg := db.NewPostgres(pool)
	if err := pg.Migrate(ctx); err != nil {
		return err
	}

	catalog, err := db.LoadCatalog(cfg.Catalog.File)
	if err != nil {
		return err
	}
	if err := pg.SeedCatalog(ctx, catalog); err != nil {
		return err
	}

	// Redis (세션, 인증 코드)
	rdb, err := store.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	sessions := store.NewSessionStore(rdb)
	codes := store.NewCodeStore(rdb)

	mailer := client.NewMailer(client.MailerConfig{
		Host: cfg.Mail.Host,
		Port: cfg.Mail.Port,
		User: cfg.Mail.User,
		Pass: cfg.Mail.Pass,
		From: cfg.Mail.From,
	})
	if !mailer.IsConfigured() {
		logger.Warn("smtp is not configured; mail routes will fail")
	}

	// 서비스
	tokens, err := service.NewTokenService(cfg.Auth, sessions)
	if err != nil {
		return err
	}
	authSvc := service.NewAuthService(pg, tokens, sessions, logger)
	accountSvc, err := service.NewAccountService(pg, codes, mailer, cfg.Auth, cfg.Verification, logger)
	if err != nil {
		return err
	}
	calendar := service.NewCalendar(loc)
	challengeSvc := service.NewChallengeService(pg, pg, calendar, logger)
	writeSvc := service.NewWriteService(pg, calendar, logger)

	sweeper := job.NewEnrollmentSweeper(pg, cfg.Jobs.EnrollmentSweepSchedule, loc, logger)
	if err := sweeper.Start(ctx); err != nil {
		return err
	}
	defer sweeper.Stop()

	perMinute, err := atoi(cfg.RateLimit.MailPerMinute)
	if err != nil {
		return err
	}
	burst, err := atoi(cfg.RateLimit.MailBurst)
	if err != nil {
		return err
	}

	router := handler.NewRouter(handler.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
		Auth:           handler.NewAuthHandler(authSvc, logger),
		Account:        handler.NewAccountHandler(accountSvc, logger),
		Challenge:      handler.NewChallengeHandler(challengeSvc, logger),
		Write:          handler.NewWriteHandler(writeSvc, logger),
		TokenParser:    authSvc,
		MailLimiter:    handler.NewRateLimiter(perMinute, burst),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(mode string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if mode == gin.DebugMode {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func atoi(value string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(value))
}
