package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	dbadapter "socialfeed/internal/adapters/database"
	"socialfeed/internal/adapters/httpapi"
	redisadapter "socialfeed/internal/adapters/redis"
	storageadapter "socialfeed/internal/adapters/storage"
	"socialfeed/internal/config"
	"socialfeed/internal/core/access"
	"socialfeed/internal/core/content"
	followerapp "socialfeed/internal/core/follower/service"
	postapp "socialfeed/internal/core/post/service"
	tagapp "socialfeed/internal/core/tag/service"
	userapp "socialfeed/internal/core/user/service"

	"github.com/go-redis/redis/v8"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dbRetryInterval = 2 * time.Second
	shutdownTimeout = 10 * time.Second
)

func serve(cctx *cli.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cctx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// اتصال به دیتابیس و اجرای مایگریشن‌ها
	db, err := openDB(ctx, cfg, logger, cfg.DBWaitTimeout)
	if err != nil {
		return err
	}
	if err := dbadapter.Migrate(db); err != nil {
		config.CloseDB(db, logger)
		return err
	}
	logger.Info("✅ Database migrations completed")

	// اتصال به Redis
	redisClient, err := config.InitRedis(ctx, cfg, logger)
	if err != nil {
		config.CloseDB(db, logger)
		return err
	}

	// بستن منابع بعد از اتمام کار سرور
	defer closeResources(logger, db, redisClient)

	store, err := storageadapter.New(cfg)
	if err != nil {
		return err
	}

	maxUploadBytes := int64(cfg.MaxUploadMB) << 20
	guard := access.NewGuard()
	validator := content.NewValidator(cfg.BlockedWords...)

	// آداپترهای خروجی
	userRepo := dbadapter.NewUserRepositoryDatabase(db)
	tagRepo := dbadapter.NewTagRepositoryDatabase(db)
	postRepo := dbadapter.NewPostRepositoryDatabase(db)
	followerRepo := dbadapter.NewFollowerRepositoryDatabase(db)
	sessionRepo := redisadapter.NewSessionRepositoryRedis(redisClient)
	transactor := dbadapter.NewTransactor(db)

	// یوزکیس/سرویس‌ها
	tagResolver := tagapp.NewTagResolver(tagRepo, validator)
	userSvc := userapp.NewUserService(userRepo, sessionRepo, guard, []byte(cfg.JWTSecret), cfg.TokenTTL, logger)
	postSvc := postapp.NewPostService(postRepo, transactor, store, tagResolver, validator, guard, maxUploadBytes, logger)
	tagSvc := tagapp.NewTagService(tagRepo, tagResolver, guard, logger)
	followerSvc := followerapp.NewFollowerService(followerRepo, userRepo, transactor, logger)

	opts := httpapi.RouterOptions{
		Logger:         logger,
		MediaURL:       cfg.MediaURL,
		MaxUploadBytes: maxUploadBytes,
	}
	if cfg.StorageDriver == "local" {
		opts.MediaRoot = cfg.MediaRoot
	}
	r := httpapi.SetupRoutes(userSvc, postSvc, tagSvc, followerSvc, opts) // تزریق یوزکیس به آداپتر ورودی

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("App is running...", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func migrate(cctx *cli.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := openDB(cctx.Context, cfg, logger, cfg.DBWaitTimeout)
	if err != nil {
		return err
	}
	defer config.CloseDB(db, logger)

	if err := dbadapter.Migrate(db); err != nil {
		return err
	}
	logger.Info("✅ Database migrations completed")
	return nil
}

func waitForDB(cctx *cli.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	timeout := cfg.DBWaitTimeout
	if cctx.IsSet("timeout") {
		timeout = cctx.Duration("timeout")
	}
	db, err := openDB(cctx.Context, cfg, logger, timeout)
	if err != nil {
		return err
	}
	config.CloseDB(db, logger)
	return nil
}

func createSuperuser(cctx *cli.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := openDB(cctx.Context, cfg, logger, cfg.DBWaitTimeout)
	if err != nil {
		return err
	}
	defer config.CloseDB(db, logger)
	if err := dbadapter.Migrate(db); err != nil {
		return err
	}

	// توکن صادر نمی‌شود، پس SessionRepository لازم نیست
	userSvc := userapp.NewUserService(dbadapter.NewUserRepositoryDatabase(db), nil, access.NewGuard(), []byte(cfg.JWTSecret), cfg.TokenTTL, logger)
	u, err := userSvc.CreateSuperuser(cctx.Context,
		cctx.String("email"),
		cctx.String("username"),
		cctx.String("name"),
		cctx.String("password"),
	)
	if err != nil {
		return err
	}
	logger.Info("✅ Superuser created", zap.String("id", u.ID), zap.String("username", u.Username))
	return nil
}

func openDB(ctx context.Context, cfg *config.Config, logger *zap.Logger, timeout time.Duration) (*gorm.DB, error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return config.WaitForDB(waitCtx, cfg.DBDriver, cfg.DBDSN, dbRetryInterval, logger)
}

// closeResources بستن اتصالات به Redis و دیتابیس
func closeResources(logger *zap.Logger, db *gorm.DB, redisClient *redis.Client) {
	// بستن اتصال به Redis
	if err := redisClient.Close(); err != nil {
		logger.Error("Error closing Redis connection:", zap.Error(err))
	}

	// بستن اتصال دیتابیس
	config.CloseDB(db, logger)
}
