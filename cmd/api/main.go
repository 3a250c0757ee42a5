package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"community/internal/config"
	"community/internal/handler"
	"community/internal/infra/db"
	infraRepo "community/internal/infra/repository"
	"community/internal/logging"
	"community/internal/repository"
	"community/internal/security"
	"community/internal/server"
	"community/internal/usecase"
	auth "community/internal/usecase/auth_usecase"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

func main() {
	cfg, err := config.Load(".env", "../.env")
	if err != nil {
		panic(err)
	}

	log, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDev(),
		App:    "community-api",
		Env:    cfg.GoEnv,
	})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//署名器が作れないなら起動しない
	provider, err := newTokenProvider(cfg)
	if err != nil {
		return err
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB, cfg.RefreshStore == config.RefreshStorePostgres, log); err != nil {
		return err
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	postRepo := infraRepo.NewPostGormRepository(gormDB)
	commentRepo := infraRepo.NewCommentGormRepository(gormDB)

	rtRepo, closeStore, err := newRefreshTokenStore(ctx, cfg, gormDB, log)
	if err != nil {
		return err
	}
	defer closeStore()

	//権限判定
	dispatcher := security.NewPermissionDispatcher(
		security.NewPostPermissionEvaluator(postRepo),
		security.NewCommentPermissionEvaluator(commentRepo),
	)

	//Usecase生成
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher)
	authSvc := auth.NewAuthService(userRepo, rtRepo, provider, verifier, &uuidGenerator{})
	accountUC := auth.NewAccountUsecase(userRepo, rtRepo, hasher, verifier)

	//Handler生成
	e := server.New(server.Deps{
		Auth:          handler.NewAuthHandler(registerUC, authSvc, cfg.RefreshTTL(), cfg.CookieSecure, log),
		Users:         handler.NewUserHandler(usecase.NewUserUsecase(userRepo), accountUC, cfg.CookieSecure, log),
		Posts:         handler.NewPostHandler(usecase.NewPostUsecase(postRepo)),
		Comments:      handler.NewCommentHandler(usecase.NewCommentUsecase(postRepo, commentRepo)),
		Authenticator: provider,
		Permissions:   dispatcher,
		HealthCheck:   func(context.Context) error { return db.Ping(gormDB) },
		CORSOrigins:   cfg.CORSOrigins,
		Log:           log,
	})

	//Server起動
	return server.Start(ctx, e, cfg.Addr(), log)
}

func newTokenProvider(cfg config.Config) (*security.TokenProvider, error) {
	signer, err := security.NewTokenSigner([]byte(cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("token signer init: %w", err)
	}
	return security.NewTokenProvider(signer, cfg.AccessTTL(), cfg.RefreshTTL(), security.SystemClock()), nil
}

// REFRESH_STORE で保存先を選ぶ
func newRefreshTokenStore(ctx context.Context, cfg config.Config, gormDB *gorm.DB, log *zap.Logger) (repository.RefreshTokenRepository, func(), error) {
	switch cfg.RefreshStore {
	case config.RefreshStoreMemory:
		log.Warn("refresh tokens are kept in memory; they are lost on restart")
		return infraRepo.NewRefreshTokenMemoryRepository(), func() {}, nil
	case config.RefreshStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		log.Info("refresh token store: redis", zap.String("addr", cfg.RedisAddr))
		return infraRepo.NewRefreshTokenRedisRepository(client), func() { _ = client.Close() }, nil
	default:
		return infraRepo.NewRefreshTokenRepository(gormDB), func() {}, nil
	}
}
