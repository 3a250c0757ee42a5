package db

import (
	"fmt"
	"time"

	"community/internal/config"
	"community/internal/domain/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		//一意制約違反をgorm.ErrDuplicatedKeyにそろえる
		TranslateError: true,
	}
	if !cfg.IsDev() {
		gcfg.Logger = logger.Default.LogMode(logger.Warn)
	}

	//DSNはpgxで解釈して、そのコネクションをGORMに渡す
	connCfg, err := pgx.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	sqlDB := stdlib.OpenDB(*connCfg)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gcfg)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return gdb, nil
}

// テーブル作成。refresh_tokensはpostgres保存のときだけ。
func Migrate(gdb *gorm.DB, withRefreshTokens bool, log *zap.Logger) error {
	models := []any{&model.User{}, &model.Post{}, &model.Comment{}}
	if withRefreshTokens {
		models = append(models, &model.RefreshToken{})
	}
	if err := gdb.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info("db migrated", zap.Int("tables", len(models)))
	return nil
}

// /healthz 用
func Ping(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
