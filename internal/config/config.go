package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// refresh token の保存先
const (
	RefreshStoreMemory   = "memory"
	RefreshStorePostgres = "postgres"
	RefreshStoreRedis    = "redis"
)

// Configはアプリ全体の設定（起動後は変更しない）
type Config struct {
	Port  string `envconfig:"PORT" default:"8080"` // サーバーポート
	GoEnv string `envconfig:"GO_ENV" default:"dev"` // dev/prod

	JWTSecret                   string `envconfig:"JWT_SECRET" required:"true"` // JWT署名シークレット
	JWTAccessExpirationSeconds  int64  `envconfig:"JWT_ACCESS_EXPIRATION_SECONDS" default:"1800"`
	JWTRefreshExpirationSeconds int64  `envconfig:"JWT_REFRESH_EXPIRATION_SECONDS" default:"1209600"`

	DatabaseURL      string `envconfig:"DATABASE_URL"` // あればPOSTGRES_*より優先
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"postgres"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:"postgres"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"app"`
	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`

	RefreshStore  string `envconfig:"REFRESH_STORE" default:"postgres"` // memory/postgres/redis
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	CookieSecure bool     `envconfig:"COOKIE_SECURE" default:"true"`
	LogLevel     string   `envconfig:"LOG_LEVEL" default:"info"`
	CORSOrigins  []string `envconfig:"CORS_ORIGINS"` // カンマ区切り
}

// Loadは.env（あれば）と環境変数から設定を読む
func Load(envFiles ...string) (Config, error) {
	//.envは無くてもよい（本番は環境変数だけ）
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// 必須チェック
func (c Config) Validate() error {
	var problems []string

	if c.Port == "" {
		problems = append(problems, "PORT is required")
	}
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	} else if !c.IsDev() && len(c.JWTSecret) < 32 {
		problems = append(problems, "JWT_SECRET must be at least 32 bytes")
	}
	if c.JWTAccessExpirationSeconds <= 0 {
		problems = append(problems, "JWT_ACCESS_EXPIRATION_SECONDS must be positive")
	}
	if c.JWTRefreshExpirationSeconds <= 0 {
		problems = append(problems, "JWT_REFRESH_EXPIRATION_SECONDS must be positive")
	}

	switch c.RefreshStore {
	case RefreshStoreMemory, RefreshStorePostgres:
	case RefreshStoreRedis:
		if c.RedisAddr == "" {
			problems = append(problems, "REDIS_ADDR is required when REFRESH_STORE=redis")
		}
	default:
		problems = append(problems, "REFRESH_STORE must be memory, postgres or redis")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c Config) IsDev() bool {
	return c.GoEnv == "" || c.GoEnv == "dev"
}

func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.JWTAccessExpirationSeconds) * time.Second
}

func (c Config) RefreshTTL() time.Duration {
	return time.Duration(c.JWTRefreshExpirationSeconds) * time.Second
}

// ":8080" の形にそろえる
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// DSNを組み立てる。DATABASE_URLがあれば最優先。
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}
