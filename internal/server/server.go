package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"community/internal/handler"
	appmw "community/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// ルーティングに必要な部品
type Deps struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Posts    *handler.PostHandler
	Comments *handler.CommentHandler

	Authenticator appmw.Authenticator
	Permissions   appmw.PermissionChecker

	// /healthz で呼ぶ。nilなら常にok。
	HealthCheck func(ctx context.Context) error

	CORSOrigins []string
	Log         *zap.Logger
}

// echoを組み立てる（起動はしない）
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(appmw.RequestLogger(d.Log))
	if len(d.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     d.CORSOrigins,
			AllowCredentials: true,
		}))
	}

	RegisterRoutes(e, d)
	return e
}

// 起動してctxが終わったら止める
func Start(ctx context.Context, e *echo.Echo, addr string, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("http server shutting down")
	return e.Shutdown(shutdownCtx)
}
