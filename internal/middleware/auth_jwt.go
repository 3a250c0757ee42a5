package middleware

import (
	"errors"
	"net/http"

	"community/internal/metrics"
	"community/internal/security"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey = "user_id" // int64
)

// Bearerトークンの取り出しと検証（security.TokenProviderが実装）
type Authenticator interface {
	ResolveToken(r *http.Request) (string, error)
	GetAuthentication(token string) (security.Authentication, error)
}

// bearerAuth用のJWT検証ミドルウェア。
// 通ったらprincipalをrequestのcontextとecho.Contextの両方に入れる。
func AuthJWT(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダからtokenを抜く
			rawToken, err := auth.ResolveToken(c.Request())
			if err != nil {
				return unauthorized(c, "missing_bearer")
			}

			//署名・期限・種別(ACCESS)を検証する
			authn, err := auth.GetAuthentication(rawToken)
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, security.ErrExpiredToken) {
					reason = "expired_token"
				}
				return unauthorized(c, reason)
			}
			if !authn.Authenticated || authn.Principal.UserID <= 0 {
				return unauthorized(c, "invalid_token")
			}

			//contextへ保存
			req := c.Request()
			c.SetRequest(req.WithContext(security.WithPrincipal(req.Context(), authn.Principal)))
			c.Set(CtxUserIDKey, authn.Principal.UserID)

			return next(c)
		}
	}
}

func unauthorized(c echo.Context, reason string) error {
	metrics.AuthRejectedTotal.WithLabelValues(reason).Inc()
	return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
