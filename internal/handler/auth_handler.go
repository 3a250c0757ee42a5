package handler

import (
	"errors"
	"net/http"
	"time"

	auth "community/internal/usecase/auth_usecase"
	"community/internal/validator"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// refresh token を入れるcookie名
const RefreshCookieName = "refreshToken"

type AuthHandler struct {
	registerUC   *auth.RegisterUserUsecase // 会員登録usecase
	authSvc      *auth.AuthService         // ログイン・更新・ログアウト
	refreshTTL   time.Duration             // refresh cookie の有効期限
	cookieSecure bool
	log          *zap.Logger
}

// DIコンストラクタ
func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	authSvc *auth.AuthService,
	refreshTTL time.Duration,
	cookieSecure bool,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		registerUC:   registerUC,
		authSvc:      authSvc,
		refreshTTL:   refreshTTL,
		cookieSecure: cookieSecure,
		log:          log,
	}
}

// POST /users のリクエストボディ。
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// /auth/login のリクエストボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ログイン・更新のレスポンス
type tokenResponse struct {
	AccessToken string `json:"accessToken"`
	Type        string `json:"type"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// RegisterはPOST /usersのハンドラ
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}
	if err := validator.ValidateRegister(req.Email, req.Password, req.Nickname); err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
	})
	if err != nil {
		switch err {
		case auth.ErrInvalidEmailFormat, auth.ErrPasswordTooShort, auth.ErrWeakPassword, auth.ErrInvalidNickname:
			return writeError(c, http.StatusBadRequest, "validation error")
		case auth.ErrEmailAlreadyExists:
			return writeError(c, http.StatusConflict, "conflict")
		default:
			h.log.Error("register failed", zap.Error(err))
			return writeError(c, http.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"id":       out.User.ID,
		"email":    out.User.Email,
		"nickname": out.User.Nickname,
	})
}

// LoginはPOST /auth/login のハンドラ。
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}
	if err := validator.ValidateLogin(req.Email, req.Password); err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	result, err := h.authSvc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if authErrorStatus(err) == http.StatusInternalServerError {
			h.log.Error("login failed", zap.Error(err))
		}
		return writeAuthError(c, err)
	}

	return h.writeTokens(c, result)
}

// RefreshはPOST /auth/refresh のハンドラ。cookieの値をローテーションする。
func (h *AuthHandler) Refresh(c echo.Context) error {
	var value string
	if cookie, err := c.Cookie(RefreshCookieName); err == nil {
		value = cookie.Value
	}

	result, err := h.authSvc.Refresh(c.Request().Context(), value)
	if err != nil {
		if authErrorStatus(err) == http.StatusInternalServerError {
			h.log.Error("refresh failed", zap.Error(err))
		}
		//使えないcookieは消しておく
		h.clearRefreshCookie(c)
		return writeAuthError(c, err)
	}

	return h.writeTokens(c, result)
}

// LogoutはPOST /auth/logout のハンドラ。cookieが無くても204。
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(RefreshCookieName); err == nil {
		if err := h.authSvc.Logout(c.Request().Context(), cookie.Value); err != nil && !errors.Is(err, auth.ErrRefreshTokenMismatch) {
			h.log.Error("logout failed", zap.Error(err))
			return writeError(c, http.StatusInternalServerError, "internal error")
		}
	}

	h.clearRefreshCookie(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) writeTokens(c echo.Context, result auth.LoginResult) error {
	h.setRefreshCookie(c, result.RefreshToken)
	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: result.AccessToken,
		Type:        "Bearer",
		ExpiresIn:   result.ExpiresIn,
	})
}

// refreshtoken をCookieにセット。
func (h *AuthHandler) setRefreshCookie(c echo.Context, value string) {
	c.SetCookie(&http.Cookie{
		Name:     RefreshCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.refreshTTL / time.Second),
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	clearRefreshCookie(c, h.cookieSecure)
}

// パスワード変更・退会でも使う
func clearRefreshCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
