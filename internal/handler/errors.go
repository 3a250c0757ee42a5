package handler

import (
	"errors"
	"net/http"
	"strconv"

	"community/internal/security"
	"community/internal/usecase"
	auth "community/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, status int, msg string) error {
	return c.JSON(status, errorResponse{Error: msg})
}

// usecaseのエラーをHTTPステータスに変換（中身は出さない）
func writeUsecaseError(c echo.Context, err error) error {
	switch err {
	case usecase.ErrValidation:
		return writeError(c, http.StatusBadRequest, "validation error")
	case usecase.ErrUnauthorized:
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	case usecase.ErrForbidden:
		return writeError(c, http.StatusForbidden, "forbidden")
	case usecase.ErrNotFound:
		return writeError(c, http.StatusNotFound, "not found")
	case usecase.ErrConflict:
		return writeError(c, http.StatusConflict, "conflict")
	default:
		return writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// 認証系のエラー。トークン不正・期限切れ・ログイン失敗はすべて401。
func authErrorStatus(err error) int {
	switch {
	case errors.Is(err, auth.ErrLoginFailed),
		errors.Is(err, auth.ErrRefreshTokenMismatch),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeAuthError(c echo.Context, err error) error {
	if authErrorStatus(err) == http.StatusUnauthorized {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}
	return writeError(c, http.StatusInternalServerError, "internal error")
}

// AuthJWTが入れたuser_id
func currentUserID(c echo.Context) (int64, bool) {
	if user, ok := security.PrincipalFrom(c.Request().Context()); ok {
		return user.UserID, true
	}
	return 0, false
}

// ?page=&size= を読む。無ければ0（usecase側で既定値）。数字でなければfalse。
func pageParams(c echo.Context) (int, int, bool) {
	page, ok := intQuery(c, "page")
	if !ok {
		return 0, 0, false
	}
	size, ok := intQuery(c, "size")
	if !ok {
		return 0, 0, false
	}
	return page, size, true
}

func intQuery(c echo.Context, name string) (int, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
