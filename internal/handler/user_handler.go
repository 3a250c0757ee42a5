package handler

import (
	"errors"
	"net/http"

	"community/internal/usecase"
	auth "community/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type UserHandler struct {
	uc           *usecase.UserUsecase
	account      *auth.AccountUsecase
	cookieSecure bool
	log          *zap.Logger
}

func NewUserHandler(uc *usecase.UserUsecase, account *auth.AccountUsecase, cookieSecure bool, log *zap.Logger) *UserHandler {
	return &UserHandler{uc: uc, account: account, cookieSecure: cookieSecure, log: log}
}

// PATCH /users/me/password のリクエストボディ。
type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// GET /users/me
func (h *UserHandler) Me(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}

	me, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		return writeUsecaseError(c, err)
	}
	return c.JSON(http.StatusOK, me)
}

// GET /users/availability?email=&nickname=
func (h *UserHandler) Availability(c echo.Context) error {
	res, err := h.uc.Availability(c.Request().Context(), c.QueryParam("email"), c.QueryParam("nickname"))
	if err != nil {
		return writeUsecaseError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// PATCH /users/me
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req usecase.ProfileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	updated, err := h.uc.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return writeUsecaseError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// PATCH /users/me/password
// 成功したら全端末のリフレッシュトークンが失効するのでcookieも消す
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	err := h.account.ChangePassword(c.Request().Context(), userID, auth.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return h.writeAccountError(c, "change password failed", err)
	}

	clearRefreshCookie(c, h.cookieSecure)
	return c.NoContent(http.StatusNoContent)
}

// DELETE /users/me
func (h *UserHandler) Delete(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}

	if err := h.account.DeleteAccount(c.Request().Context(), userID); err != nil {
		return h.writeAccountError(c, "delete account failed", err)
	}

	clearRefreshCookie(c, h.cookieSecure)
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) writeAccountError(c echo.Context, msg string, err error) error {
	switch {
	case errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrCurrentPasswordMismatch):
		return writeError(c, http.StatusBadRequest, "validation error")
	case errors.Is(err, auth.ErrAccountNotFound):
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	default:
		h.log.Error(msg, zap.Error(err))
		return writeError(c, http.StatusInternalServerError, "internal error")
	}
}
