package handler

import (
	"net/http"
	"strconv"

	"community/internal/usecase"

	"github.com/labstack/echo/v4"
)

type PostHandler struct {
	uc *usecase.PostUsecase
}

func NewPostHandler(uc *usecase.PostUsecase) *PostHandler {
	return &PostHandler{uc: uc}
}

func (h *PostHandler) Create(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req usecase.PostWriteRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	created, err := h.uc.Create(c.Request().Context(), userID, req)
	if err != nil {
		return writeUsecaseError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *PostHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("postId"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	post, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeUsecaseError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// GET /posts?page=&size=
func (h *PostHandler) List(c echo.Context) error {
	page, size, ok := pageParams(c)
	if !ok {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	res, err := h.uc.List(c.Request().Context(), page, size)
	if err != nil {
		return writeUsecaseError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// GET /posts/me?page=&size=
func (h *PostHandler) ListMine(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}
	page, size, ok := pageParams(c)
	if !ok {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	res, err := h.uc.ListMine(c.Request().Context(), userID, page, size)
	if err != nil {
		return writeUsecaseError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// 持ち主チェックはRequirePermission(POST)が先に済ませている
func (h *PostHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("postId"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	var req usecase.PostWriteRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	updated, err := h.uc.Update(c.Request().Context(), id, req)
	if err != nil {
		return writeUsecaseError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *PostHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("postId"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeUsecaseError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
