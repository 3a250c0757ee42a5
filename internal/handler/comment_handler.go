package handler

import (
	"net/http"
	"strconv"

	"community/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CommentHandler struct {
	uc *usecase.CommentUsecase
}

func NewCommentHandler(uc *usecase.CommentUsecase) *CommentHandler {
	return &CommentHandler{uc: uc}
}

func (h *CommentHandler) Create(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}

	postID, err := strconv.ParseInt(c.Param("postId"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	var req usecase.CommentWriteRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	created, err := h.uc.Create(c.Request().Context(), userID, postID, req)
	if err != nil {
		return writeUsecaseError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// GET /posts/:postId/comments?page=&size=
func (h *CommentHandler) List(c echo.Context) error {
	postID, err := strconv.ParseInt(c.Param("postId"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}
	page, size, ok := pageParams(c)
	if !ok {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	res, err := h.uc.ListByPost(c.Request().Context(), postID, page, size)
	if err != nil {
		return writeUsecaseError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// 持ち主・所属する投稿のチェックはRequirePermission(COMMENT)が済ませている
func (h *CommentHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("commentId"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	var req usecase.CommentWriteRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	updated, err := h.uc.Update(c.Request().Context(), id, req)
	if err != nil {
		return writeUsecaseError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *CommentHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("commentId"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeUsecaseError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
