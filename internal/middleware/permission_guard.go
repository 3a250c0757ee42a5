package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"community/internal/metrics"
	"community/internal/repository"
	"community/internal/security"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// 権限判定（security.PermissionDispatcherが実装）
type PermissionChecker interface {
	HasPermission(ctx context.Context, user security.AuthenticatedUser, targetID int64, targetType security.TargetType, extra []any) (bool, error)
}

// ルートのパラメータから対象IDと追加パラメータを作る
type TargetResolver func(c echo.Context) (targetID int64, extra []any, ok bool)

// AuthJWTの後ろに置いて、principalが対象を操作できるか確認します。
func RequirePermission(checker PermissionChecker, targetType security.TargetType, resolve TargetResolver, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := security.PrincipalFrom(c.Request().Context())
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			targetID, extra, ok := resolve(c)
			if !ok {
				return c.JSON(http.StatusBadRequest, errorJSON("validation error"))
			}

			allowed, err := checker.HasPermission(c.Request().Context(), user, targetID, targetType, extra)
			if err != nil {
				//対象が無ければ404、それ以外は500
				if errors.Is(err, repository.ErrPostNotFound) || errors.Is(err, repository.ErrCommentNotFound) {
					metrics.PermissionDecisionTotal.WithLabelValues(string(targetType), "not_found").Inc()
					return c.JSON(http.StatusNotFound, errorJSON("not found"))
				}
				log.Error("permission check failed",
					zap.String("target", string(targetType)),
					zap.Int64("target_id", targetID),
					zap.Error(err),
				)
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			//持ち主以外は拒否
			if !allowed {
				metrics.PermissionDecisionTotal.WithLabelValues(string(targetType), "denied").Inc()
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}

			metrics.PermissionDecisionTotal.WithLabelValues(string(targetType), "allowed").Inc()
			return next(c)
		}
	}
}

// /posts/:postId
func PostTarget(c echo.Context) (int64, []any, bool) {
	postID, ok := pathID(c, "postId")
	if !ok {
		return 0, nil, false
	}
	return postID, nil, true
}

// /posts/:postId/comments/:commentId は [commentId, postId]
func CommentTarget(c echo.Context) (int64, []any, bool) {
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return 0, nil, false
	}
	postID, ok := pathID(c, "postId")
	if !ok {
		return 0, nil, false
	}
	return commentID, []any{commentID, postID}, true
}

func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}
