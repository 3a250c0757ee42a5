package server

import (
	"net/http"

	appmw "community/internal/middleware"
	"community/internal/security"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		if d.HealthCheck != nil {
			if err := d.HealthCheck(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	bearer := appmw.AuthJWT(d.Authenticator)
	ownsPost := appmw.RequirePermission(d.Permissions, security.TargetPost, appmw.PostTarget, d.Log)
	ownsComment := appmw.RequirePermission(d.Permissions, security.TargetComment, appmw.CommentTarget, d.Log)

	//認証
	e.POST("/users", d.Auth.Register)
	e.POST("/auth/login", d.Auth.Login)
	e.POST("/auth/refresh", d.Auth.Refresh)
	e.POST("/auth/logout", d.Auth.Logout)

	e.GET("/users/availability", d.Users.Availability)
	e.GET("/users/me", d.Users.Me, bearer)
	e.PATCH("/users/me", d.Users.UpdateProfile, bearer)
	e.PATCH("/users/me/password", d.Users.ChangePassword, bearer)
	e.DELETE("/users/me", d.Users.Delete, bearer)

	//投稿
	e.GET("/posts", d.Posts.List)
	e.GET("/posts/me", d.Posts.ListMine, bearer)
	e.POST("/posts", d.Posts.Create, bearer)
	e.GET("/posts/:postId", d.Posts.Get)
	e.PUT("/posts/:postId", d.Posts.Update, bearer, ownsPost)
	e.DELETE("/posts/:postId", d.Posts.Delete, bearer, ownsPost)

	//コメント
	e.GET("/posts/:postId/comments", d.Comments.List)
	e.POST("/posts/:postId/comments", d.Comments.Create, bearer)
	e.PUT("/posts/:postId/comments/:commentId", d.Comments.Update, bearer, ownsComment)
	e.DELETE("/posts/:postId/comments/:commentId", d.Comments.Delete, bearer, ownsComment)
}
