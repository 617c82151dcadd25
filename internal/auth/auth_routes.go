package auth

import (
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", middleware.RateLimitByIP(0.5, 5), handler.Login)
		authGroup.POST("/refresh", handler.RefreshToken)
		authGroup.GET("/user", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Me)
		authGroup.POST("/logout", middleware.AuthMiddleware(), handler.Logout)
		authGroup.POST("/register",
			middleware.AuthMiddleware(),
			middleware.Authorize(rbacService, rbac.ResourceUser, rbac.ActionCreate),
			handler.Register,
		)
	}
}
