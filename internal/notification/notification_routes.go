package notification

import (
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", middleware.Authorize(rbacService, rbac.ResourceNotification, rbac.ActionRead), h.GetMine)
		notifications.GET("/unread-count", middleware.Authorize(rbacService, rbac.ResourceNotification, rbac.ActionRead), h.UnreadCount)
		notifications.PUT("/:id/read", middleware.Authorize(rbacService, rbac.ResourceNotification, rbac.ActionUpdate), h.MarkRead)
		notifications.PUT("/read-all", middleware.Authorize(rbacService, rbac.ResourceNotification, rbac.ActionUpdate), h.MarkAllRead)
	}
}
