package leave

import (
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", middleware.Authorize(rbacService, rbac.ResourceLeave, rbac.ActionRead), h.GetAll)
		leaves.GET("/:id", middleware.Authorize(rbacService, rbac.ResourceLeave, rbac.ActionRead), h.GetByID)
		leaves.POST("", middleware.Authorize(rbacService, rbac.ResourceLeave, rbac.ActionCreate), h.Create)
		leaves.PUT("/:id/approve", middleware.Authorize(rbacService, rbac.ResourceLeaveDecision, rbac.ActionUpdate), h.Approve)
		leaves.PUT("/:id/reject", middleware.Authorize(rbacService, rbac.ResourceLeaveDecision, rbac.ActionUpdate), h.Reject)
		leaves.DELETE("/:id", middleware.Authorize(rbacService, rbac.ResourceLeave, rbac.ActionDelete), h.Delete)
	}
}
