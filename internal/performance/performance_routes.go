package performance

import (
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	evaluations := r.Group("/performance")
	evaluations.Use(middleware.AuthMiddleware())
	{
		evaluations.GET("", middleware.Authorize(rbacService, rbac.ResourcePerformance, rbac.ActionRead), h.GetAll)
		evaluations.GET("/:id", middleware.Authorize(rbacService, rbac.ResourcePerformance, rbac.ActionRead), h.GetByID)
		evaluations.POST("", middleware.Authorize(rbacService, rbac.ResourcePerformance, rbac.ActionCreate), h.Create)
		evaluations.PUT("/:id", middleware.Authorize(rbacService, rbac.ResourcePerformance, rbac.ActionUpdate), h.Update)
		evaluations.DELETE("/:id", middleware.Authorize(rbacService, rbac.ResourcePerformance, rbac.ActionDelete), h.Delete)
	}
}
