package employee

import (
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.Authorize(rbacService, rbac.ResourceEmployee, rbac.ActionRead), h.GetAll)
		employees.GET("/options", middleware.Authorize(rbacService, rbac.ResourceEmployee, rbac.ActionRead), h.GetOptions)
		employees.GET("/me", h.GetCurrent)
		employees.GET("/:id", middleware.Authorize(rbacService, rbac.ResourceEmployee, rbac.ActionRead), h.GetByID)
		employees.POST("", middleware.Authorize(rbacService, rbac.ResourceEmployee, rbac.ActionCreate), h.Create)
		employees.PUT("/:id", middleware.Authorize(rbacService, rbac.ResourceEmployee, rbac.ActionUpdate), h.Update)
		employees.DELETE("/:id", middleware.Authorize(rbacService, rbac.ResourceEmployee, rbac.ActionDelete), h.Delete)
	}
}
