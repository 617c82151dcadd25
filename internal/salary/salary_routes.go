package salary

import (
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	salaries := r.Group("/salaries")
	salaries.Use(middleware.AuthMiddleware())
	{
		salaries.GET("", middleware.Authorize(rbacService, rbac.ResourceSalary, rbac.ActionRead), h.GetAll)
		salaries.GET("/:id", middleware.Authorize(rbacService, rbac.ResourceSalary, rbac.ActionRead), h.GetByID)
		if redisClient != nil {
			salaries.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.Authorize(rbacService, rbac.ResourceSalary, rbac.ActionCreate),
				h.Create,
			)
		} else {
			salaries.POST("", middleware.Authorize(rbacService, rbac.ResourceSalary, rbac.ActionCreate), h.Create)
		}
		salaries.PUT("/:id", middleware.Authorize(rbacService, rbac.ResourceSalary, rbac.ActionUpdate), h.Update)
		salaries.POST("/:id/mark-paid", middleware.Authorize(rbacService, rbac.ResourceSalary, rbac.ActionUpdate), h.MarkPaid)
		salaries.DELETE("/:id", middleware.Authorize(rbacService, rbac.ResourceSalary, rbac.ActionDelete), h.Delete)
	}
}
