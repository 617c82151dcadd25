package task

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

	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware())
	{
		tasks.GET("", middleware.Authorize(rbacService, rbac.ResourceTask, rbac.ActionRead), h.GetAll)
		tasks.GET("/:id", middleware.Authorize(rbacService, rbac.ResourceTask, rbac.ActionRead), h.GetByID)
		if redisClient != nil {
			tasks.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.Authorize(rbacService, rbac.ResourceTask, rbac.ActionCreate),
				h.Create,
			)
		} else {
			tasks.POST("", middleware.Authorize(rbacService, rbac.ResourceTask, rbac.ActionCreate), h.Create)
		}
		tasks.PUT("/:id/status", middleware.Authorize(rbacService, rbac.ResourceTask, rbac.ActionUpdate), h.UpdateStatus)
		tasks.POST("/:id/timer/start", middleware.Authorize(rbacService, rbac.ResourceTask, rbac.ActionUpdate), h.StartTimer)
		tasks.POST("/:id/timer/stop", middleware.Authorize(rbacService, rbac.ResourceTask, rbac.ActionUpdate), h.StopTimer)
		tasks.DELETE("/:id", middleware.Authorize(rbacService, rbac.ResourceTask, rbac.ActionDelete), h.Delete)
	}
}
