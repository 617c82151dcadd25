package attendance

import (
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware())
	{
		attendance.POST("/checkin", middleware.Authorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate), h.CheckIn)
		attendance.PUT("/checkout", middleware.Authorize(rbacService, rbac.ResourceAttendance, rbac.ActionUpdate), h.CheckOut)
		attendance.POST("/absent", middleware.Authorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate), h.MarkAbsent)
		attendance.GET("/today/:employeeId", middleware.Authorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead), h.GetTodayStatus)
		attendance.GET("/employee/:employeeId", middleware.Authorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead), h.GetByEmployee)
		attendance.GET("/workdays/:employeeId", middleware.Authorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead), h.GetWorkSummary)
		attendance.GET("", middleware.Authorize(rbacService, rbac.ResourceAttendanceAll, rbac.ActionRead), h.GetAll)
		attendance.PUT("/correct", middleware.Authorize(rbacService, rbac.ResourceAttendanceCorrection, rbac.ActionUpdate), h.Correct)
	}
}
