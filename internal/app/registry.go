package app

import (
	"database/sql"
	"go-ems/internal/attendance"
	"go-ems/internal/auth"
	"go-ems/internal/employee"
	"go-ems/internal/leave"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/notification"
	"go-ems/internal/performance"
	"go-ems/internal/rbac"
	"go-ems/internal/salary"
	"go-ems/internal/shared/counter"
	"go-ems/internal/task"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	performanceRepo := performance.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	taskRepo := task.NewRepository(gormDB)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo, outboxRepo)
	authService := auth.NewService(authRepo, employeeRepo)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, rdb)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo)
	notificationService := notification.NewService(notificationRepo)
	performanceService := performance.NewService(db, performanceRepo)
	salaryService := salary.NewService(db, salaryRepo)
	taskService := task.NewService(db, taskRepo, outboxRepo)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)
	notificationHandler := notification.NewHandler(notificationService)
	performanceHandler := performance.NewHandler(performanceService)
	salaryHandler := salary.NewHandlerWithRedis(salaryService, rdb)
	taskHandler := task.NewHandlerWithRedis(taskService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		auth.RegisterRoutes(api, authHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
		performance.RegisterRoutes(api, performanceHandler, rbacService)
		salary.RegisterRoutes(api, salaryHandler, rbacService, rdb)
		task.RegisterRoutes(api, taskHandler, rbacService, rdb)
	}

	return nil
}
