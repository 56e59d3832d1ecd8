package app

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/nateesoft/management-hrm-system/internal/benefit"
	"github.com/nateesoft/management-hrm-system/internal/department"
	"github.com/nateesoft/management-hrm-system/internal/employee"
	"github.com/nateesoft/management-hrm-system/internal/messaging/kafka"
	"github.com/nateesoft/management-hrm-system/internal/middleware"
	"github.com/nateesoft/management-hrm-system/internal/payroll"
	"github.com/nateesoft/management-hrm-system/internal/position"
	"github.com/nateesoft/management-hrm-system/internal/rbac"
	"github.com/nateesoft/management-hrm-system/internal/rbac/infra"
	"github.com/nateesoft/management-hrm-system/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	positionRepo := position.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	benefitRepo := benefit.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)

	// --- Services ---
	payslips := cfg.Payslips.WithDefaults()
	departmentService := department.NewService(db, departmentRepo, logger)
	positionService := position.NewService(db, positionRepo, rdb, logger)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb, logger)
	payrollService := payroll.NewServiceWithOutbox(db, payrollRepo, outboxRepo, payslips, logger)
	benefitService := benefit.NewService(db, benefitRepo, logger)

	// --- Handlers ---
	departmentHandler := department.NewHandler(departmentService, logger)
	positionHandler := position.NewHandler(positionService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	payrollHandler := payroll.NewHandler(payrollService, logger)
	benefitHandler := benefit.NewHandler(benefitService, logger)
	rbacHandler := rbac.NewHandler(rbacService)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if strings.HasPrefix(payslips.PublicBaseURL, "/") {
		router.Static(payslips.PublicBaseURL, payslips.Dir)
	}

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequestID(),
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.ContextLogger(logger),
	)
	{
		department.RegisterRoutes(api, departmentHandler, rbacService)
		position.RegisterRoutes(api, positionHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		benefit.RegisterRoutes(api, benefitHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}
