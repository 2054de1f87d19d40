package app

import (
	"hr-portal/internal/auth"
	"hr-portal/internal/config"
	"hr-portal/internal/health"
	"hr-portal/internal/leave"
	"hr-portal/internal/messaging/kafka"
	"hr-portal/internal/metrics"
	"hr-portal/internal/middleware"
	"hr-portal/internal/profile"
	"hr-portal/internal/rbac"
	"hr-portal/internal/rbac/infra"
	"hr-portal/internal/timesheet"
	"hr-portal/internal/user"

	"github.com/gin-gonic/gin"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	deps Dependencies,
	tokens *auth.TokenManager,
) error {
	sqlDB, err := deps.DB.DB()
	if err != nil {
		return err
	}

	// --- Repositories ---
	userRepo := user.NewRepository(deps.DB)
	leaveRepo := leave.NewRepository(deps.DB)
	timesheetRepo := timesheet.NewRepository(deps.DB)
	profileRepo := profile.NewRepository(deps.DB)
	outboxRepo := kafka.NewOutboxRepository(deps.DB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)
	adminGuard := middleware.NewAdminGuard(cfg.EnforceAdmin, tokens, rbacService)
	idempotency := middleware.Idempotency(deps.Redis)

	// --- Services ---
	userService := user.NewService(userRepo, tokens, deps.Redis)
	leaveService := leave.NewService(deps.DB, leaveRepo, outboxRepo)
	timesheetService := timesheet.NewService(deps.DB, timesheetRepo, outboxRepo)
	profileService := profile.NewService(profileRepo)

	// --- Handlers ---
	userHandler := user.NewHandler(userService, cfg.IsProduction())
	leaveHandler := leave.NewHandler(leaveService)
	timesheetHandler := timesheet.NewHandler(timesheetService)
	profileHandler := profile.NewHandler(profileService)
	healthHandler := health.NewHandler(sqlDB)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		user.RegisterRoutes(api, userHandler)
		leave.RegisterRoutes(api, leaveHandler, adminGuard, idempotency)
		timesheet.RegisterRoutes(api, timesheetHandler, adminGuard, idempotency)
		profile.RegisterRoutes(api, profileHandler)
	}

	health.RegisterRoutes(router, api, healthHandler)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return nil
}
