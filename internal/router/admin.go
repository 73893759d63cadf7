package router

import (
	"pattamap/internal/core"
	"pattamap/internal/handler"
	"pattamap/internal/middleware"

	"github.com/gin-gonic/gin"
)

// AdminRouter 後台管理：JWT + 角色檢查
type AdminRouter struct {
	authMiddleware      *middleware.Auth
	adminHandler        *handler.AdminHandler
	notificationHandler *handler.NotificationHandler
}

func NewAdminRouter(
	authMiddleware *middleware.Auth,
	adminHandler *handler.AdminHandler,
	notificationHandler *handler.NotificationHandler,
) *AdminRouter {
	return &AdminRouter{
		authMiddleware:      authMiddleware,
		adminHandler:        adminHandler,
		notificationHandler: notificationHandler,
	}
}

func (adminRouter *AdminRouter) RegisterRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin")
	admin.Use(adminRouter.authMiddleware.Handler())
	admin.Use(adminRouter.authMiddleware.RequireRole(core.RoleAdmin, core.RoleModerator))
	{
		admin.GET("/dashboard", adminRouter.adminHandler.Dashboard)
		admin.PATCH("/employees/:employeeID/verify", adminRouter.adminHandler.VerifyEmployee)
		admin.POST("/establishments", adminRouter.adminHandler.CreateEstablishment)
		admin.PATCH("/establishments/:establishmentID", adminRouter.adminHandler.UpdateEstablishment)
		admin.POST("/notifications", adminRouter.notificationHandler.Create)
	}
}
