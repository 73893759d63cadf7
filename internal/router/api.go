package router

import (
	"pattamap/internal/handler"
	"pattamap/internal/middleware"

	"github.com/gin-gonic/gin"
)

// ApiRouter 對外 API：公開查詢 + 需登入的自助操作
type ApiRouter struct {
	authMiddleware       *middleware.Auth
	rateLimitMiddleware  *middleware.RateLimit
	compressMiddleware   *middleware.Compress
	establishmentHandler *handler.EstablishmentHandler
	employeeHandler      *handler.EmployeeHandler
	employmentHandler    *handler.EmploymentHandler
	positionHandler      *handler.PositionHandler
	notificationHandler  *handler.NotificationHandler
	missionHandler       *handler.MissionHandler
}

func NewApiRouter(
	authMiddleware *middleware.Auth,
	rateLimitMiddleware *middleware.RateLimit,
	compressMiddleware *middleware.Compress,
	establishmentHandler *handler.EstablishmentHandler,
	employeeHandler *handler.EmployeeHandler,
	employmentHandler *handler.EmploymentHandler,
	positionHandler *handler.PositionHandler,
	notificationHandler *handler.NotificationHandler,
	missionHandler *handler.MissionHandler,
) *ApiRouter {
	return &ApiRouter{
		authMiddleware:       authMiddleware,
		rateLimitMiddleware:  rateLimitMiddleware,
		compressMiddleware:   compressMiddleware,
		establishmentHandler: establishmentHandler,
		employeeHandler:      employeeHandler,
		employmentHandler:    employmentHandler,
		positionHandler:      positionHandler,
		notificationHandler:  notificationHandler,
		missionHandler:       missionHandler,
	}
}

func (apiRouter *ApiRouter) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// 公開查詢：限流 + 壓縮
	public := api.Group("")
	public.Use(apiRouter.rateLimitMiddleware.Guard("public"))
	public.Use(apiRouter.compressMiddleware.Handler())
	{
		public.GET("/establishments", apiRouter.establishmentHandler.List)
		public.GET("/establishments/categories", apiRouter.establishmentHandler.Categories)
		public.GET("/establishments/:establishmentID", apiRouter.establishmentHandler.Get)
		public.GET("/establishments/:establishmentID/employees", apiRouter.employmentHandler.ListByEstablishment)

		public.GET("/employees", apiRouter.employeeHandler.List)
		public.GET("/employees/:employeeID", apiRouter.employeeHandler.Get)
		public.GET("/employees/:employeeID/associations", apiRouter.employmentHandler.ListByEmployee)
		public.GET("/employees/:employeeID/position", apiRouter.positionHandler.Get)

		public.GET("/positions", apiRouter.positionHandler.ListByZone)
	}

	// 登入後的自助操作
	authed := api.Group("")
	authed.Use(apiRouter.rateLimitMiddleware.Guard("authed"))
	authed.Use(apiRouter.authMiddleware.Handler())
	{
		authed.POST("/employees", apiRouter.employeeHandler.Create)
		authed.PATCH("/employees/:employeeID", apiRouter.employeeHandler.Update)

		authed.PUT("/employees/:employeeID/associations", apiRouter.employmentHandler.Replace)

		authed.PUT("/employees/:employeeID/position", apiRouter.positionHandler.Set)
		authed.DELETE("/employees/:employeeID/position", apiRouter.positionHandler.Clear)

		authed.GET("/notifications", apiRouter.notificationHandler.List)
		authed.GET("/notifications/unread-count", apiRouter.notificationHandler.UnreadCount)
		authed.PATCH("/notifications/:notificationID/read", apiRouter.notificationHandler.MarkRead)

		authed.GET("/missions", apiRouter.missionHandler.GetProgress)
		authed.POST("/missions/:missionKey/track", apiRouter.missionHandler.Track)
	}
}
