package handler

import (
	"pattamap/internal/dto"
	cErr "pattamap/internal/pkg/error"
	"pattamap/internal/pkg/response"
	"pattamap/internal/service"
	"pattamap/internal/telemetry"
	"pattamap/utils/validate"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	trace               *telemetry.Trace
	notificationService *service.NotificationService
}

func NewNotificationHandler(trace *telemetry.Trace, notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{trace: trace, notificationService: notificationService}
}

// List 通知列表
// @Summary 取得自己的通知（unreadOnly=true 只列未讀）
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Param unreadOnly query bool false "只列未讀"
// @Param page query int false "頁碼"
// @Param size query int false "每頁筆數"
// @Success 200 {array} dto.NotificationResponseDto
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	userID, authErr := actorUserID(c)
	if authErr != nil {
		response.AbortWithError(c, authErr)
		return
	}

	req := dto.ListNotificationsDto{
		UnreadOnly: c.Query("unreadOnly") == "true",
		Page:       getInt64Query(c, "page", 0),
		Size:       getInt64Query(c, "size", 20),
	}

	notifications, err := h.notificationService.ListNotifications(ctx, userID, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, notifications)
}

// UnreadCount 未讀數
// @Summary 取得自己的未讀通知數（查詢失敗回 0）
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UnreadCountResponseDto
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	userID, authErr := actorUserID(c)
	if authErr != nil {
		response.AbortWithError(c, authErr)
		return
	}

	count := h.notificationService.UnreadCount(ctx, userID)
	response.Success(c, dto.UnreadCountResponseDto{Count: count})
}

// MarkRead 標記已讀
// @Summary 標記單一通知為已讀（限本人）
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Param notificationID path string true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /notifications/{notificationID}/read [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	notificationID, cause, respErr := validate.ParseObjectID(c, "notificationID")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	userID, authErr := actorUserID(c)
	if authErr != nil {
		response.AbortWithError(c, authErr)
		return
	}

	if err := h.notificationService.MarkAsRead(ctx, notificationID, userID); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, "notification marked as read")
}

// Create 管理員發送通知
// @Summary 管理員對單一用戶發送通知
// @Tags Notification
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateNotificationDto true "通知內容"
// @Success 201 {object} dto.NotificationResponseDto
// @Failure 400 {object} map[string]string
// @Router /admin/notifications [post]
func (h *NotificationHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.CreateNotificationDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	// i18nKey 或 title/message 至少要有一種內容
	if req.I18nKey == "" && req.Title == "" && req.Message == "" {
		response.AbortWithError(c, cErr.NotificationContentRequired("either i18nKey or title/message is required"))
		return
	}

	notification, err := h.notificationService.Notify(ctx, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, notification)
}
