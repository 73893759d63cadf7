package dto

import (
	"time"

	"pattamap/internal/core"
)

// 建立通知：i18nKey 與 title/message 二擇一
type CreateNotificationDto struct {
	UserID     string                `json:"userId" binding:"required"`
	Type       core.NotificationType `json:"type" binding:"required"`
	I18nKey    string                `json:"i18nKey,omitempty"`
	I18nParams map[string]string     `json:"i18nParams,omitempty"`
	Title      string                `json:"title,omitempty"`
	Message    string                `json:"message,omitempty"`
	RelatedID  string                `json:"relatedId,omitempty"`
}

// 通知列表查詢參數
type ListNotificationsDto struct {
	UnreadOnly bool  `form:"unreadOnly"`
	Page       int64 `form:"page" binding:"omitempty,min=0"`
	Size       int64 `form:"size" binding:"omitempty,min=1,max=100"`
}

type NotificationResponseDto struct {
	ID         string                `json:"id"`
	Type       core.NotificationType `json:"type"`
	I18nKey    string                `json:"i18nKey,omitempty"`
	I18nParams map[string]string     `json:"i18nParams,omitempty"`
	Title      string                `json:"title,omitempty"`
	Message    string                `json:"message,omitempty"`
	RelatedID  string                `json:"relatedId,omitempty"`
	IsRead     bool                  `json:"isRead"`
	ReadAt     *time.Time            `json:"readAt,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
}

type UnreadCountResponseDto struct {
	Count int64 `json:"count"`
}
