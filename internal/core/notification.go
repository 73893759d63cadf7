package core

// NotificationType 通知類別，對應前端 i18n 模板
type NotificationType string

const (
	NotificationFavoriteAvailable NotificationType = "favorite_available"
	NotificationVerifyApproved    NotificationType = "verify_approved"
	NotificationVerifyRejected    NotificationType = "verify_rejected"
	NotificationVipPurchased      NotificationType = "vip_purchased"
	NotificationFollowerUpdate    NotificationType = "follower_update"
	NotificationAdminAlert        NotificationType = "admin_alert"
	NotificationMissionComplete   NotificationType = "mission_complete"
)
