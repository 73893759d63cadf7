package model

// NotificationLog 通知稽核紀錄，對應 notification_log tag
type NotificationLog struct {
	NotificationID string `bson:"notification_id" json:"notification_id"`
	UserID         string `bson:"user_id" json:"user_id"`
	Type           string `bson:"type" json:"type"`
	I18nKey        string `bson:"i18n_key,omitempty" json:"i18n_key,omitempty"`
	RelatedID      string `bson:"related_id,omitempty" json:"related_id,omitempty"`
	ProjectName    string `bson:"project_name,omitempty" json:"project_name,omitempty"`
	Version        string `bson:"version,omitempty" json:"version,omitempty"`
	CreatedTS      string `bson:"created_ts" json:"created_ts"`
	LoggedAt       string `bson:"logged_at" json:"logged_at"`
}
