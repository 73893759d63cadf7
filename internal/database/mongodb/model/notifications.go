package model

import (
	"time"

	"pattamap/internal/core"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Notification 每位收件者一筆；應用程式不刪除，只標記已讀。
type Notification struct {
	ID     primitive.ObjectID    `json:"id" bson:"_id"`
	UserID primitive.ObjectID    `json:"userId" bson:"userId"`
	Type   core.NotificationType `json:"type" bson:"type"`
	// i18nKey 與 title/message 二擇一
	I18nKey    string             `json:"i18nKey,omitempty" bson:"i18nKey,omitempty"`
	I18nParams map[string]string  `json:"i18nParams,omitempty" bson:"i18nParams,omitempty"`
	Title      string             `json:"title,omitempty" bson:"title,omitempty"`
	Message    string             `json:"message,omitempty" bson:"message,omitempty"`
	RelatedID  primitive.ObjectID `json:"relatedId,omitempty" bson:"relatedId,omitempty"`
	IsRead     bool               `json:"isRead" bson:"isRead"`
	ReadAt     *time.Time         `json:"readAt,omitempty" bson:"readAt,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

var NotificationIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "isRead", Value: 1}},
		Options: options.Index().SetName("idx_userId_isRead"),
	},
	{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_userId_createdAt"),
	},
}
