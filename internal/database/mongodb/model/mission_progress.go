package model

import (
	"time"

	"pattamap/internal/core"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MissionProgress 每位用戶、每個任務一筆；排程重置只清進度不刪文件。
type MissionProgress struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	MissionKey  string             `json:"missionKey" bson:"missionKey"`
	Period      core.MissionPeriod `json:"period" bson:"period"`
	Progress    int                `json:"progress" bson:"progress"`
	Target      int                `json:"target" bson:"target"`
	Completed   bool               `json:"completed" bson:"completed"`
	CompletedAt *time.Time         `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	// 上次重置時間，排程寫入
	ResetAt   *time.Time `json:"resetAt,omitempty" bson:"resetAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

var MissionProgressIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "missionKey", Value: 1}},
		Options: options.Index().SetName("uniq_userId_missionKey").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "period", Value: 1}},
		Options: options.Index().SetName("idx_period"),
	},
}
