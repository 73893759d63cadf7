package model

import (
	"time"

	"pattamap/internal/core"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type User struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	DisplayName string             `json:"displayName" bson:"displayName"`
	Email       string             `json:"email,omitempty" bson:"email,omitempty"`
	Role        core.Role          `json:"role" bson:"role"`
	Status      core.Status        `json:"status" bson:"status"`
	IsVip       bool               `json:"isVip" bson:"isVip"`
	VipUntil    *time.Time         `json:"vipUntil,omitempty" bson:"vipUntil,omitempty"`
	// 追蹤的員工，通知 fan-out 依此反查
	FollowedEmployeeIDs []primitive.ObjectID `json:"followedEmployeeIds,omitempty" bson:"followedEmployeeIds,omitempty"`
	CreatedAt           time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt" bson:"updatedAt"`
}

var UserIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_email").SetUnique(true).SetSparse(true),
	},
	{
		Keys:    bson.D{{Key: "role", Value: 1}},
		Options: options.Index().SetName("idx_role"),
	},
	{
		Keys:    bson.D{{Key: "followedEmployeeIds", Value: 1}},
		Options: options.Index().SetName("idx_followedEmployeeIds"),
	},
}
