package model

import (
	"time"

	"pattamap/internal/core"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Employee struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Nickname    string             `json:"nickname" bson:"nickname"`
	Bio         string             `json:"bio,omitempty" bson:"bio,omitempty"`
	PhotoURL    string             `json:"photoUrl,omitempty" bson:"photoUrl,omitempty"`
	IsFreelance bool               `json:"isFreelance" bson:"isFreelance"`
	IsVerified  bool               `json:"isVerified" bson:"isVerified"`
	Status      core.Status        `json:"status" bson:"status"`
	// 員工本人綁定的帳號（自由工作者自我管理用），可為空
	OwnerUserID *primitive.ObjectID `json:"ownerUserId,omitempty" bson:"ownerUserId,omitempty"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt" bson:"updatedAt"`
}

var EmployeeIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "nickname", Value: 1}},
		Options: options.Index().SetName("idx_nickname"),
	},
	{
		Keys:    bson.D{{Key: "isFreelance", Value: 1}, {Key: "status", Value: 1}},
		Options: options.Index().SetName("idx_isFreelance_status"),
	},
	{
		Keys:    bson.D{{Key: "ownerUserId", Value: 1}},
		Options: options.Index().SetName("idx_ownerUserId").SetSparse(true),
	},
}
