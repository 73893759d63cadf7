package model

import (
	"time"

	"pattamap/internal/core"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndependentPosition 自由工作者自行維護的地圖標記，與掛靠紀錄互相獨立。
// 每位員工同時最多一筆 isActive=true。
type IndependentPosition struct {
	ID         primitive.ObjectID `json:"id" bson:"_id"`
	EmployeeID primitive.ObjectID `json:"employeeId" bson:"employeeId"`
	Zone       core.Zone          `json:"zone" bson:"zone"`
	GridRow    int                `json:"gridRow" bson:"gridRow"`
	GridCol    int                `json:"gridCol" bson:"gridCol"`
	IsActive   bool               `json:"isActive" bson:"isActive"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

var IndependentPositionIndexes = []mongo.IndexModel{
	{
		Keys: bson.D{{Key: "employeeId", Value: 1}, {Key: "isActive", Value: 1}},
		Options: options.Index().SetName("uniq_employeeId_active").
			SetUnique(true).
			SetPartialFilterExpression(bson.D{{Key: "isActive", Value: true}}),
	},
	{
		Keys:    bson.D{{Key: "zone", Value: 1}, {Key: "isActive", Value: 1}},
		Options: options.Index().SetName("idx_zone_active"),
	},
}
