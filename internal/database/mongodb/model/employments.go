package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Employment 員工與店家的掛靠紀錄。僅追加，不實體刪除：
// 解除掛靠時 isCurrent 設 false 並補上 endDate。
type Employment struct {
	ID              primitive.ObjectID `json:"id" bson:"_id"`
	EmployeeID      primitive.ObjectID `json:"employeeId" bson:"employeeId"`
	EstablishmentID primitive.ObjectID `json:"establishmentId" bson:"establishmentId"`
	IsCurrent       bool               `json:"isCurrent" bson:"isCurrent"`
	StartDate       time.Time          `json:"startDate" bson:"startDate"`
	EndDate         *time.Time         `json:"endDate,omitempty" bson:"endDate,omitempty"`
	// 操作者，稽核用
	CreatedByUserID primitive.ObjectID `json:"createdByUserId" bson:"createdByUserId"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

var EmploymentIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "employeeId", Value: 1}, {Key: "isCurrent", Value: 1}},
		Options: options.Index().SetName("idx_employeeId_isCurrent"),
	},
	{
		Keys:    bson.D{{Key: "establishmentId", Value: 1}, {Key: "isCurrent", Value: 1}},
		Options: options.Index().SetName("idx_establishmentId_isCurrent"),
	},
	{
		Keys:    bson.D{{Key: "employeeId", Value: 1}, {Key: "startDate", Value: -1}},
		Options: options.Index().SetName("idx_employeeId_startDate"),
	},
}
