package model

import (
	"time"

	"pattamap/internal/core"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Establishment struct {
	ID       primitive.ObjectID         `json:"id" bson:"_id"`
	Name     string                     `json:"name" bson:"name"`
	Category core.EstablishmentCategory `json:"category" bson:"category"`
	Zone     core.Zone                  `json:"zone" bson:"zone"`
	// 地圖網格座標
	GridRow   int         `json:"gridRow" bson:"gridRow"`
	GridCol   int         `json:"gridCol" bson:"gridCol"`
	Status    core.Status `json:"status" bson:"status"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt" bson:"updatedAt"`
}

var EstablishmentIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "category", Value: 1}, {Key: "status", Value: 1}},
		Options: options.Index().SetName("idx_category_status"),
	},
	{
		Keys:    bson.D{{Key: "zone", Value: 1}, {Key: "gridRow", Value: 1}, {Key: "gridCol", Value: 1}},
		Options: options.Index().SetName("idx_zone_grid"),
	},
	{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("idx_name"),
	},
}
