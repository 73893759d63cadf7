package repository

import (
	"context"
	"fmt"
	"time"

	"pattamap/internal/core"
	client "pattamap/internal/database/client"
	"pattamap/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type IndependentPositionRepository struct {
	collection *mongo.Collection
}

func NewIndependentPositionRepository(mongoClient *client.MongoClient) *IndependentPositionRepository {
	repository := &IndependentPositionRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBPattaMap)).Collection(string(core.MongoCollectionIndependentPositions)),
	}
	_, _ = repository.collection.Indexes().CreateMany(context.Background(), model.IndependentPositionIndexes)
	return repository
}

func (repository *IndependentPositionRepository) Insert(contextValue context.Context, position *model.IndependentPosition) (_ *model.IndependentPosition, returnedError error) {
	nowUTC := time.Now().UTC()
	if position.ID.IsZero() {
		position.ID = primitive.NewObjectID()
	}
	position.CreatedAt = nowUTC
	position.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, position)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	position.ID = objectID
	return position, nil
}

func (repository *IndependentPositionRepository) FindActiveByEmployee(contextValue context.Context, employeeIdentifier primitive.ObjectID) (_ *model.IndependentPosition, returnedError error) {
	var position model.IndependentPosition
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"employeeId": employeeIdentifier, "isActive": true}).Decode(&position); returnedError != nil {
		return nil, returnedError
	}
	return &position, nil
}

// DeactivateByEmployee 收起員工目前的地圖標記；回傳被更新的筆數。
func (repository *IndependentPositionRepository) DeactivateByEmployee(contextValue context.Context, employeeIdentifier primitive.ObjectID) (returnedCount int64, returnedError error) {
	update := withUpdatedAt(bson.M{"$set": bson.M{"isActive": false}})
	result, updateError := repository.collection.UpdateMany(
		contextValue,
		bson.M{"employeeId": employeeIdentifier, "isActive": true},
		update,
	)
	if updateError != nil {
		return 0, updateError
	}
	return result.ModifiedCount, nil
}

// ListActiveByZone 地圖分區顯示用
func (repository *IndependentPositionRepository) ListActiveByZone(contextValue context.Context, zone core.Zone) (_ []*model.IndependentPosition, returnedError error) {
	cursor, findError := repository.collection.Find(contextValue, bson.M{"zone": zone, "isActive": true})
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var positions []*model.IndependentPosition
	if returnedError = cursor.All(contextValue, &positions); returnedError != nil {
		return nil, returnedError
	}
	return positions, nil
}
