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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EmploymentRepository struct {
	collection *mongo.Collection
}

func NewEmploymentRepository(mongoClient *client.MongoClient) *EmploymentRepository {
	repository := &EmploymentRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBPattaMap)).Collection(string(core.MongoCollectionEmployments)),
	}
	_, _ = repository.collection.Indexes().CreateMany(context.Background(), model.EmploymentIndexes)
	return repository
}

func (repository *EmploymentRepository) Insert(contextValue context.Context, employment *model.Employment) (_ *model.Employment, returnedError error) {
	nowUTC := time.Now().UTC()
	if employment.ID.IsZero() {
		employment.ID = primitive.NewObjectID()
	}
	employment.CreatedAt = nowUTC
	employment.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, employment)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	employment.ID = objectID
	return employment, nil
}

// FindCurrentByEmployee 取出員工目前所有 isCurrent=true 的掛靠紀錄
func (repository *EmploymentRepository) FindCurrentByEmployee(contextValue context.Context, employeeIdentifier primitive.ObjectID) (_ []*model.Employment, returnedError error) {
	cursor, findError := repository.collection.Find(contextValue, bson.M{"employeeId": employeeIdentifier, "isCurrent": true})
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var employments []*model.Employment
	if returnedError = cursor.All(contextValue, &employments); returnedError != nil {
		return nil, returnedError
	}
	return employments, nil
}

// DeactivateCurrentByEmployee 將員工所有現行掛靠標記為結束並補 endDate。
// 回傳實際被更新的筆數。
func (repository *EmploymentRepository) DeactivateCurrentByEmployee(
	contextValue context.Context,
	employeeIdentifier primitive.ObjectID,
	endDate time.Time,
) (returnedCount int64, returnedError error) {

	update := withUpdatedAt(bson.M{"$set": bson.M{"isCurrent": false, "endDate": endDate}})
	result, updateError := repository.collection.UpdateMany(
		contextValue,
		bson.M{"employeeId": employeeIdentifier, "isCurrent": true},
		update,
	)
	if updateError != nil {
		return 0, updateError
	}
	return result.ModifiedCount, nil
}

// ListByEmployee 歷史掛靠紀錄（新到舊）
func (repository *EmploymentRepository) ListByEmployee(
	contextValue context.Context,
	employeeIdentifier primitive.ObjectID,
	currentOnly bool,
) (_ []*model.Employment, returnedError error) {

	filter := bson.M{"employeeId": employeeIdentifier}
	if currentOnly {
		filter["isCurrent"] = true
	}
	findOptions := options.Find().SetSort(bson.M{"startDate": -1})

	cursor, findError := repository.collection.Find(contextValue, filter, findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var employments []*model.Employment
	if returnedError = cursor.All(contextValue, &employments); returnedError != nil {
		return nil, returnedError
	}
	return employments, nil
}

// ListCurrentByEstablishment 店家頁側邊欄：目前掛靠在此店的員工
func (repository *EmploymentRepository) ListCurrentByEstablishment(
	contextValue context.Context,
	establishmentIdentifier primitive.ObjectID,
) (_ []*model.Employment, returnedError error) {

	cursor, findError := repository.collection.Find(contextValue, bson.M{"establishmentId": establishmentIdentifier, "isCurrent": true})
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var employments []*model.Employment
	if returnedError = cursor.All(contextValue, &employments); returnedError != nil {
		return nil, returnedError
	}
	return employments, nil
}
