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

type EstablishmentRepository struct {
	collection *mongo.Collection
}

func NewEstablishmentRepository(mongoClient *client.MongoClient) *EstablishmentRepository {
	repository := &EstablishmentRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBPattaMap)).Collection(string(core.MongoCollectionEstablishments)),
	}
	_, _ = repository.collection.Indexes().CreateMany(context.Background(), model.EstablishmentIndexes)
	return repository
}

func (repository *EstablishmentRepository) Create(contextValue context.Context, establishment *model.Establishment) (_ *model.Establishment, returnedError error) {
	nowUTC := time.Now().UTC()
	if establishment.ID.IsZero() {
		establishment.ID = primitive.NewObjectID()
	}
	establishment.CreatedAt = nowUTC
	establishment.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, establishment)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	establishment.ID = objectID
	return establishment, nil
}

func (repository *EstablishmentRepository) GetByID(contextValue context.Context, establishmentIdentifier primitive.ObjectID) (_ *model.Establishment, returnedError error) {
	var establishment model.Establishment
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": establishmentIdentifier}).Decode(&establishment); returnedError != nil {
		return nil, returnedError
	}
	return &establishment, nil
}

// GetByIDs 批次撈取，掛靠規則驗證用；不存在的 id 直接缺漏，由呼叫端比對。
func (repository *EstablishmentRepository) GetByIDs(contextValue context.Context, establishmentIdentifiers []primitive.ObjectID) (_ []*model.Establishment, returnedError error) {
	if len(establishmentIdentifiers) == 0 {
		return nil, nil
	}
	cursor, findError := repository.collection.Find(contextValue, bson.M{"_id": bson.M{"$in": establishmentIdentifiers}})
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var establishments []*model.Establishment
	if returnedError = cursor.All(contextValue, &establishments); returnedError != nil {
		return nil, returnedError
	}
	return establishments, nil
}

func (repository *EstablishmentRepository) List(
	contextValue context.Context,
	listOptions core.ListOptions,
) (_ []*model.Establishment, returnedError error) {

	findOptions := options.Find().
		SetSkip(listOptions.Page * listOptions.Size).
		SetLimit(listOptions.Size).
		SetSort(bson.M{"name": 1})

	cursor, findError := repository.collection.Find(contextValue, listOptions.Filter, findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var establishments []*model.Establishment
	if returnedError = cursor.All(contextValue, &establishments); returnedError != nil {
		return nil, returnedError
	}
	return establishments, nil
}

func (repository *EstablishmentRepository) UpdateByID(contextValue context.Context, establishmentIdentifier primitive.ObjectID, update bson.M) (returnedCount int64, returnedError error) {
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": establishmentIdentifier}, withUpdatedAt(bson.M{"$set": update}))
	if updateError != nil {
		return 0, updateError
	}
	if result.MatchedCount == 0 {
		return 0, mongo.ErrNoDocuments
	}
	return result.MatchedCount, nil
}

// CountByCategory Dashboard 聚合：各分類目前上架中的店家數
func (repository *EstablishmentRepository) CountByCategory(contextValue context.Context) (_ map[core.EstablishmentCategory]int64, returnedError error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": core.StatusActive}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}}},
	}
	cursor, aggregateError := repository.collection.Aggregate(contextValue, pipeline)
	if aggregateError != nil {
		return nil, aggregateError
	}
	defer cursor.Close(contextValue)

	counts := make(map[core.EstablishmentCategory]int64)
	for cursor.Next(contextValue) {
		var row struct {
			Category core.EstablishmentCategory `bson:"_id"`
			Count    int64                      `bson:"count"`
		}
		if decodeError := cursor.Decode(&row); decodeError != nil {
			return nil, decodeError
		}
		counts[row.Category] = row.Count
	}
	if cursorError := cursor.Err(); cursorError != nil {
		return nil, cursorError
	}
	return counts, nil
}
