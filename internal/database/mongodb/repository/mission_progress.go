package repository

import (
	"context"
	"time"

	"pattamap/internal/core"
	client "pattamap/internal/database/client"
	"pattamap/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MissionProgressRepository struct {
	collection *mongo.Collection
}

func NewMissionProgressRepository(mongoClient *client.MongoClient) *MissionProgressRepository {
	repository := &MissionProgressRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBPattaMap)).Collection(string(core.MongoCollectionMissionProgress)),
	}
	_, _ = repository.collection.Indexes().CreateMany(context.Background(), model.MissionProgressIndexes)
	return repository
}

// ResetByPeriod 清空該週期所有任務進度；排程觸發。回傳被重置的筆數。
func (repository *MissionProgressRepository) ResetByPeriod(
	contextValue context.Context,
	period core.MissionPeriod,
	resetAt time.Time,
) (returnedCount int64, returnedError error) {

	update := withUpdatedAt(bson.M{"$set": bson.M{
		"progress":    0,
		"completed":   false,
		"completedAt": nil,
		"resetAt":     resetAt,
	}})
	result, updateError := repository.collection.UpdateMany(contextValue, bson.M{"period": period}, update)
	if updateError != nil {
		return 0, updateError
	}
	return result.ModifiedCount, nil
}

func (repository *MissionProgressRepository) ListByUser(contextValue context.Context, userIdentifier primitive.ObjectID) (_ []*model.MissionProgress, returnedError error) {
	cursor, findError := repository.collection.Find(contextValue, bson.M{"userId": userIdentifier})
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var progresses []*model.MissionProgress
	if returnedError = cursor.All(contextValue, &progresses); returnedError != nil {
		return nil, returnedError
	}
	return progresses, nil
}

// IncrementProgress 進度 +1，不存在就建立（upsert）；達標與否由呼叫端判斷。
func (repository *MissionProgressRepository) IncrementProgress(
	contextValue context.Context,
	userIdentifier primitive.ObjectID,
	missionKey string,
	period core.MissionPeriod,
	target int,
) (_ *model.MissionProgress, returnedError error) {

	nowUTC := time.Now().UTC()
	filter := bson.M{"userId": userIdentifier, "missionKey": missionKey}
	update := withUpdatedAt(bson.M{
		"$inc": bson.M{"progress": 1},
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID(),
			"period":    period,
			"target":    target,
			"completed": false,
			"createdAt": nowUTC,
		},
	})
	findOptions := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var progress model.MissionProgress
	if returnedError = repository.collection.FindOneAndUpdate(contextValue, filter, update, findOptions).Decode(&progress); returnedError != nil {
		return nil, returnedError
	}
	return &progress, nil
}

// MarkCompleted 標記任務完成
func (repository *MissionProgressRepository) MarkCompleted(contextValue context.Context, progressIdentifier primitive.ObjectID) (returnedError error) {
	update := withUpdatedAt(bson.M{"$set": bson.M{"completed": true, "completedAt": time.Now().UTC()}})
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": progressIdentifier}, update)
	if updateError != nil {
		return updateError
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
