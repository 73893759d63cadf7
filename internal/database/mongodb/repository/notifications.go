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

type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(mongoClient *client.MongoClient) *NotificationRepository {
	repository := &NotificationRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBPattaMap)).Collection(string(core.MongoCollectionNotifications)),
	}
	_, _ = repository.collection.Indexes().CreateMany(context.Background(), model.NotificationIndexes)
	return repository
}

func (repository *NotificationRepository) Insert(contextValue context.Context, notification *model.Notification) (_ *model.Notification, returnedError error) {
	nowUTC := time.Now().UTC()
	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	notification.CreatedAt = nowUTC
	notification.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, notification)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	notification.ID = objectID
	return notification, nil
}

func (repository *NotificationRepository) ListByUser(
	contextValue context.Context,
	userIdentifier primitive.ObjectID,
	listOptions core.ListOptions,
) (_ []*model.Notification, returnedError error) {

	findOptions := options.Find().
		SetSkip(listOptions.Page * listOptions.Size).
		SetLimit(listOptions.Size).
		SetSort(bson.M{"createdAt": -1})

	filter := bson.M{"userId": userIdentifier}
	for key, value := range listOptions.Filter {
		filter[key] = value
	}

	cursor, findError := repository.collection.Find(contextValue, filter, findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var notifications []*model.Notification
	if returnedError = cursor.All(contextValue, &notifications); returnedError != nil {
		return nil, returnedError
	}
	return notifications, nil
}

// MarkRead 僅在通知屬於該用戶時生效；回傳 matched 筆數讓呼叫端判斷歸屬。
func (repository *NotificationRepository) MarkRead(
	contextValue context.Context,
	notificationIdentifier primitive.ObjectID,
	userIdentifier primitive.ObjectID,
) (returnedCount int64, returnedError error) {

	update := withUpdatedAt(bson.M{"$set": bson.M{"isRead": true, "readAt": time.Now().UTC()}})
	result, updateError := repository.collection.UpdateOne(
		contextValue,
		bson.M{"_id": notificationIdentifier, "userId": userIdentifier},
		update,
	)
	if updateError != nil {
		return 0, updateError
	}
	return result.MatchedCount, nil
}

func (repository *NotificationRepository) CountUnread(contextValue context.Context, userIdentifier primitive.ObjectID) (returnedCount int64, returnedError error) {
	return repository.collection.CountDocuments(contextValue, bson.M{"userId": userIdentifier, "isRead": false})
}
